package group

import (
	"strings"
	"time"

	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SaveSettingsRequest struct {
	Name        string                `json:"name"`
	StakesFixed bool                  `json:"stakes_fixed"`
	StakesSB    models.FlexibleString `json:"stakes_sb"`
	StakesBB    models.FlexibleString `json:"stakes_bb"`
	RankingTopN int                   `json:"ranking_top_n"`
}

// SaveSettings overwrites the group's settings. Fixed stakes require both
// blinds strictly positive. The legacy combined stakes string is cleared
// on every save; only the structured fields survive a round-trip.
func SaveSettings(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}

	var req SaveSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var sb, bb *decimal.Decimal
	if req.StakesFixed {
		sbVal, errSB := req.StakesSB.ToDecimal()
		bbVal, errBB := req.StakesBB.ToDecimal()
		if errSB != nil || errBB != nil {
			return helpers.JSONError(c, "INVALID_FIXED_STAKES")
		}
		if !sbVal.IsPositive() || !bbVal.IsPositive() {
			return helpers.JSONError(c, "STAKES_MUST_BE_POSITIVE")
		}
		sb, bb = &sbVal, &bbVal
	}

	topN := req.RankingTopN
	if topN <= 0 {
		topN = 10
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = group.Name
	}

	now := time.Now()
	updates := map[string]any{
		"name":                   name,
		"settings_stakes_fixed":  req.StakesFixed,
		"settings_stakes_sb":     sb,
		"settings_stakes_bb":     bb,
		"settings_legacy_stakes": nil,
		"settings_ranking_top_n": topN,
		"last_updated":           now,
	}

	if err := database.DB.Model(&models.Group{}).
		Where("id = ?", group.ID).
		Updates(updates).Error; err != nil {
		logger.Log.Error("settings save failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_SAVE_SETTINGS")
	}

	return helpers.JSONSuccess(c, "Settings saved successfully", fiber.Map{
		"name": name,
		"settings": models.GroupSettings{
			StakesFixed: req.StakesFixed,
			StakesSB:    sb,
			StakesBB:    bb,
			RankingTopN: topN,
		},
	})
}
