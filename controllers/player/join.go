package player

import (
	"strings"

	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type JoinGroupRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// JoinGroup lazily creates the caller's player profile on first visit to a
// group. The display name is fixed at this point; later joins return the
// existing profile untouched.
func JoinGroup(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	uid, _ := c.Locals("uid").(string)

	var req JoinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var existing models.Player
	err := database.DB.
		Where("group_id = ? AND uid = ?", group.ID, uid).
		First(&existing).Error
	if err == nil {
		return helpers.JSONSuccess(c, "Already joined", playerPayload(&existing))
	}
	if err != gorm.ErrRecordNotFound {
		logger.Log.Error("player lookup failed", zap.String("uid", uid), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_JOIN_GROUP")
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = "No Name"
	}

	player := models.Player{
		PlayerCode:  helpers.GeneratePlayerCode(),
		GroupID:     group.ID,
		UID:         uid,
		DisplayName: name,
		Email:       strings.TrimSpace(req.Email),
	}

	if err := database.DB.Create(&player).Error; err != nil {
		logger.Log.Error("player creation failed", zap.String("uid", uid), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_JOIN_GROUP")
	}

	return helpers.JSONSuccess(c, "Joined group successfully", playerPayload(&player))
}

func playerPayload(p *models.Player) fiber.Map {
	return fiber.Map{
		"player_code":   p.PlayerCode,
		"display_name":  p.DisplayName,
		"email":         p.Email,
		"total_balance": p.TotalBalance,
		"total_display": helpers.FormatDiff(p.TotalBalance),
	}
}
