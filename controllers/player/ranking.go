package player

import (
	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"
	"bankroll/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Ranking returns the group leaderboard, truncated to the configured top N
// with the caller's own row kept visible below the cut when they rank
// outside it.
func Ranking(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	player, ok := c.Locals("player").(models.Player)
	if !ok {
		return helpers.JSONError(c, "INVALID_PLAYER_SESSION")
	}

	var entries []models.BalanceEntry
	if err := database.DB.
		Where("group_id = ? AND is_deleted = ?", group.ID, false).
		Find(&entries).Error; err != nil {
		logger.Log.Error("ranking entry fetch failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_BUILD_RANKING")
	}

	var players []models.Player
	if err := database.DB.Where("group_id = ?", group.ID).Find(&players).Error; err != nil {
		logger.Log.Error("ranking player fetch failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_BUILD_RANKING")
	}
	byUID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byUID[p.UID] = p
	}

	ranking := services.Rank(entries, byUID)
	topN := group.Settings.RankingTopN
	rows := services.TopNWithSelf(ranking, topN, player.UID)

	display := make([]fiber.Map, len(rows))
	for i, r := range rows {
		display[i] = fiber.Map{
			"rank":          r.Rank,
			"player_uid":    r.PlayerUID,
			"name":          r.Name,
			"total":         r.Total,
			"total_display": helpers.FormatDiff(r.Total),
			"outsider":      r.Outsider,
			"me":            r.PlayerUID == player.UID,
		}
	}

	return helpers.JSONSuccess(c, "Ranking retrieved successfully", fiber.Map{
		"top_n":   topN,
		"ranking": display,
	})
}
