package balance

import (
	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"
	"bankroll/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// List returns the caller's active entries with the declarative filter and
// sort parameters applied, plus the filtered set's total delta.
func List(c *fiber.Ctx) error {
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
		Where("group_id = ? AND player_uid = ? AND is_deleted = ?", group.ID, player.UID, false).
		Order("date_ts DESC").
		Find(&entries).Error; err != nil {
		logger.Log.Error("entry list failed",
			zap.String("group_code", group.GroupCode),
			zap.String("player_code", player.PlayerCode),
			zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_LIST_BALANCES")
	}

	filter := services.FilterFromQueries(c.Queries())
	key, dir := services.ParseSortParams(c.Query("sort_key"), c.Query("sort_dir"))

	filtered := filter.Apply(entries)
	sorted := services.SortEntries(filtered, key, dir)
	totalDelta := services.TotalDelta(sorted)

	rows := make([]fiber.Map, len(sorted))
	for i := range sorted {
		e := &sorted[i]
		rows[i] = fiber.Map{
			"balance_code": e.BalanceCode,
			"date":         e.Date,
			"stakes":       e.Stakes,
			"buy_in_bb":    e.BuyInBB,
			"ending_bb":    e.EndingBB,
			"delta":        e.Delta(),
			"memo":         e.Memo,
			"last_updated": e.LastUpdated,
		}
	}

	return helpers.JSONSuccess(c, "Balances retrieved successfully", fiber.Map{
		"balances":      rows,
		"total_delta":   totalDelta,
		"total_display": helpers.FormatDiff(totalDelta),
	})
}
