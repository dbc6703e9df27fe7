package group

import (
	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"
	"bankroll/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ListBalances returns the group's ledger for the admin view. Active rows
// only by default; include_deleted=1 adds soft-deleted rows for auditing.
func ListBalances(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}

	q := database.DB.Where("group_id = ?", group.ID)
	if c.Query("include_deleted") != "1" {
		q = q.Where("is_deleted = ?", false)
	}

	var entries []models.BalanceEntry
	if err := q.Order("date_ts DESC").Find(&entries).Error; err != nil {
		logger.Log.Error("balance list failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
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
			"player_uid":   e.PlayerUID,
			"date":         e.Date,
			"stakes":       e.Stakes,
			"buy_in_bb":    e.BuyInBB,
			"ending_bb":    e.EndingBB,
			"delta":        e.Delta(),
			"memo":         e.Memo,
			"last_updated": e.LastUpdated,
			"is_deleted":   e.IsDeleted,
		}
	}

	return helpers.JSONSuccess(c, "Balances retrieved successfully", fiber.Map{
		"balances":    rows,
		"total_delta": totalDelta,
	})
}
