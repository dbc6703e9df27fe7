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

// ListHistories returns the group's audit trail expanded to display rows,
// newest change first, with the same filter parameters as the ledger view.
func ListHistories(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}

	var histories []models.BalanceHistory
	if err := database.DB.
		Where("group_id = ?", group.ID).
		Order("changed_at DESC").
		Find(&histories).Error; err != nil {
		logger.Log.Error("history list failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_LIST_HISTORIES")
	}

	rows := services.ExpandHistories(histories)

	filter := services.FilterFromQueries(c.Queries())
	rows = filter.ApplyHistory(rows)

	if key := c.Query("sort_key"); key != "" {
		k, d := services.ParseSortParams(key, c.Query("sort_dir"))
		rows = services.SortHistoryRows(rows, k, d)
	}

	return helpers.JSONSuccess(c, "Histories retrieved successfully", fiber.Map{
		"rows": rows,
	})
}
