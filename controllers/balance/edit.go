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

// fetchOwnEntry loads the caller's active entry by its display code.
// Editing someone else's row is indistinguishable from a missing one.
func fetchOwnEntry(group *models.Group, player *models.Player, code string) (*models.BalanceEntry, error) {
	var entry models.BalanceEntry
	err := database.DB.
		Where("group_id = ? AND player_uid = ? AND balance_code = ? AND is_deleted = ?",
			group.ID, player.UID, code, false).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Edit overwrites one of the caller's entries. The running total moves by
// the delta difference, not a recomputation.
func Edit(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	player, ok := c.Locals("player").(models.Player)
	if !ok {
		return helpers.JSONError(c, "INVALID_PLAYER_SESSION")
	}

	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	entry, err := fetchOwnEntry(&group, &player, c.Params("code"))
	if err != nil {
		return helpers.JSONNotFound(c, "BALANCE_NOT_FOUND")
	}

	if err := services.UpdateEntry(database.DB, &group, &player, entry, req.input()); err != nil {
		if services.IsValidationError(err) {
			return helpers.JSONError(c, err.Error())
		}
		logger.Log.Error("entry update failed",
			zap.String("group_code", group.GroupCode),
			zap.String("balance_code", entry.BalanceCode),
			zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_UPDATE_BALANCE")
	}

	return helpers.JSONSuccess(c, "Balance updated successfully", fiber.Map{
		"balance":       entry,
		"delta":         entry.Delta(),
		"total_balance": player.TotalBalance,
		"total_display": helpers.FormatDiff(player.TotalBalance),
	})
}
