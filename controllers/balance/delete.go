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

// Delete soft-deletes one of the caller's entries. The row stays for the
// audit trail; its delta is reversed out of the running total.
func Delete(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	player, ok := c.Locals("player").(models.Player)
	if !ok {
		return helpers.JSONError(c, "INVALID_PLAYER_SESSION")
	}

	entry, err := fetchOwnEntry(&group, &player, c.Params("code"))
	if err != nil {
		return helpers.JSONNotFound(c, "BALANCE_NOT_FOUND")
	}

	if err := services.SoftDeleteEntry(database.DB, &group, &player, entry); err != nil {
		logger.Log.Error("entry delete failed",
			zap.String("group_code", group.GroupCode),
			zap.String("balance_code", entry.BalanceCode),
			zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_DELETE_BALANCE")
	}

	return helpers.JSONSuccess(c, "Balance deleted successfully", fiber.Map{
		"balance_code":  entry.BalanceCode,
		"total_balance": player.TotalBalance,
		"total_display": helpers.FormatDiff(player.TotalBalance),
	})
}
