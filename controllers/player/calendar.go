package player

import (
	"regexp"

	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"
	"bankroll/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Calendar returns the caller's per-day totals for one month, for the
// monthly calendar view.
func Calendar(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	player, ok := c.Locals("player").(models.Player)
	if !ok {
		return helpers.JSONError(c, "INVALID_PLAYER_SESSION")
	}

	month := c.Query("month")
	if !monthPattern.MatchString(month) {
		return helpers.JSONError(c, "INVALID_MONTH")
	}

	var entries []models.BalanceEntry
	if err := database.DB.
		Where("group_id = ? AND player_uid = ? AND is_deleted = ?", group.ID, player.UID, false).
		Find(&entries).Error; err != nil {
		logger.Log.Error("calendar entry fetch failed",
			zap.String("group_code", group.GroupCode), zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_BUILD_CALENDAR")
	}

	days := services.DailyTotals(entries, month)

	return helpers.JSONSuccess(c, "Calendar retrieved successfully", fiber.Map{
		"month": month,
		"days":  days,
	})
}
