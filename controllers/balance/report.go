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

type EntryRequest struct {
	Date     string                `json:"date"`
	StakesSB models.FlexibleString `json:"stakes_sb"`
	StakesBB models.FlexibleString `json:"stakes_bb"`
	BuyInBB  models.FlexibleString `json:"buy_in_bb"`
	EndingBB models.FlexibleString `json:"ending_bb"`
	Memo     string                `json:"memo"`
}

func (r EntryRequest) input() services.EntryInput {
	return services.EntryInput{
		Date:   r.Date,
		SB:     r.StakesSB.String(),
		BB:     r.StakesBB.String(),
		BuyIn:  r.BuyInBB.String(),
		Ending: r.EndingBB.String(),
		Memo:   r.Memo,
	}
}

// Report records a new session for the caller.
func Report(c *fiber.Ctx) error {
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

	entry, err := services.CreateEntry(database.DB, &group, &player, req.input())
	if err != nil {
		if services.IsValidationError(err) {
			return helpers.JSONError(c, err.Error())
		}
		logger.Log.Error("entry creation failed",
			zap.String("group_code", group.GroupCode),
			zap.String("player_code", player.PlayerCode),
			zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_REPORT_BALANCE")
	}

	return helpers.JSONSuccess(c, "Balance reported successfully", fiber.Map{
		"balance":       entry,
		"delta":         entry.Delta(),
		"total_balance": player.TotalBalance,
		"total_display": helpers.FormatDiff(player.TotalBalance),
	})
}
