package player

import (
	"bankroll/helpers"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
)

func Me(c *fiber.Ctx) error {
	player, ok := c.Locals("player").(models.Player)
	if !ok {
		return helpers.JSONError(c, "INVALID_PLAYER_SESSION")
	}
	return helpers.JSONSuccess(c, "Profile retrieved successfully", playerPayload(&player))
}
