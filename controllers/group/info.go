package group

import (
	"bankroll/helpers"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
)

func GroupInfo(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}

	var stakes fiber.Map
	if fixed := group.FixedStakes(); fixed != nil {
		stakes = fiber.Map{"sb": fixed.SB, "bb": fixed.BB}
	}

	return helpers.JSONSuccess(c, "Group retrieved successfully", fiber.Map{
		"group_code":   group.GroupCode,
		"name":         group.Name,
		"creator":      group.Creator,
		"settings":     group.Settings,
		"fixed_stakes": stakes,
		"last_updated": group.LastUpdated,
	})
}
