package middlewares

import (
	"bankroll/database"
	"bankroll/helpers"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
)

// PlayerAuth checks the group's player-level secret and stashes the group
// plus the caller's identity-provider UID into locals. The identity itself
// is issued externally; this layer only scopes it to a group.
func PlayerAuth(c *fiber.Ctx) error {
	groupCode := c.Get("X-Group-Code")
	secret := c.Get("X-Player-Secret")
	uid := c.Get("X-Player-UID")

	if groupCode == "" || secret == "" || uid == "" {
		return helpers.JSONError(c, "GROUP_CODE_SECRET_AND_UID_REQUIRED")
	}

	var group models.Group
	if err := database.DB.
		Where("group_code = ? AND player_secret = ?", groupCode, secret).
		First(&group).Error; err != nil {
		return helpers.JSONError(c, "INVALID_GROUP_CREDENTIALS")
	}

	c.Locals("group", group)
	c.Locals("uid", uid)
	return c.Next()
}

// PlayerJoined requires a player row for the caller in the authed group.
// Runs after PlayerAuth.
func PlayerJoined(c *fiber.Ctx) error {
	group, ok := c.Locals("group").(models.Group)
	if !ok {
		return helpers.JSONError(c, "INVALID_GROUP_SESSION")
	}
	uid, _ := c.Locals("uid").(string)

	var player models.Player
	if err := database.DB.
		Where("group_id = ? AND uid = ?", group.ID, uid).
		First(&player).Error; err != nil {
		return helpers.JSONNotFound(c, "PLAYER_NOT_JOINED")
	}

	c.Locals("player", player)
	return c.Next()
}

// AdminAuth checks the group's admin-level secret.
func AdminAuth(c *fiber.Ctx) error {
	groupCode := c.Get("X-Group-Code")
	secret := c.Get("X-Admin-Secret")

	if groupCode == "" || secret == "" {
		return helpers.JSONError(c, "GROUP_CODE_AND_ADMIN_SECRET_REQUIRED")
	}

	var group models.Group
	if err := database.DB.
		Where("group_code = ? AND admin_secret = ?", groupCode, secret).
		First(&group).Error; err != nil {
		return helpers.JSONError(c, "INVALID_ADMIN_CREDENTIALS")
	}

	c.Locals("group", group)
	return c.Next()
}
