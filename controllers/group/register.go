package group

import (
	"errors"
	"strings"
	"time"

	"bankroll/database"
	"bankroll/helpers"
	"bankroll/logger"
	"bankroll/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterGroupRequest struct {
	Name    string `json:"name"`
	Creator string `json:"creator"`
}

var errCodeCollision = errors.New("GROUP_CODE_COLLISION")

// RegisterGroup creates a group under a fresh 6-digit code. Codes are
// random, so creation is collision-checked inside a transaction and
// retried up to 10 times before giving up.
func RegisterGroup(c *fiber.Ctx) error {
	var req RegisterGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return helpers.JSONError(c, "GROUP_NAME_REQUIRED")
	}

	var created *models.Group
	for attempt := 0; attempt < 10; attempt++ {
		code := helpers.GenerateGroupCode()

		group := models.Group{
			GroupCode:    code,
			Name:         name,
			Creator:      strings.TrimSpace(req.Creator),
			PlayerSecret: helpers.GeneratePlayerSecret(),
			AdminSecret:  helpers.GenerateAdminSecret(),
			Settings: models.GroupSettings{
				StakesFixed: false,
				RankingTopN: 10,
			},
			LastUpdated: time.Now(),
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var existing models.Group
			err := tx.Where("group_code = ?", code).First(&existing).Error
			if err == nil {
				return errCodeCollision
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return tx.Create(&group).Error
		})
		if err == nil {
			created = &group
			break
		}
		if errors.Is(err, errCodeCollision) {
			continue
		}
		logger.Log.Error("group creation failed", zap.Error(err))
		return helpers.JSONError(c, "FAILED_TO_CREATE_GROUP")
	}

	if created == nil {
		return helpers.JSONError(c, "GROUP_CODE_SPACE_EXHAUSTED")
	}

	return helpers.JSONSuccess(c, "Group created successfully", fiber.Map{
		"group_code":    created.GroupCode,
		"name":          created.Name,
		"player_secret": created.PlayerSecret,
		"admin_secret":  created.AdminSecret,
	})
}
