package helpers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

func JSONNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// FormatDiff renders a signed big-blind amount for display, e.g. "+50.0BB"
// or "-12.3BB". Zero counts as positive.
func FormatDiff(v decimal.Decimal) string {
	sign := "+"
	if v.IsNegative() {
		sign = "-"
	}
	return sign + v.Abs().StringFixed(1) + "BB"
}
