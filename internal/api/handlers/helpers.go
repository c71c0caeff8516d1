package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// requireAdmin verifies the administrator capability for gated actions.
// When the caller may not proceed, the failure response has already been
// rendered and must be returned as-is.
func requireAdmin(c *fiber.Ctx, auth service.AuthService) (bool, error) {
	isAdmin, err := auth.IsAdmin(c.Context(), GetUserID(c))
	if err != nil {
		return false, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify permissions",
		})
	}
	if !isAdmin {
		return false, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: Admin access required",
		})
	}
	return true, nil
}
