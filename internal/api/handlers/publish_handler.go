package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
)

type PublishHandler struct {
	p    service.Publisher
	auth service.AuthService
}

func NewPublishHandler(p service.Publisher, auth service.AuthService) *PublishHandler {
	return &PublishHandler{p: p, auth: auth}
}

// RunAutoPublish is the interactive trigger path. Unlike the cron job it can
// be reached by any authenticated user, so the administrator capability is
// verified before anything runs.
func (h *PublishHandler) RunAutoPublish(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	result, err := h.p.RunAutoPublish(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "An error occurred while processing your request",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"message":         fmt.Sprintf("Auto-publish completed successfully. %d posts published.", result.PublishedCount),
		"published_count": result.PublishedCount,
		"published_posts": result.PublishedPosts,
		"timestamp":       result.Timestamp,
	})
}
