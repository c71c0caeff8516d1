package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
	"github.com/mentetech/blog-api/internal/transfer"
)

type NewsletterHandler struct {
	s    service.NewsletterService
	auth service.AuthService
}

func NewNewsletterHandler(service service.NewsletterService, auth service.AuthService) *NewsletterHandler {
	return &NewsletterHandler{s: service, auth: auth}
}

func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var input transfer.SubscribeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	verrs, err := h.s.Subscribe(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to subscribe",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Inscrição realizada com sucesso",
	})
}

func (h *NewsletterHandler) ListSubscribers(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	subscribers, err := h.s.ListSubscribers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list subscribers",
		})
	}
	return c.Status(fiber.StatusOK).JSON(subscribers)
}
