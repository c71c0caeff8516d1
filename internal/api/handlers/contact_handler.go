package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
	"github.com/mentetech/blog-api/internal/transfer"
)

type ContactHandler struct {
	s    service.ContactService
	auth service.AuthService
}

func NewContactHandler(service service.ContactService, auth service.AuthService) *ContactHandler {
	return &ContactHandler{s: service, auth: auth}
}

func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var input transfer.ContactInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	verrs, err := h.s.Submit(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to submit message",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Mensagem enviada com sucesso",
	})
}

func (h *ContactHandler) ListMessages(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	messages, err := h.s.ListMessages(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list messages",
		})
	}
	return c.Status(fiber.StatusOK).JSON(messages)
}

func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.s.UpdateStatus(c.Context(), c.Params("id"), input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update message status",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
