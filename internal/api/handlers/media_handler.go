package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
)

type MediaHandler struct {
	s *service.MediaService
}

func NewMediaHandler(service *service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	url, err := h.s.UploadImage(c.Context(), fileHeader)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMedia) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": fiber.Map{"file": "Apenas imagens são permitidas."},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to upload file",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": url,
	})
}
