package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
	"github.com/mentetech/blog-api/internal/transfer"
)

type CategoryHandler struct {
	s    service.CategoryService
	auth service.AuthService
}

func NewCategoryHandler(service service.CategoryService, auth service.AuthService) *CategoryHandler {
	return &CategoryHandler{s: service, auth: auth}
}

func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categorias, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list categories",
		})
	}
	return c.Status(fiber.StatusOK).JSON(categorias)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var input transfer.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	categoria, verrs, err := h.s.Create(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save category",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(categoria)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	var input transfer.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	categoria, verrs, err := h.s.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save category",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}
	return c.Status(fiber.StatusOK).JSON(categoria)
}

func (h *CategoryHandler) RemoveCategory(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	err := h.s.Remove(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove category",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
