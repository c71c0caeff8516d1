package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mentetech/blog-api/internal/service"
	"github.com/mentetech/blog-api/internal/transfer"
)

// PublicHandler serves the read-only site surface. It only ever sees
// published posts and never mutates lifecycle state.
type PublicHandler struct {
	posts      service.PostService
	categories service.CategoryService
}

func NewPublicHandler(posts service.PostService, categories service.CategoryService) *PublicHandler {
	return &PublicHandler{posts: posts, categories: categories}
}

func (h *PublicHandler) ListPosts(c *fiber.Ctx) error {
	filter := transfer.PostFilter{
		CategoriaSlug: c.Query("categoria"),
		Search:        c.Query("q"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 20),
	}

	posts, err := h.posts.ListPublished(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PublicHandler) GetPostBySlug(c *fiber.Ctx) error {
	post, err := h.posts.GetPublishedBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to load post",
		})
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PublicHandler) ListCategories(c *fiber.Ctx) error {
	categorias, err := h.categories.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list categories",
		})
	}
	return c.Status(fiber.StatusOK).JSON(categorias)
}

func (h *PublicHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
