package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/queue"
	"github.com/mentetech/blog-api/internal/service"
	"github.com/mentetech/blog-api/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	auth        service.AuthService
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, auth service.AuthService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, auth: auth, AsynqClient: asynqClient}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var input transfer.PostInput
	if err := c.BodyParser(&input); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, verrs, err := h.s.Create(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save post",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}

	h.enqueueIfScheduled(post)

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	var input transfer.PostInput
	if err := c.BodyParser(&input); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, verrs, err := h.s.Update(c.Context(), c.Params("id"), &input)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save post",
		})
	}
	if verrs.HasErrors() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": verrs,
		})
	}

	h.enqueueIfScheduled(post)

	return c.Status(fiber.StatusOK).JSON(post)
}

// enqueueIfScheduled registers the exact-time publish task. Losing the task
// is tolerable: the cron sweep publishes overdue posts on its next pass.
func (h *PostHandler) enqueueIfScheduled(post *models.Post) {
	if post.Status != models.PostStatusScheduled || post.DataPublicacaoAgendada == nil {
		return
	}
	delay := time.Until(*post.DataPublicacaoAgendada)
	if delay < 0 {
		delay = 0
	}
	err := queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: post.ID}, delay)
	if err != nil {
		slog.Error("failed to enqueue publish task", "id", post.ID, "error", err)
	}
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.s.List(c.Context(), c.Query("status"), c.Query("categoria_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.s.GetByID(c.Context(), c.Params("id"))
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

// RemovePost is irreversible and restricted to administrators.
func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	if ok, resp := requireAdmin(c, h.auth); !ok {
		return resp
	}

	err := h.s.Remove(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// PreviewPost renders editor content transiently; nothing is persisted.
func (h *PostHandler) PreviewPost(c *fiber.Ctx) error {
	var input transfer.PreviewInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	rendered, err := h.s.Preview(c.Context(), &input)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": fiber.Map{"conteudo": "O conteúdo não pôde ser processado."},
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"html": rendered,
	})
}
