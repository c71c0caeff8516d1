package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mentetech/blog-api/internal/content"
	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/transfer"
)

const (
	minResumoLen   = 10
	minConteudoLen = 20
	maxTituloLen   = 200
	maxResumoLen   = 500
	maxTags        = 10
)

var ErrPostNotFound = errors.New("post not found")

type PostService interface {
	Create(ctx context.Context, input *transfer.PostInput) (*models.Post, transfer.ValidationErrors, error)
	Update(ctx context.Context, id string, input *transfer.PostInput) (*models.Post, transfer.ValidationErrors, error)
	Preview(ctx context.Context, input *transfer.PreviewInput) (string, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, status, categoriaID string) ([]*models.Post, error)
	ListPublished(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	Remove(ctx context.Context, id string) error
}

type postService struct {
	pr       repository.PostRepository
	cr       repository.CategoryRepository
	renderer *content.Renderer
	now      func() time.Time
}

func NewPostService(pr repository.PostRepository, cr repository.CategoryRepository, renderer *content.Renderer) PostService {
	return &postService{pr: pr, cr: cr, renderer: renderer, now: time.Now}
}

func (s *postService) Create(ctx context.Context, input *transfer.PostInput) (*models.Post, transfer.ValidationErrors, error) {
	return s.save(ctx, nil, input)
}

func (s *postService) Update(ctx context.Context, id string, input *transfer.PostInput) (*models.Post, transfer.ValidationErrors, error) {
	existing, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing == nil {
		return nil, nil, ErrPostNotFound
	}
	return s.save(ctx, existing, input)
}

// save runs the full pipeline for both creation and edit: field validation,
// content conversion, slug derivation and the lifecycle transition rules.
// Any validation error rejects the write as a whole.
func (s *postService) save(ctx context.Context, existing *models.Post, input *transfer.PostInput) (*models.Post, transfer.ValidationErrors, error) {
	if input == nil {
		return nil, nil, errors.New("post input is nil")
	}

	verrs := s.validate(existing, input)

	conteudoHTML, err := s.renderer.Process(input.Conteudo, input.Formato)
	if err != nil {
		if errors.Is(err, content.ErrUnprocessable) {
			verrs.Add("conteudo", "O conteúdo não pôde ser processado.")
		} else {
			return nil, nil, err
		}
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = content.Slugify(input.Titulo)
	}
	if slug == "" {
		verrs.Add("slug", "Slug é obrigatório.")
	} else if !content.ValidSlug(slug) {
		verrs.Add("slug", "Slug deve conter apenas letras minúsculas, números e hífens.")
	}

	if verrs.HasErrors() {
		return nil, verrs, nil
	}

	excludeID := ""
	if existing != nil {
		excludeID = existing.ID
	}
	taken, err := s.pr.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		verrs.Add("slug", "Este slug já está em uso.")
		return nil, verrs, nil
	}

	post := s.buildPost(existing, input)
	post.Slug = slug
	post.ConteudoHTML = conteudoHTML

	if existing == nil {
		id, err := gonanoid.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate post id: %w", err)
		}
		post.ID = id
		if err := s.pr.Create(ctx, post); err != nil {
			return nil, nil, fmt.Errorf("error creating post: %w", err)
		}
	} else {
		if err := s.pr.Update(ctx, post); err != nil {
			return nil, nil, fmt.Errorf("error updating post: %w", err)
		}
	}

	slog.Info("post saved", "id", post.ID, "status", post.Status)
	return post, nil, nil
}

// validate applies the field-level rules of the lifecycle state machine.
// The summary/body/category gate fires only when a save enters PUBLICADO or
// AGENDADO; a content edit that keeps the status is not re-gated.
func (s *postService) validate(existing *models.Post, input *transfer.PostInput) transfer.ValidationErrors {
	verrs := transfer.ValidationErrors{}

	titulo := strings.TrimSpace(input.Titulo)
	if titulo == "" {
		verrs.Add("titulo", "Título é obrigatório.")
	} else if len([]rune(titulo)) > maxTituloLen {
		verrs.Add("titulo", "Título muito longo.")
	}

	if len([]rune(strings.TrimSpace(input.Resumo))) > maxResumoLen {
		verrs.Add("resumo", "Resumo muito longo.")
	}

	if len(input.Tags) > maxTags {
		verrs.Add("tags", fmt.Sprintf("Máximo %d tags.", maxTags))
	}

	if !models.ValidPostStatus(input.Status) {
		verrs.Add("status", "Status inválido.")
		return verrs
	}

	entering := input.Status != models.PostStatusDraft &&
		(existing == nil || existing.Status != input.Status)

	if entering {
		if len([]rune(strings.TrimSpace(input.Resumo))) < minResumoLen {
			verrs.Add("resumo", fmt.Sprintf("Resumo é obrigatório (mínimo %d caracteres) para publicar ou agendar.", minResumoLen))
		}
		if len([]rune(strings.TrimSpace(input.Conteudo))) < minConteudoLen {
			verrs.Add("conteudo", fmt.Sprintf("Conteúdo é obrigatório (mínimo %d caracteres) para publicar ou agendar.", minConteudoLen))
		}
		if input.CategoriaID == nil || *input.CategoriaID == "" {
			verrs.Add("categoria_id", "Categoria é obrigatória para publicar ou agendar.")
		}
	}

	if input.Status == models.PostStatusScheduled {
		if input.DataPublicacaoAgendada == nil {
			verrs.Add("data_publicacao_agendada", "Data de publicação é obrigatória para posts agendados.")
		} else if s.scheduleChanged(existing, input) && !input.DataPublicacaoAgendada.After(s.now()) {
			verrs.Add("data_publicacao_agendada", "Data de publicação agendada deve estar no futuro.")
		}
	}

	return verrs
}

// scheduleChanged reports whether this save sets a new scheduled time. Only a
// new value must lie in the future; an unchanged one may already have lapsed
// and will be picked up by the publication trigger.
func (s *postService) scheduleChanged(existing *models.Post, input *transfer.PostInput) bool {
	if existing == nil || existing.DataPublicacaoAgendada == nil {
		return true
	}
	return !existing.DataPublicacaoAgendada.Equal(*input.DataPublicacaoAgendada)
}

// buildPost applies the transition side effects: publication time is set once
// on first entry into PUBLICADO and survives unpublish; the scheduled time
// only exists while the post is AGENDADO.
func (s *postService) buildPost(existing *models.Post, input *transfer.PostInput) *models.Post {
	post := &models.Post{
		Titulo:      strings.TrimSpace(input.Titulo),
		Resumo:      strings.TrimSpace(input.Resumo),
		CategoriaID: input.CategoriaID,
		Tags:        trimTags(input.Tags),
		ImagemURL:   strings.TrimSpace(input.ImagemURL),
		Status:      input.Status,
	}

	if existing != nil {
		post.ID = existing.ID
		post.DataPublicacao = existing.DataPublicacao
	}

	switch input.Status {
	case models.PostStatusPublished:
		if post.DataPublicacao == nil {
			now := s.now()
			post.DataPublicacao = &now
		}
		post.DataPublicacaoAgendada = nil
	case models.PostStatusScheduled:
		post.DataPublicacaoAgendada = input.DataPublicacaoAgendada
	default:
		post.DataPublicacaoAgendada = nil
	}

	return post
}

func trimTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			trimmed = append(trimmed, tag)
		}
	}
	return trimmed
}

// Preview renders content for the editor without persisting anything.
func (s *postService) Preview(ctx context.Context, input *transfer.PreviewInput) (string, error) {
	if input == nil {
		return "", errors.New("preview input is nil")
	}
	return s.renderer.Process(input.Conteudo, input.Formato)
}

func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postService) List(ctx context.Context, status, categoriaID string) ([]*models.Post, error) {
	return s.pr.List(ctx, status, categoriaID)
}

// ListPublished serves the public surface. Bodies already hold sanitized
// HTML, but they are re-sanitized here to cover historical rows written
// under a more permissive allow-list.
func (s *postService) ListPublished(ctx context.Context, filter transfer.PostFilter) ([]*models.Post, error) {
	posts, err := s.pr.ListPublished(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		post.ConteudoHTML = s.renderer.Sanitize(post.ConteudoHTML)
	}
	return posts, nil
}

func (s *postService) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, err := s.pr.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if err := s.pr.IncrementViews(ctx, post.ID); err != nil {
		slog.Info("view counter update failed", "id", post.ID, "error", err)
	} else {
		post.Visualizacoes++
	}

	post.ConteudoHTML = s.renderer.Sanitize(post.ConteudoHTML)

	if post.CategoriaID != nil {
		categoria, err := s.cr.GetByID(ctx, *post.CategoriaID)
		if err == nil && categoria != nil {
			post.Categoria = categoria
		}
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, id string) error {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	return s.pr.Remove(ctx, id)
}
