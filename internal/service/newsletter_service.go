package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/transfer"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type NewsletterService interface {
	Subscribe(ctx context.Context, input *transfer.SubscribeInput) (transfer.ValidationErrors, error)
	ListSubscribers(ctx context.Context) ([]*models.NewsletterSubscriber, error)
}

type newsletterService struct {
	nr repository.NewsletterRepository
}

func NewNewsletterService(nr repository.NewsletterRepository) NewsletterService {
	return &newsletterService{nr: nr}
}

func (s *newsletterService) Subscribe(ctx context.Context, input *transfer.SubscribeInput) (transfer.ValidationErrors, error) {
	if input == nil {
		return nil, errors.New("subscribe input is nil")
	}

	verrs := transfer.ValidationErrors{}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		verrs.Add("email", "E-mail é obrigatório.")
	} else if !emailPattern.MatchString(email) {
		verrs.Add("email", "E-mail inválido.")
	}
	if verrs.HasErrors() {
		return verrs, nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscriber id: %w", err)
	}

	fonte := strings.TrimSpace(input.Fonte)
	if fonte == "" {
		fonte = "site"
	}

	err = s.nr.Upsert(ctx, &models.NewsletterSubscriber{
		ID:       id,
		Email:    email,
		Nome:     strings.TrimSpace(input.Nome),
		Telefone: strings.TrimSpace(input.Telefone),
		Fonte:    fonte,
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *newsletterService) ListSubscribers(ctx context.Context) ([]*models.NewsletterSubscriber, error) {
	return s.nr.List(ctx)
}
