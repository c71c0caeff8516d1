package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	config "github.com/mentetech/blog-api/configs"
	"github.com/mentetech/blog-api/internal/models"
	"github.com/mentetech/blog-api/internal/repository"
	"github.com/mentetech/blog-api/internal/transfer"
)

const resendEndpoint = "https://api.resend.com/emails"

type ContactService interface {
	Submit(ctx context.Context, input *transfer.ContactInput) (transfer.ValidationErrors, error)
	ListMessages(ctx context.Context) ([]*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type contactService struct {
	cfg        config.Config
	cr         repository.ContactRepository
	newsletter NewsletterService
	httpClient *http.Client
}

func NewContactService(cfg config.Config, cr repository.ContactRepository, newsletter NewsletterService) ContactService {
	return &contactService{
		cfg:        cfg,
		cr:         cr,
		newsletter: newsletter,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Submit stores the message, honors the newsletter opt-in and notifies both
// sides by email. Email delivery is best effort: a failed send leaves the
// stored message with email_sent = false, it never fails the submission.
func (s *contactService) Submit(ctx context.Context, input *transfer.ContactInput) (transfer.ValidationErrors, error) {
	if input == nil {
		return nil, errors.New("contact input is nil")
	}

	verrs := transfer.ValidationErrors{}
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)

	if name == "" {
		verrs.Add("name", "Nome é obrigatório.")
	}
	if email == "" {
		verrs.Add("email", "E-mail é obrigatório.")
	} else if !emailPattern.MatchString(email) {
		verrs.Add("email", "E-mail inválido.")
	}
	if subject == "" {
		verrs.Add("subject", "Assunto é obrigatório.")
	}
	if message == "" {
		verrs.Add("message", "Mensagem é obrigatória.")
	}
	if verrs.HasErrors() {
		return verrs, nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate message id: %w", err)
	}

	record := &models.ContactMessage{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            strings.TrimSpace(input.Phone),
		Subject:          subject,
		Message:          message,
		DesejaNewsletter: input.DesejaNewsletter,
	}
	if err := s.cr.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("error saving contact message: %w", err)
	}

	if input.DesejaNewsletter {
		_, err := s.newsletter.Subscribe(ctx, &transfer.SubscribeInput{
			Email: email,
			Nome:  name,
			Fonte: "contato",
		})
		if err != nil {
			slog.Info("newsletter opt-in failed", "error", err)
		}
	}

	if s.sendNotifications(ctx, record) {
		if err := s.cr.MarkEmailSent(ctx, id); err != nil {
			slog.Info(err.Error())
		}
	}

	return nil, nil
}

func (s *contactService) sendNotifications(ctx context.Context, record *models.ContactMessage) bool {
	if s.cfg.ResendAPIKey == "" {
		return false
	}

	escaped := html.EscapeString(record.Message)
	body := strings.ReplaceAll(escaped, "\n", "<br>")

	ownerHTML := fmt.Sprintf(
		`<h2>Nova Mensagem de Contato</h2>
		<p><strong>Nome:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Assunto:</strong> %s</p>
		<p><strong>Mensagem:</strong></p>
		<p>%s</p>`,
		html.EscapeString(record.Name), html.EscapeString(record.Email),
		html.EscapeString(record.Subject), body,
	)
	if err := s.sendEmail(ctx, s.cfg.ContactEmail, "Nova Mensagem de Contato: "+record.Subject, ownerHTML); err != nil {
		slog.Info("owner notification failed", "error", err)
		return false
	}

	userHTML := fmt.Sprintf(
		`<h1>Obrigado por entrar em contato, %s!</h1>
		<p>Recebemos sua mensagem e retornaremos em breve.</p>
		<p><strong>Assunto:</strong> %s</p>
		<p><strong>Sua mensagem:</strong></p>
		<p>%s</p>`,
		html.EscapeString(record.Name), html.EscapeString(record.Subject), body,
	)
	if err := s.sendEmail(ctx, record.Email, "Recebemos sua mensagem!", userHTML); err != nil {
		slog.Info("confirmation email failed", "error", err)
	}

	return true
}

// sendEmail posts to the Resend REST API; delivery itself is the provider's
// problem.
func (s *contactService) sendEmail(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(map[string]any{
		"from":    s.cfg.SenderEmail,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *contactService) ListMessages(ctx context.Context) ([]*models.ContactMessage, error) {
	return s.cr.List(ctx)
}

func (s *contactService) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusAnswered:
	default:
		return fmt.Errorf("invalid contact status %q", status)
	}
	return s.cr.UpdateStatus(ctx, id, status)
}
