package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/mentetech/blog-api/internal/models"
)

type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkEmailSent(ctx context.Context, id string) error
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message, deseja_newsletter, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.Name, message.Email, message.Phone,
		message.Subject, message.Message, message.DesejaNewsletter, models.ContactStatusNew)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, COALESCE(phone, ''), subject, message,
			COALESCE(deseja_newsletter, FALSE), COALESCE(email_sent, FALSE),
			status, created_at, updated_at
		FROM contact_messages
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message,
			&m.DesejaNewsletter, &m.EmailSent, &m.Status, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

func (r *contactRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE contact_messages SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contactRepository) MarkEmailSent(ctx context.Context, id string) error {
	query := `UPDATE contact_messages SET email_sent = TRUE, updated_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
