package maillog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-events/backend/internal/models"
)

// Repository handles notification_logs persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a notification log repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts one dispatch attempt.
func (r *Repository) Create(ctx context.Context, l *models.NotificationLog) error {
	const q = `INSERT INTO notification_logs (registration_id, mail_type, recipient_email, subject, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q,
		l.RegistrationID, l.MailType, l.RecipientEmail, l.Subject, l.Status, l.ErrorMessage, l.SentAt,
	).Scan(&l.ID, &l.CreatedAt)
}

// List returns dispatch attempts, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]models.NotificationLog, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT id, registration_id, mail_type, recipient_email, subject, status, COALESCE(error_message, ''), sent_at, created_at
		FROM notification_logs
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.NotificationLog
	for rows.Next() {
		var l models.NotificationLog
		if err := rows.Scan(&l.ID, &l.RegistrationID, &l.MailType, &l.RecipientEmail, &l.Subject, &l.Status, &l.ErrorMessage, &l.SentAt, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
