package settings

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-events/backend/internal/models"
)

// Repository handles the single-row notification settings.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a settings repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get returns the current settings. The row is seeded by migration, so
// it always exists.
func (r *Repository) Get(ctx context.Context) (*models.Settings, error) {
	const q = `SELECT admin_email, enable_notifications, updated_at FROM event_settings WHERE id = 1`
	var s models.Settings
	err := r.pool.QueryRow(ctx, q).Scan(&s.AdminEmail, &s.EnableNotifications, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces the settings.
func (r *Repository) Update(ctx context.Context, adminEmail string, enableNotifications bool) (*models.Settings, error) {
	const q = `UPDATE event_settings SET admin_email = $1, enable_notifications = $2, updated_at = NOW()
		WHERE id = 1
		RETURNING admin_email, enable_notifications, updated_at`
	var s models.Settings
	err := r.pool.QueryRow(ctx, q, adminEmail, enableNotifications).Scan(&s.AdminEmail, &s.EnableNotifications, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
