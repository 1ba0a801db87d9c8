package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-events/backend/internal/models"
)

// ErrNotFound is returned when no event configuration matches the id.
var ErrNotFound = errors.New("event not found")

// Repository handles event configuration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts one event configuration and fills in the assigned id.
func (r *Repository) Create(ctx context.Context, ev *models.EventConfiguration) error {
	const q = `INSERT INTO event_configuration (event_name, category, reg_start_date, reg_end_date, event_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	return r.pool.QueryRow(ctx, q, ev.EventName, ev.Category, ev.RegStartDate, ev.RegEndDate, ev.EventDate).
		Scan(&ev.ID, &ev.CreatedAt)
}

// GetByID returns an event configuration by id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.EventConfiguration, error) {
	const q = `SELECT id, event_name, category, reg_start_date, reg_end_date, event_date, created_at
		FROM event_configuration WHERE id = $1`
	var ev models.EventConfiguration
	err := r.pool.QueryRow(ctx, q, id).Scan(&ev.ID, &ev.EventName, &ev.Category, &ev.RegStartDate, &ev.RegEndDate, &ev.EventDate, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// ListOpen returns events whose registration window contains asOf.
func (r *Repository) ListOpen(ctx context.Context, asOf time.Time) ([]models.EventConfiguration, error) {
	const q = `SELECT id, event_name, category, reg_start_date, reg_end_date, event_date, created_at
		FROM event_configuration
		WHERE reg_start_date <= $1 AND reg_end_date >= $1
		ORDER BY event_date, event_name`
	rows, err := r.pool.Query(ctx, q, models.DayOf(asOf))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventConfiguration
	for rows.Next() {
		var ev models.EventConfiguration
		if err := rows.Scan(&ev.ID, &ev.EventName, &ev.Category, &ev.RegStartDate, &ev.RegEndDate, &ev.EventDate, &ev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}

// List returns all event configurations, newest first.
func (r *Repository) List(ctx context.Context) ([]models.EventConfiguration, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, event_name, category, reg_start_date, reg_end_date, event_date, created_at
		FROM event_configuration ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EventConfiguration
	for rows.Next() {
		var ev models.EventConfiguration
		if err := rows.Scan(&ev.ID, &ev.EventName, &ev.Category, &ev.RegStartDate, &ev.RegEndDate, &ev.EventDate, &ev.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, ev)
	}
	return list, rows.Err()
}
