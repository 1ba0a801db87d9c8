package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-events/backend/internal/models"
)

// ErrDuplicate is returned when a registration already exists for the
// same (email, event_date) pair. The storage-level unique constraint
// backs the workflow's pre-check, closing the race between two
// concurrent submissions.
var ErrDuplicate = errors.New("already registered for this date")

// Repository handles registration persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a registrations repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ExistsByEmailAndDate reports whether a registration exists for the
// email on the given event date. A participant may register once per
// date, across different events.
func (r *Repository) ExistsByEmailAndDate(ctx context.Context, email string, eventDate time.Time) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM event_registration WHERE email = $1 AND event_date = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, q, email, models.DayOf(eventDate)).Scan(&exists)
	return exists, err
}

// Create inserts a registration with a server-assigned creation
// timestamp. Unique-constraint violations surface as ErrDuplicate.
func (r *Repository) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO event_registration (full_name, email, college_name, department, category, event_date, event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created`
	err := r.pool.QueryRow(ctx, q,
		reg.FullName, reg.Email, reg.CollegeName, reg.Department,
		reg.Category, models.DayOf(reg.EventDate), reg.EventID,
	).Scan(&reg.ID, &reg.Created)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
