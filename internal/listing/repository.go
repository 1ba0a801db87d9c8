package listing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-events/backend/internal/models"
)

// MissingEventName is shown when a registration references an event id
// that no longer exists in the configuration table.
const MissingEventName = "N/A"

// Row is one registration joined with its event name for the admin
// listing and CSV export.
type Row struct {
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CollegeName string    `json:"college_name"`
	Department  string    `json:"department"`
	Category    string    `json:"category"`
	EventDate   time.Time `json:"event_date"`
	EventName   string    `json:"event_name"`
	Created     time.Time `json:"created"`
}

// EventDateString is the wire form of the event date.
func (r Row) EventDateString() string {
	return r.EventDate.Format(models.DateFormat)
}

// Filter narrows the listing. EventID matches the registration's
// event_id exactly; the HTTP parameter carrying it is named
// event_name for compatibility with the original form.
type Filter struct {
	EventDate *time.Time
	EventID   *uuid.UUID
}

// EventOption is one entry of the event filter dropdown.
type EventOption struct {
	ID        uuid.UUID `json:"id"`
	EventName string    `json:"event_name"`
}

// Repository reads registrations joined with event names.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a listing repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns registrations matching the filter, newest first. The
// event join can legitimately miss; such rows carry MissingEventName.
func (r *Repository) List(ctx context.Context, f Filter) ([]Row, error) {
	const q = `SELECT er.full_name, er.email, er.college_name, er.department, er.category, er.event_date,
			COALESCE(ec.event_name, '` + MissingEventName + `'), er.created
		FROM event_registration er
		LEFT JOIN event_configuration ec ON ec.id = er.event_id
		WHERE ($1::date IS NULL OR er.event_date = $1)
		  AND ($2::uuid IS NULL OR er.event_id = $2)
		ORDER BY er.created DESC`
	var date *time.Time
	if f.EventDate != nil {
		d := models.DayOf(*f.EventDate)
		date = &d
	}
	rows, err := r.pool.Query(ctx, q, date, f.EventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.FullName, &row.Email, &row.CollegeName, &row.Department, &row.Category, &row.EventDate, &row.EventName, &row.Created); err != nil {
			return nil, err
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DistinctDates returns the distinct event dates present among
// registrations, newest first, for the filter dropdown.
func (r *Repository) DistinctDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT event_date FROM event_registration ORDER BY event_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// EventOptions returns the events that actually have registrations,
// optionally narrowed to one event date, for the filter dropdown.
func (r *Repository) EventOptions(ctx context.Context, eventDate *time.Time) ([]EventOption, error) {
	const q = `SELECT DISTINCT er.event_id, COALESCE(ec.event_name, '` + MissingEventName + `')
		FROM event_registration er
		LEFT JOIN event_configuration ec ON ec.id = er.event_id
		WHERE ($1::date IS NULL OR er.event_date = $1)
		ORDER BY 2`
	var date *time.Time
	if eventDate != nil {
		d := models.DayOf(*eventDate)
		date = &d
	}
	rows, err := r.pool.Query(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var opts []EventOption
	for rows.Next() {
		var o EventOption
		if err := rows.Scan(&o.ID, &o.EventName); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}
