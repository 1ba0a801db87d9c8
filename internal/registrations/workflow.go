package registrations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/events"
	"github.com/campus-events/backend/internal/mailer"
	"github.com/campus-events/backend/internal/models"
	"github.com/campus-events/backend/internal/validate"
)

// EventStore resolves the event configuration a submission points at.
type EventStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.EventConfiguration, error)
}

// Store persists registrations.
type Store interface {
	ExistsByEmailAndDate(ctx context.Context, email string, eventDate time.Time) (bool, error)
	Create(ctx context.Context, reg *models.Registration) error
}

// Notifier dispatches confirmation emails for a persisted
// registration.
type Notifier interface {
	Notify(ctx context.Context, rec mailer.Record) error
}

// SubmitInput is one registration submission. Dates are YYYY-MM-DD;
// EventID is the id picked in the final cascading dropdown.
type SubmitInput struct {
	FullName    string
	Email       string
	CollegeName string
	Department  string
	Category    string
	EventDate   string
	EventID     string
}

// Workflow orchestrates one submission: validate input, re-check the
// selected event against the current clock, check for a duplicate,
// persist, notify, acknowledge. Notification failures are logged and
// never roll back the persisted registration.
type Workflow struct {
	events   EventStore
	store    Store
	notifier Notifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewWorkflow creates a registration workflow. A nil now defaults to
// time.Now.
func NewWorkflow(events EventStore, store Store, notifier Notifier, now func() time.Time, logger *zap.Logger) *Workflow {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{events: events, store: store, notifier: notifier, now: now, logger: logger}
}

// Submit validates and persists one registration. It returns
// validate.FieldErrors for recoverable input problems; any other error
// is a system failure the handler reports generically.
func (w *Workflow) Submit(ctx context.Context, input SubmitInput) (*models.Registration, error) {
	errs := validate.FieldErrors{}

	if !validate.Email(input.Email) {
		errs.Add("email", "Please enter a valid email address.")
	}
	textFields := []struct{ field, label, value string }{
		{"full_name", "Full name", input.FullName},
		{"college_name", "College name", input.CollegeName},
		{"department", "Department", input.Department},
	}
	for _, f := range textFields {
		if !validate.PlainText(f.value) {
			errs.Add(f.field, f.label+" should only contain letters, numbers, and spaces.")
		}
	}

	eventDate, dateErr := time.Parse(models.DateFormat, input.EventDate)
	if dateErr != nil {
		errs.Add("event_date", "Select a valid event date.")
	}
	eventID, idErr := uuid.Parse(input.EventID)
	if idErr != nil {
		errs.Add("event_name", "Select a valid event.")
	}

	// Duplicate check runs after the text-pattern checks, keyed on
	// (email, event_date): one registration per date, across events.
	if _, emailBad := errs["email"]; !emailBad && dateErr == nil {
		exists, err := w.store.ExistsByEmailAndDate(ctx, input.Email, eventDate)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if exists {
			errs.Add("email", "You are already registered for this event.")
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	// The client-supplied selection is not trusted: the registration
	// window may have closed mid-interaction, and the event name is
	// resolved again from the store.
	ev, err := w.events.GetByID(ctx, eventID)
	if errors.Is(err, events.ErrNotFound) {
		errs.Add("event_name", "This event is no longer open for registration.")
		return nil, errs
	}
	if err != nil {
		return nil, fmt.Errorf("resolve event: %w", err)
	}
	if !ev.OpenAt(w.now()) || ev.Category != input.Category || !models.DayOf(ev.EventDate).Equal(models.DayOf(eventDate)) {
		errs.Add("event_name", "This event is no longer open for registration.")
		return nil, errs
	}

	reg := &models.Registration{
		FullName:    input.FullName,
		Email:       input.Email,
		CollegeName: input.CollegeName,
		Department:  input.Department,
		Category:    input.Category,
		EventDate:   eventDate,
		EventID:     eventID,
	}
	if err := w.store.Create(ctx, reg); err != nil {
		if errors.Is(err, ErrDuplicate) {
			errs.Add("email", "You are already registered for this event.")
			return nil, errs
		}
		return nil, fmt.Errorf("persist registration: %w", err)
	}

	rec := mailer.Record{
		RegistrationID: reg.ID,
		FullName:       reg.FullName,
		Email:          reg.Email,
		CollegeName:    reg.CollegeName,
		Department:     reg.Department,
		Category:       reg.Category,
		EventDate:      reg.EventDate.Format(models.DateFormat),
		EventName:      ev.EventName,
	}
	if err := w.notifier.Notify(ctx, rec); err != nil {
		w.logger.Warn("registration notification failed",
			zap.Error(err),
			zap.String("registration_id", reg.ID.String()))
	}
	return reg, nil
}
