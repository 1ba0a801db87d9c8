package registrations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/backend/internal/events"
	"github.com/campus-events/backend/internal/mailer"
	"github.com/campus-events/backend/internal/models"
	"github.com/campus-events/backend/internal/validate"
)

func date(s string) time.Time {
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeEventStore struct {
	event *models.EventConfiguration
	err   error
}

func (f *fakeEventStore) GetByID(ctx context.Context, id uuid.UUID) (*models.EventConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.event == nil || f.event.ID != id {
		return nil, events.ErrNotFound
	}
	return f.event, nil
}

type fakeStore struct {
	exists    bool
	existsErr error
	createErr error
	created   *models.Registration
}

func (f *fakeStore) ExistsByEmailAndDate(ctx context.Context, email string, eventDate time.Time) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeStore) Create(ctx context.Context, reg *models.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = uuid.New()
	reg.Created = time.Now()
	f.created = reg
	return nil
}

type fakeNotifier struct {
	records []mailer.Record
	err     error
}

func (f *fakeNotifier) Notify(ctx context.Context, rec mailer.Record) error {
	f.records = append(f.records, rec)
	return f.err
}

func openSeminar() *models.EventConfiguration {
	return &models.EventConfiguration{
		ID:           uuid.New(),
		EventName:    "Annual Research Seminar",
		Category:     "Seminar",
		RegStartDate: date("2024-05-01"),
		RegEndDate:   date("2024-05-31"),
		EventDate:    date("2024-06-01"),
	}
}

func validInput(ev *models.EventConfiguration) SubmitInput {
	return SubmitInput{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		CollegeName: "ABC College",
		Department:  "CS",
		Category:    ev.Category,
		EventDate:   ev.EventDate.Format(models.DateFormat),
		EventID:     ev.ID.String(),
	}
}

func newTestWorkflow(ev *models.EventConfiguration, store *fakeStore, notifier *fakeNotifier) *Workflow {
	clock := func() time.Time { return date("2024-05-15") }
	return NewWorkflow(&fakeEventStore{event: ev}, store, notifier, clock, nil)
}

func TestSubmitSuccess(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(ev, store, notifier)

	reg, err := w.Submit(context.Background(), validInput(ev))
	require.NoError(t, err)
	require.NotNil(t, reg)

	require.NotNil(t, store.created)
	assert.Equal(t, "Jane Doe", store.created.FullName)
	assert.Equal(t, ev.ID, store.created.EventID)
	assert.Equal(t, "Seminar", store.created.Category)

	// Event name is resolved from the store at submit time and handed
	// to the notifier with the rest of the record.
	require.Len(t, notifier.records, 1)
	rec := notifier.records[0]
	assert.Equal(t, "Annual Research Seminar", rec.EventName)
	assert.Equal(t, "jane@example.com", rec.Email)
	assert.Equal(t, "2024-06-01", rec.EventDate)
}

func TestSubmitCollectsFieldErrors(t *testing.T) {
	ev := openSeminar()
	w := newTestWorkflow(ev, &fakeStore{}, &fakeNotifier{})

	input := validInput(ev)
	input.Email = "not-an-email"
	input.FullName = "Jane! Doe"
	input.Department = "C&S"

	_, err := w.Submit(context.Background(), input)
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "department")
	assert.NotContains(t, fields, "college_name")
}

func TestSubmitDuplicateRejected(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{exists: true}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(ev, store, notifier)

	_, err := w.Submit(context.Background(), validInput(ev))
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "You are already registered for this event.", fields["email"])
	assert.Nil(t, store.created)
	assert.Empty(t, notifier.records)
}

func TestSubmitDuplicateConstraintViolation(t *testing.T) {
	// Pre-check passes but the insert hits the unique constraint: the
	// race loser still gets the validation error, not a system error.
	ev := openSeminar()
	store := &fakeStore{createErr: ErrDuplicate}
	w := newTestWorkflow(ev, store, &fakeNotifier{})

	_, err := w.Submit(context.Background(), validInput(ev))
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
}

func TestSubmitClosedWindowRejected(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{}
	w := NewWorkflow(&fakeEventStore{event: ev}, store, &fakeNotifier{},
		func() time.Time { return date("2024-06-15") }, nil)

	_, err := w.Submit(context.Background(), validInput(ev))
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "event_name")
	assert.Nil(t, store.created)
}

func TestSubmitUnknownEventRejected(t *testing.T) {
	ev := openSeminar()
	w := newTestWorkflow(ev, &fakeStore{}, &fakeNotifier{})

	input := validInput(ev)
	input.EventID = uuid.NewString()

	_, err := w.Submit(context.Background(), input)
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "event_name")
}

func TestSubmitCategoryMismatchRejected(t *testing.T) {
	ev := openSeminar()
	w := newTestWorkflow(ev, &fakeStore{}, &fakeNotifier{})

	input := validInput(ev)
	input.Category = "Hackathon"

	_, err := w.Submit(context.Background(), input)
	fields, ok := validate.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "event_name")
}

func TestSubmitNotificationFailureDoesNotFail(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	w := newTestWorkflow(ev, store, notifier)

	reg, err := w.Submit(context.Background(), validInput(ev))
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.NotNil(t, store.created)
}

func TestSubmitPersistenceFailureIsSystemError(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{createErr: errors.New("connection reset")}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(ev, store, notifier)

	_, err := w.Submit(context.Background(), validInput(ev))
	require.Error(t, err)
	_, ok := validate.AsFieldErrors(err)
	assert.False(t, ok)
	assert.Empty(t, notifier.records)
}

func TestSubmitSameEmailDifferentDateAllowed(t *testing.T) {
	ev := openSeminar()
	store := &fakeStore{exists: false}
	w := newTestWorkflow(ev, store, &fakeNotifier{})

	// The duplicate key is (email, event_date); the store fake reports
	// no existing registration for this date.
	reg, err := w.Submit(context.Background(), validInput(ev))
	require.NoError(t, err)
	assert.NotNil(t, reg)
}
