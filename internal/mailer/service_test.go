package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/backend/internal/models"
)

type fakeSettings struct {
	settings models.Settings
	err      error
}

func (f *fakeSettings) Get(ctx context.Context) (*models.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := f.settings
	return &s, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

type fakeLogStore struct {
	entries []models.NotificationLog
}

func (f *fakeLogStore) Create(ctx context.Context, l *models.NotificationLog) error {
	f.entries = append(f.entries, *l)
	return nil
}

func testRecord() Record {
	return Record{
		RegistrationID: uuid.New(),
		FullName:       "Jane Doe",
		Email:          "jane@example.com",
		CollegeName:    "ABC College",
		Department:     "CS",
		Category:       "Seminar",
		EventDate:      "2024-06-01",
		EventName:      "Annual Research Seminar",
	}
}

func newTestService(settings models.Settings, sender *fakeSender, logs *fakeLogStore) *Service {
	clock := func() time.Time { return time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) }
	return NewService(&fakeSettings{settings: settings}, sender, logs, clock, nil)
}

func TestNotifyDisabledSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogStore{}
	svc := newTestService(models.Settings{EnableNotifications: false, AdminEmail: "admin@example.com"}, sender, logs)

	err := svc.Notify(context.Background(), testRecord())
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
	assert.Empty(t, logs.entries)
}

func TestNotifyWithoutAdminAddressOnlyRegistrant(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(models.Settings{EnableNotifications: true}, sender, &fakeLogStore{})

	err := svc.Notify(context.Background(), testRecord())
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].to)
	assert.Equal(t, SubjectUserConfirmation, sender.sent[0].subject)
}

func TestNotifySendsAdminCopy(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(models.Settings{EnableNotifications: true, AdminEmail: "admin@example.com"}, sender, &fakeLogStore{})

	err := svc.Notify(context.Background(), testRecord())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "jane@example.com", sender.sent[0].to)
	assert.Equal(t, "admin@example.com", sender.sent[1].to)
	assert.Equal(t, SubjectAdminNotification, sender.sent[1].subject)
}

func TestUserBodyContents(t *testing.T) {
	body := UserBody(testRecord())
	assert.Contains(t, body, "Dear Jane Doe,")
	assert.Contains(t, body, "Event Name: Annual Research Seminar")
	assert.Contains(t, body, "Category: Seminar")
	assert.Contains(t, body, "Event Date: 2024-06-01")
	assert.Contains(t, body, "College: ABC College")
	assert.Contains(t, body, "Department: CS")
	assert.Contains(t, body, "Event Management Team")
	// The registrant copy never echoes the email address.
	assert.NotContains(t, body, "jane@example.com")
}

func TestAdminBodyIncludesEmail(t *testing.T) {
	body := AdminBody(testRecord())
	assert.Contains(t, body, "Name: Jane Doe")
	assert.Contains(t, body, "Email: jane@example.com")
	assert.Contains(t, body, "Event Name: Annual Research Seminar")
}

func TestNotifyRecordsDispatchLog(t *testing.T) {
	sender := &fakeSender{}
	logs := &fakeLogStore{}
	svc := newTestService(models.Settings{EnableNotifications: true, AdminEmail: "admin@example.com"}, sender, logs)

	rec := testRecord()
	require.NoError(t, svc.Notify(context.Background(), rec))

	require.Len(t, logs.entries, 2)
	assert.Equal(t, models.MailTypeUserConfirmation, logs.entries[0].MailType)
	assert.Equal(t, models.MailStatusSent, logs.entries[0].Status)
	assert.NotNil(t, logs.entries[0].SentAt)
	assert.Equal(t, rec.RegistrationID, logs.entries[0].RegistrationID)
	assert.Equal(t, models.MailTypeAdminNotification, logs.entries[1].MailType)
}

func TestNotifySendFailureLoggedAndReturned(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	logs := &fakeLogStore{}
	svc := newTestService(models.Settings{EnableNotifications: true}, sender, logs)

	err := svc.Notify(context.Background(), testRecord())
	require.Error(t, err)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, models.MailStatusFailed, logs.entries[0].Status)
	assert.Contains(t, logs.entries[0].ErrorMessage, "smtp down")
	assert.Nil(t, logs.entries[0].SentAt)
}

func TestNotifySettingsFailure(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(&fakeSettings{err: errors.New("db down")}, sender, nil, nil, nil)

	err := svc.Notify(context.Background(), testRecord())
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}
