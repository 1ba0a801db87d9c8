package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/models"
)

// Email subjects.
const (
	SubjectUserConfirmation  = "Event Registration Confirmation"
	SubjectAdminNotification = "New Event Registration"
)

// Record is the assembled registration passed to the notification
// service after a successful submission.
type Record struct {
	RegistrationID uuid.UUID
	FullName       string
	Email          string
	CollegeName    string
	Department     string
	Category       string
	EventDate      string
	EventName      string
}

// SettingsSource provides the current notification settings.
type SettingsSource interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// LogStore records dispatch attempts. May be nil to disable logging.
type LogStore interface {
	Create(ctx context.Context, l *models.NotificationLog) error
}

// Service formats and dispatches registration emails. Dispatch is
// gated by the enable_notifications setting; the admin copy is sent
// only when an admin address is configured.
type Service struct {
	settings SettingsSource
	sender   Sender
	logs     LogStore
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a notification service. A nil now defaults to
// time.Now.
func NewService(settings SettingsSource, sender Sender, logs LogStore, now func() time.Time, logger *zap.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{settings: settings, sender: sender, logs: logs, now: now, logger: logger}
}

// Notify sends the registrant confirmation and, when an admin address
// is configured, the admin notification. The first failure is
// returned; the caller decides whether to act on it.
func (s *Service) Notify(ctx context.Context, rec Record) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load notification settings: %w", err)
	}
	if !settings.EnableNotifications {
		return nil
	}

	var firstErr error
	if err := s.dispatch(ctx, rec, models.MailTypeUserConfirmation, rec.Email, SubjectUserConfirmation, UserBody(rec)); err != nil {
		firstErr = err
	}
	if settings.AdminEmail != "" {
		if err := s.dispatch(ctx, rec, models.MailTypeAdminNotification, settings.AdminEmail, SubjectAdminNotification, AdminBody(rec)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Service) dispatch(ctx context.Context, rec Record, mailType, to, subject, body string) error {
	err := s.sender.Send(to, subject, body)

	entry := &models.NotificationLog{
		RegistrationID: rec.RegistrationID,
		MailType:       mailType,
		RecipientEmail: to,
		Subject:        subject,
		Status:         models.MailStatusSent,
	}
	if err != nil {
		entry.Status = models.MailStatusFailed
		entry.ErrorMessage = err.Error()
	} else {
		sentAt := s.now()
		entry.SentAt = &sentAt
	}
	if s.logs != nil {
		if logErr := s.logs.Create(ctx, entry); logErr != nil {
			s.logger.Warn("record notification log", zap.Error(logErr))
		}
	}
	return err
}

// UserBody renders the plain-text confirmation sent to the registrant.
func UserBody(rec Record) string {
	return "Dear " + rec.FullName + ",\n\n" +
		"Thank you for registering for our event!\n\n" +
		"Registration Details:\n" +
		"-------------------\n" +
		"Event Name: " + rec.EventName + "\n" +
		"Category: " + rec.Category + "\n" +
		"Event Date: " + rec.EventDate + "\n" +
		"College: " + rec.CollegeName + "\n" +
		"Department: " + rec.Department + "\n\n" +
		"We look forward to seeing you at the event!\n\n" +
		"Best regards,\n" +
		"Event Management Team"
}

// AdminBody renders the plain-text notification sent to the admin
// address. Unlike the registrant copy it includes the email address.
func AdminBody(rec Record) string {
	return "New Event Registration Received\n\n" +
		"Participant Details:\n" +
		"-------------------\n" +
		"Name: " + rec.FullName + "\n" +
		"Email: " + rec.Email + "\n" +
		"College: " + rec.CollegeName + "\n" +
		"Department: " + rec.Department + "\n\n" +
		"Event Details:\n" +
		"-------------------\n" +
		"Event Name: " + rec.EventName + "\n" +
		"Category: " + rec.Category + "\n" +
		"Event Date: " + rec.EventDate + "\n"
}
