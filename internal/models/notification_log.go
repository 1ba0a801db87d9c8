package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification log email types.
const (
	MailTypeUserConfirmation  = "user_confirmation"
	MailTypeAdminNotification = "admin_notification"
)

// Notification log statuses.
const (
	MailStatusSent   = "sent"
	MailStatusFailed = "failed"
)

// NotificationLog records one email dispatch attempt for a
// registration.
type NotificationLog struct {
	ID             uuid.UUID  `json:"id"`
	RegistrationID uuid.UUID  `json:"registration_id"`
	MailType       string     `json:"mail_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject"`
	Status         string     `json:"status"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
