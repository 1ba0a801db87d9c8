package models

import "time"

// Settings holds the notification settings managed on the admin
// settings page. Stored as a single row.
type Settings struct {
	AdminEmail          string    `json:"admin_email"`
	EnableNotifications bool      `json:"enable_notifications"`
	UpdatedAt           time.Time `json:"updated_at"`
}
