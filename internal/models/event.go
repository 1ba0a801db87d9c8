package models

import (
	"time"

	"github.com/google/uuid"
)

// DateFormat is the wire format for all calendar dates (registration
// windows, event dates, filters).
const DateFormat = "2006-01-02"

// Categories is the fixed set of event categories.
var Categories = []string{
	"Online Workshop",
	"Hackathon",
	"Seminar",
	"Conference",
	"Training",
}

// ValidCategory reports whether c is one of the configured categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// EventConfiguration is an administrator-defined event with its
// registration window and occurrence date.
type EventConfiguration struct {
	ID           uuid.UUID `json:"id"`
	EventName    string    `json:"event_name"`
	Category     string    `json:"category"`
	RegStartDate time.Time `json:"reg_start_date"`
	RegEndDate   time.Time `json:"reg_end_date"`
	EventDate    time.Time `json:"event_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// OpenAt reports whether the registration window [reg_start_date,
// reg_end_date] contains the given day (inclusive on both ends).
func (e *EventConfiguration) OpenAt(asOf time.Time) bool {
	day := DayOf(asOf)
	return !day.Before(DayOf(e.RegStartDate)) && !day.After(DayOf(e.RegEndDate))
}

// DayOf normalizes a timestamp to its calendar day at midnight UTC.
// Dates scanned from Postgres DATE columns already have this shape.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
