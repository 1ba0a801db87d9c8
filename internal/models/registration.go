package models

import (
	"time"

	"github.com/google/uuid"
)

// Registration is one participant's submission against an event
// configuration. Category and event date are copied from the selected
// event at submission time; the event itself may later disappear
// without affecting the registration row.
type Registration struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	CollegeName string    `json:"college_name"`
	Department  string    `json:"department"`
	Category    string    `json:"category"`
	EventDate   time.Time `json:"event_date"`
	EventID     uuid.UUID `json:"event_id"`
	Created     time.Time `json:"created"`
}
