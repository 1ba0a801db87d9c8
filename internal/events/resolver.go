package events

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campus-events/backend/internal/models"
)

// EventSource provides the events open for registration at a point in
// time. Satisfied by *Repository.
type EventSource interface {
	ListOpen(ctx context.Context, asOf time.Time) ([]models.EventConfiguration, error)
}

// Option is one selectable event in the final cascading dropdown.
type Option struct {
	ID        uuid.UUID `json:"id"`
	EventName string    `json:"event_name"`
}

// Resolver computes the valid next set of options for the cascading
// category -> date -> event selection. Every call re-filters by the
// injected clock: a choice made earlier in a session is no longer
// offered once its registration window closes.
type Resolver struct {
	events EventSource
	now    func() time.Time
}

// NewResolver creates a resolver. A nil now defaults to time.Now.
func NewResolver(events EventSource, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{events: events, now: now}
}

// ActiveCategories returns the distinct categories among events whose
// registration window is open, sorted alphabetically.
func (r *Resolver) ActiveCategories(ctx context.Context) ([]string, error) {
	asOf := r.now()
	open, err := r.events.ListOpen(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return ActiveCategories(open, asOf), nil
}

// DatesForCategory returns the distinct event dates for a category
// among open events, ascending.
func (r *Resolver) DatesForCategory(ctx context.Context, category string) ([]time.Time, error) {
	asOf := r.now()
	open, err := r.events.ListOpen(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return DatesForCategory(open, category, asOf), nil
}

// OptionsForCategoryAndDate returns the candidate events matching
// category and date among open events, ordered by name.
func (r *Resolver) OptionsForCategoryAndDate(ctx context.Context, category string, date time.Time) ([]Option, error) {
	asOf := r.now()
	open, err := r.events.ListOpen(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return OptionsForCategoryAndDate(open, category, date, asOf), nil
}

// ActiveCategories filters events to those open at asOf and returns
// their distinct categories sorted alphabetically.
func ActiveCategories(events []models.EventConfiguration, asOf time.Time) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range events {
		ev := &events[i]
		if !ev.OpenAt(asOf) {
			continue
		}
		if _, ok := seen[ev.Category]; ok {
			continue
		}
		seen[ev.Category] = struct{}{}
		out = append(out, ev.Category)
	}
	sort.Strings(out)
	return out
}

// DatesForCategory returns the distinct event dates of open events in
// the category, ascending.
func DatesForCategory(events []models.EventConfiguration, category string, asOf time.Time) []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for i := range events {
		ev := &events[i]
		if ev.Category != category || !ev.OpenAt(asOf) {
			continue
		}
		day := models.DayOf(ev.EventDate)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// OptionsForCategoryAndDate returns open events matching category and
// date, ordered by event name.
func OptionsForCategoryAndDate(events []models.EventConfiguration, category string, date time.Time, asOf time.Time) []Option {
	day := models.DayOf(date)
	var out []Option
	for i := range events {
		ev := &events[i]
		if ev.Category != category || !ev.OpenAt(asOf) {
			continue
		}
		if !models.DayOf(ev.EventDate).Equal(day) {
			continue
		}
		out = append(out, Option{ID: ev.ID, EventName: ev.EventName})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventName < out[j].EventName })
	return out
}
