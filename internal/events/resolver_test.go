package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-events/backend/internal/models"
)

func date(s string) time.Time {
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixtureEvents() []models.EventConfiguration {
	return []models.EventConfiguration{
		{
			ID:           uuid.New(),
			EventName:    "Cloud Workshop",
			Category:     "Online Workshop",
			RegStartDate: date("2024-01-01"),
			RegEndDate:   date("2024-01-31"),
			EventDate:    date("2024-02-10"),
		},
		{
			ID:           uuid.New(),
			EventName:    "Alpha Seminar",
			Category:     "Seminar",
			RegStartDate: date("2024-01-10"),
			RegEndDate:   date("2024-02-15"),
			EventDate:    date("2024-03-01"),
		},
		{
			ID:           uuid.New(),
			EventName:    "Beta Seminar",
			Category:     "Seminar",
			RegStartDate: date("2024-01-10"),
			RegEndDate:   date("2024-02-15"),
			EventDate:    date("2024-03-01"),
		},
		{
			ID:           uuid.New(),
			EventName:    "Late Seminar",
			Category:     "Seminar",
			RegStartDate: date("2024-01-10"),
			RegEndDate:   date("2024-02-15"),
			EventDate:    date("2024-02-20"),
		},
	}
}

func TestActiveCategoriesFiltersClosedWindows(t *testing.T) {
	evs := fixtureEvents()

	// Both windows open mid January.
	cats := ActiveCategories(evs, date("2024-01-15"))
	assert.Equal(t, []string{"Online Workshop", "Seminar"}, cats)

	// The workshop window closed on Jan 31.
	cats = ActiveCategories(evs, date("2024-02-01"))
	assert.Equal(t, []string{"Seminar"}, cats)

	// Everything closed.
	cats = ActiveCategories(evs, date("2024-03-01"))
	assert.Empty(t, cats)
}

func TestActiveCategoriesWindowBoundsInclusive(t *testing.T) {
	evs := fixtureEvents()
	assert.Contains(t, ActiveCategories(evs, date("2024-01-01")), "Online Workshop")
	assert.Contains(t, ActiveCategories(evs, date("2024-01-31")), "Online Workshop")
	assert.NotContains(t, ActiveCategories(evs, date("2023-12-31")), "Online Workshop")
}

func TestDatesForCategoryDistinctAscending(t *testing.T) {
	evs := fixtureEvents()
	dates := DatesForCategory(evs, "Seminar", date("2024-02-01"))
	require.Len(t, dates, 2)
	assert.Equal(t, date("2024-02-20"), dates[0])
	assert.Equal(t, date("2024-03-01"), dates[1])

	assert.Empty(t, DatesForCategory(evs, "Hackathon", date("2024-02-01")))
}

func TestOptionsForCategoryAndDateOrderedByName(t *testing.T) {
	evs := fixtureEvents()
	opts := OptionsForCategoryAndDate(evs, "Seminar", date("2024-03-01"), date("2024-02-01"))
	require.Len(t, opts, 2)
	assert.Equal(t, "Alpha Seminar", opts[0].EventName)
	assert.Equal(t, "Beta Seminar", opts[1].EventName)
}

type stubEventSource struct {
	events []models.EventConfiguration
}

func (s *stubEventSource) ListOpen(ctx context.Context, asOf time.Time) ([]models.EventConfiguration, error) {
	var open []models.EventConfiguration
	for _, ev := range s.events {
		if ev.OpenAt(asOf) {
			open = append(open, ev)
		}
	}
	return open, nil
}

func TestResolverUsesInjectedClock(t *testing.T) {
	src := &stubEventSource{events: fixtureEvents()}
	r := NewResolver(src, func() time.Time { return date("2024-02-01") })

	cats, err := r.ActiveCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Seminar"}, cats)

	dates, err := r.DatesForCategory(context.Background(), "Seminar")
	require.NoError(t, err)
	assert.Len(t, dates, 2)

	opts, err := r.OptionsForCategoryAndDate(context.Background(), "Seminar", date("2024-03-01"))
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}
