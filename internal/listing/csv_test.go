package listing

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		{
			FullName:    "Jane Doe",
			Email:       "jane@example.com",
			CollegeName: "ABC College",
			Department:  "CS",
			Category:    "Seminar",
			EventDate:   day,
			EventName:   "Annual Research Seminar",
		},
		{
			FullName:    "John Roe",
			Email:       "john@example.com",
			CollegeName: "XYZ College",
			Department:  "EE",
			Category:    "Hackathon",
			EventDate:   day,
			EventName:   MissingEventName, // referenced event was removed
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"Jane Doe", "jane@example.com", "ABC College", "CS", "Seminar", "2024-06-01", "Annual Research Seminar"}, records[1])
	assert.Equal(t, "N/A", records[2][6])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "event_registrations_2024-06-01_14-30-05.csv", ExportFilename(at))
}
