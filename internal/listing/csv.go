package listing

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVHeader is the first row of every export.
var CSVHeader = []string{"Full Name", "Email", "College", "Department", "Category", "Event Date", "Event Name"}

// WriteCSV writes the header and one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.FullName,
			r.Email,
			r.CollegeName,
			r.Department,
			r.Category,
			r.EventDateString(),
			r.EventName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename returns the attachment name for an export started at
// the given time.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("event_registrations_%s.csv", t.Format("2006-01-02_15-04-05"))
}
