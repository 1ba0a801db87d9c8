package listing

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/models"
	"github.com/campus-events/backend/pkg/response"
)

// Handler handles the admin registration listing and CSV export.
type Handler struct {
	repo   *Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewHandler creates a listing handler. A nil now defaults to
// time.Now.
func NewHandler(repo *Repository, now func() time.Time, logger *zap.Logger) *Handler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, now: now, logger: logger}
}

// filterFromQuery reads the event_date and event_name query
// parameters. event_name carries an event id; the name is kept for
// compatibility with the original filter form.
func filterFromQuery(c *gin.Context) (Filter, bool) {
	var f Filter
	if v := c.Query("event_date"); v != "" {
		d, err := time.Parse(models.DateFormat, v)
		if err != nil {
			response.BadRequest(c, "invalid event_date")
			return f, false
		}
		f.EventDate = &d
	}
	if v := c.Query("event_name"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid event_name")
			return f, false
		}
		f.EventID = &id
	}
	return f, true
}

// List handles GET /admin/registrations.
func (h *Handler) List(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		return
	}
	rows, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("list registrations", zap.Error(err))
		response.Internal(c, "failed to list registrations")
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	response.OK(c, gin.H{
		"total":         len(rows),
		"registrations": rows,
	})
}

// Export handles GET /admin/registrations/export. Same filters as
// List; the response is a CSV attachment.
func (h *Handler) Export(c *gin.Context) {
	f, ok := filterFromQuery(c)
	if !ok {
		return
	}
	rows, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		h.logger.Error("export registrations", zap.Error(err))
		response.Internal(c, "failed to export registrations")
		return
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		h.logger.Error("write csv", zap.Error(err))
		response.Internal(c, "failed to export registrations")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ExportFilename(h.now())+`"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// FilterOptions handles GET /admin/registrations/filters. Returns the
// distinct registration dates and, optionally narrowed by event_date,
// the events that have registrations.
func (h *Handler) FilterOptions(c *gin.Context) {
	var date *time.Time
	if v := c.Query("event_date"); v != "" {
		d, err := time.Parse(models.DateFormat, v)
		if err != nil {
			response.BadRequest(c, "invalid event_date")
			return
		}
		date = &d
	}

	dates, err := h.repo.DistinctDates(c.Request.Context())
	if err != nil {
		h.logger.Error("distinct dates", zap.Error(err))
		response.Internal(c, "failed to load filter options")
		return
	}
	events, err := h.repo.EventOptions(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("event options", zap.Error(err))
		response.Internal(c, "failed to load filter options")
		return
	}

	dateStrs := make([]string, 0, len(dates))
	for _, d := range dates {
		dateStrs = append(dateStrs, d.Format(models.DateFormat))
	}
	if events == nil {
		events = []EventOption{}
	}
	response.OK(c, gin.H{
		"dates":  dateStrs,
		"events": events,
	})
}
