package events

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/models"
	"github.com/campus-events/backend/internal/validate"
	"github.com/campus-events/backend/pkg/response"
)

// CreateEventRequest is the body for POST /admin/events. Dates are
// YYYY-MM-DD.
type CreateEventRequest struct {
	EventName    string `json:"event_name" binding:"required"`
	Category     string `json:"category" binding:"required"`
	RegStartDate string `json:"reg_start_date" binding:"required"`
	RegEndDate   string `json:"reg_end_date" binding:"required"`
	EventDate    string `json:"event_date" binding:"required"`
}

// Validate checks the request and returns the event to persist, or
// field-scoped errors. No partial writes happen on failure.
func (req *CreateEventRequest) Validate() (*models.EventConfiguration, validate.FieldErrors) {
	errs := validate.FieldErrors{}

	if !validate.PlainText(req.EventName) {
		errs.Add("event_name", "Event name should only contain letters, numbers, and spaces.")
	}
	if !models.ValidCategory(req.Category) {
		errs.Add("category", "Select a valid category.")
	}

	regStart, err := time.Parse(models.DateFormat, req.RegStartDate)
	if err != nil {
		errs.Add("reg_start_date", "Enter a valid date (YYYY-MM-DD).")
	}
	regEnd, err := time.Parse(models.DateFormat, req.RegEndDate)
	if err != nil {
		errs.Add("reg_end_date", "Enter a valid date (YYYY-MM-DD).")
	}
	eventDate, err := time.Parse(models.DateFormat, req.EventDate)
	if err != nil {
		errs.Add("event_date", "Enter a valid date (YYYY-MM-DD).")
	}

	if _, ok := errs["reg_start_date"]; !ok {
		if _, ok := errs["reg_end_date"]; !ok && regEnd.Before(regStart) {
			errs.Add("reg_end_date", "Registration end date must be after the start date.")
		}
	}
	if _, ok := errs["reg_end_date"]; !ok {
		if _, ok := errs["event_date"]; !ok && eventDate.Before(regEnd) {
			errs.Add("event_date", "Event date must be on or after the registration end date.")
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &models.EventConfiguration{
		EventName:    req.EventName,
		Category:     req.Category,
		RegStartDate: regStart,
		RegEndDate:   regEnd,
		EventDate:    eventDate,
	}, nil
}

// Handler handles event configuration and cascading option endpoints.
type Handler struct {
	repo     *Repository
	resolver *Resolver
	logger   *zap.Logger
}

// NewHandler creates an events handler.
func NewHandler(repo *Repository, resolver *Resolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, resolver: resolver, logger: logger}
}

// Create handles POST /admin/events.
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ev, errs := req.Validate()
	if errs != nil {
		response.ValidationFailed(c, errs)
		return
	}
	if err := h.repo.Create(c.Request.Context(), ev); err != nil {
		h.logger.Error("create event", zap.Error(err))
		response.Internal(c, "An error occurred while creating the event. Please try again.")
		return
	}
	response.Created(c, gin.H{
		"id":      ev.ID,
		"message": "Event \"" + ev.EventName + "\" has been created successfully.",
	})
}

// List handles GET /admin/events.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list events", zap.Error(err))
		response.Internal(c, "failed to list events")
		return
	}
	response.OK(c, list)
}

// Categories handles GET /events/categories.
func (h *Handler) Categories(c *gin.Context) {
	cats, err := h.resolver.ActiveCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("active categories", zap.Error(err))
		response.Internal(c, "failed to load categories")
		return
	}
	if cats == nil {
		cats = []string{}
	}
	response.OK(c, cats)
}

// Dates handles GET /events/dates?category=.
func (h *Handler) Dates(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		response.BadRequest(c, "category is required")
		return
	}
	dates, err := h.resolver.DatesForCategory(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("dates for category", zap.Error(err))
		response.Internal(c, "failed to load dates")
		return
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(models.DateFormat))
	}
	response.OK(c, out)
}

// Names handles GET /events/names?category=&date=.
func (h *Handler) Names(c *gin.Context) {
	category := c.Query("category")
	dateStr := c.Query("date")
	if category == "" || dateStr == "" {
		response.BadRequest(c, "category and date are required")
		return
	}
	date, err := time.Parse(models.DateFormat, dateStr)
	if err != nil {
		response.BadRequest(c, "invalid date")
		return
	}
	opts, err := h.resolver.OptionsForCategoryAndDate(c.Request.Context(), category, date)
	if err != nil {
		h.logger.Error("options for category and date", zap.Error(err))
		response.Internal(c, "failed to load events")
		return
	}
	if opts == nil {
		opts = []Option{}
	}
	response.OK(c, opts)
}
