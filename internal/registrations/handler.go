package registrations

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/validate"
	"github.com/campus-events/backend/pkg/response"
)

// SubmitRequest is the body for POST /registrations. The category,
// event_date and event_name fields come from the cascading dropdowns;
// event_name carries the selected event id.
type SubmitRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	CollegeName string `json:"college_name" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Category    string `json:"category" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	EventName   string `json:"event_name" binding:"required"`
}

// Handler handles the public registration endpoint.
type Handler struct {
	workflow *Workflow
	logger   *zap.Logger
}

// NewHandler creates a registrations handler.
func NewHandler(workflow *Workflow, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{workflow: workflow, logger: logger}
}

// Submit handles POST /registrations.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	reg, err := h.workflow.Submit(c.Request.Context(), SubmitInput{
		FullName:    req.FullName,
		Email:       req.Email,
		CollegeName: req.CollegeName,
		Department:  req.Department,
		Category:    req.Category,
		EventDate:   req.EventDate,
		EventID:     req.EventName,
	})
	if err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			response.ValidationFailed(c, fields)
			return
		}
		h.logger.Error("registration submit", zap.Error(err))
		response.Internal(c, "An error occurred during registration. Please try again.")
		return
	}

	response.Created(c, gin.H{
		"id":      reg.ID,
		"message": "Thank you for registering! You will receive a confirmation email shortly.",
	})
}
