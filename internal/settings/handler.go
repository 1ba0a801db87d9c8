package settings

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/backend/internal/validate"
	"github.com/campus-events/backend/pkg/response"
)

// UpdateRequest is the body for PUT /admin/settings.
type UpdateRequest struct {
	AdminEmail          string `json:"admin_email" binding:"required"`
	EnableNotifications *bool  `json:"enable_notifications" binding:"required"`
}

// Handler handles the admin settings endpoints.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a settings handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// Get handles GET /admin/settings.
func (h *Handler) Get(c *gin.Context) {
	s, err := h.repo.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("load settings", zap.Error(err))
		response.Internal(c, "failed to load settings")
		return
	}
	response.OK(c, s)
}

// Update handles PUT /admin/settings.
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if !validate.Email(req.AdminEmail) {
		response.ValidationFailed(c, map[string]string{
			"admin_email": "Please enter a valid email address.",
		})
		return
	}
	s, err := h.repo.Update(c.Request.Context(), req.AdminEmail, *req.EnableNotifications)
	if err != nil {
		h.logger.Error("update settings", zap.Error(err))
		response.Internal(c, "failed to update settings")
		return
	}
	response.OK(c, s)
}
