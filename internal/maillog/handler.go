package maillog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/backend/pkg/response"
)

// Handler handles the admin notification log endpoint.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a notification log handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /admin/notifications?limit=.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	list, err := h.repo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("list notification logs", zap.Error(err))
		response.Internal(c, "failed to list notifications")
		return
	}
	response.OK(c, list)
}
