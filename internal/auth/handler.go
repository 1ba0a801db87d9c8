package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/backend/config"
	"github.com/campus-events/backend/internal/models"
	"github.com/campus-events/backend/pkg/response"
	"github.com/campus-events/backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the body for POST /admin/users.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"` // optional, defaults to staff
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Unauthorized(c, "invalid email or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// CreateUser handles POST /admin/users. Admins create staff or admin
// accounts; there is no self-service signup.
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	role := models.RoleStaff
	switch req.Role {
	case "", "staff":
	case "admin":
		role = models.RoleAdmin
	default:
		response.BadRequest(c, "invalid role")
		return
	}

	if _, err := h.repo.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}
	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.FullName, role)
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	response.Created(c, user.ToPublic())
}

// List handles GET /admin/users.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to list users")
		return
	}
	response.OK(c, list)
}

// EnsureAdmin creates the bootstrap admin account from config when no
// user with that email exists. No-op when credentials are unset.
func EnsureAdmin(ctx context.Context, repo *Repository, cfg config.AdminConfig, logger *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}
	_, err := repo.GetByEmail(ctx, cfg.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	if _, err := repo.Create(ctx, cfg.Email, hash, cfg.FullName, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("bootstrap admin created", zap.String("email", cfg.Email))
	return nil
}
