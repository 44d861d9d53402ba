package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/internal/usecases"
)

type authService interface {
	AdminLogin(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResponse, error)
	VendorLogin(ctx context.Context, input *entities.VendorLoginInput) (*usecases.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*usecases.AuthResponse, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase authService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// AdminLogin handles admin sign in
// POST /api/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("email and password are required"))
		return
	}

	resp, err := h.authUsecase.AdminLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// VendorLogin handles vendor sign in with phone and password
// POST /api/auth/vendor/login
func (h *AuthHandler) VendorLogin(c *gin.Context) {
	var input entities.VendorLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("phone and password are required"))
		return
	}

	resp, err := h.authUsecase.VendorLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// RefreshToken exchanges a refresh token for a new pair
// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("refresh_token is required"))
		return
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Me returns the signed in admin
// GET /api/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	adminID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("admin not authenticated"))
		return
	}

	admin, err := h.authUsecase.GetAdminByID(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "admin": admin})
}
