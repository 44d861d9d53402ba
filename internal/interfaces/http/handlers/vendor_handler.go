package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/internal/usecases"
)

type vendorAccountService interface {
	Profile(ctx context.Context, vendorID uuid.UUID) (*usecases.VendorProfile, error)
}

// VendorHandler serves endpoints for signed in vendors
type VendorHandler struct {
	accounts vendorAccountService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(accounts vendorAccountService) *VendorHandler {
	return &VendorHandler{accounts: accounts}
}

// Me returns the signed in vendor with its subscriptions and referral credits
// GET /api/vendor/me
func (h *VendorHandler) Me(c *gin.Context) {
	vendorID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("vendor not authenticated"))
		return
	}

	profile, err := h.accounts.Profile(c.Request.Context(), vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"success":       true,
		"vendor":        profile.Vendor,
		"subscriptions": profile.Subscriptions,
		"referrals":     profile.Referrals,
	})
}
