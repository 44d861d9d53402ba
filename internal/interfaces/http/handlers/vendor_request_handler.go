package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/response"
)

type vendorRequestService interface {
	Submit(ctx context.Context, input entities.VendorRequestInput) (*entities.VendorRequest, error)
	ListRegions(ctx context.Context) ([]*entities.Region, error)
	ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entities.City, error)
}

// VendorRequestHandler handles the public registration form
type VendorRequestHandler struct {
	requests vendorRequestService
}

// NewVendorRequestHandler creates a new vendor request handler
func NewVendorRequestHandler(requests vendorRequestService) *VendorRequestHandler {
	return &VendorRequestHandler{requests: requests}
}

// Submit stores a registration form for admin review
// POST /api/vendor-requests
func (h *VendorRequestHandler) Submit(c *gin.Context) {
	var input entities.VendorRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	req, err := h.requests.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success":    true,
		"request_id": req.ID,
		"status":     req.Status,
	})
}

// ListRegions lists active regions
// GET /api/regions
func (h *VendorRequestHandler) ListRegions(c *gin.Context) {
	regions, err := h.requests.ListRegions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "regions": regions})
}

// ListCities lists active cities
// GET /api/cities?region_id=
func (h *VendorRequestHandler) ListCities(c *gin.Context) {
	var regionID *uuid.UUID
	if raw := c.Query("region_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.Validation("invalid region_id"))
			return
		}
		regionID = &id
	}

	cities, err := h.requests.ListCities(c.Request.Context(), regionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "cities": cities})
}
