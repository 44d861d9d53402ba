package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/internal/usecases"
	"rimmarsa.backend/pkg/utils"
)

type vendorApprovalService interface {
	Approve(ctx context.Context, requestID, adminID uuid.UUID) (*usecases.ApprovalResult, error)
	Reject(ctx context.Context, requestID, adminID uuid.UUID, reason string) (bool, error)
}

type vendorRequestAdminService interface {
	List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, utils.PaginationMeta, error)
	ResetPassword(ctx context.Context, requestID uuid.UUID, password string) error
}

const (
	ActionReject        = "reject"
	ActionResetPassword = "reset_password"
)

// AdminHandler handles the vendor review endpoints
type AdminHandler struct {
	approvals vendorApprovalService
	requests  vendorRequestAdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(approvals vendorApprovalService, requests vendorRequestAdminService) *AdminHandler {
	return &AdminHandler{approvals: approvals, requests: requests}
}

type approveVendorRequest struct {
	RequestID string `json:"request_id" binding:"required"`
}

type updateVendorRequest struct {
	RequestID       string `json:"request_id" binding:"required"`
	Action          string `json:"action" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
	Password        string `json:"password"`
}

// ApproveVendor turns a pending request into a vendor with login credentials
// POST /api/admin/vendors/approve
func (h *AdminHandler) ApproveVendor(c *gin.Context) {
	var input approveVendorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("request_id is required"))
		return
	}

	requestID, err := uuid.Parse(input.RequestID)
	if err != nil {
		response.Error(c, domainerrors.Validation("invalid request_id"))
		return
	}

	adminID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("admin not authenticated"))
		return
	}

	result, err := h.approvals.Approve(c.Request.Context(), requestID, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":               true,
		"vendor":                result.Vendor,
		"credentials":           result.Credentials,
		"subscription_end_date": result.SubscriptionEndDate,
	})
}

// ListVendorRequests lists vendor requests, newest first
// GET /api/admin/vendors/requests?status=pending&page=1&limit=20
func (h *AdminHandler) ListVendorRequests(c *gin.Context) {
	var pagination utils.PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		response.Error(c, domainerrors.Validation("page and limit must be numbers"))
		return
	}
	pagination = utils.GetPaginationParams(pagination.Page, pagination.Limit)

	filter := entities.VendorRequestFilter{
		Status: entities.VendorRequestStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
	}

	requests, meta, err := h.requests.List(c.Request.Context(), filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":    true,
		"requests":   requests,
		"pagination": meta,
	})
}

// UpdateVendorRequest rejects a pending request or resets its password
// PATCH /api/admin/vendors/requests
func (h *AdminHandler) UpdateVendorRequest(c *gin.Context) {
	var input updateVendorRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("request_id and action are required"))
		return
	}

	requestID, err := uuid.Parse(input.RequestID)
	if err != nil {
		response.Error(c, domainerrors.Validation("invalid request_id"))
		return
	}

	adminID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("admin not authenticated"))
		return
	}

	ctx := c.Request.Context()
	switch input.Action {
	case ActionReject:
		updated, err := h.approvals.Reject(ctx, requestID, adminID, input.RejectionReason)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"success": true, "updated": updated})
	case ActionResetPassword:
		if err := h.requests.ResetPassword(ctx, requestID, input.Password); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"success": true, "message": "password updated"})
	default:
		response.Error(c, domainerrors.Validation("action must be reject or reset_password"))
	}
}
