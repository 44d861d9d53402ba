package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/internal/usecases"
)

type promoService interface {
	Validate(ctx context.Context, code string) (*usecases.PromoValidation, error)
}

// PromoHandler handles public promo code checks
type PromoHandler struct {
	promoUsecase promoService
}

// NewPromoHandler creates a new promo handler
func NewPromoHandler(promoUsecase promoService) *PromoHandler {
	return &PromoHandler{promoUsecase: promoUsecase}
}

// ValidatePromo reports whether a promo code belongs to an active vendor
// POST /api/vendor/validate-promo
func (h *PromoHandler) ValidatePromo(c *gin.Context) {
	var input struct {
		PromoCode string `json:"promo_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("promo_code is required"))
		return
	}

	result, err := h.promoUsecase.Validate(c.Request.Context(), input.PromoCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}
