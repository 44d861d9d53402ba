package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"rimmarsa.backend/internal/domain/entities"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/usecases"
	"rimmarsa.backend/pkg/utils"
)

type approvalServiceStub struct {
	approveFn func(ctx context.Context, requestID, adminID uuid.UUID) (*usecases.ApprovalResult, error)
	rejectFn  func(ctx context.Context, requestID, adminID uuid.UUID, reason string) (bool, error)
}

func (s approvalServiceStub) Approve(ctx context.Context, requestID, adminID uuid.UUID) (*usecases.ApprovalResult, error) {
	return s.approveFn(ctx, requestID, adminID)
}
func (s approvalServiceStub) Reject(ctx context.Context, requestID, adminID uuid.UUID, reason string) (bool, error) {
	return s.rejectFn(ctx, requestID, adminID, reason)
}

type requestServiceStub struct {
	submitFn  func(ctx context.Context, input entities.VendorRequestInput) (*entities.VendorRequest, error)
	listFn    func(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, utils.PaginationMeta, error)
	resetFn   func(ctx context.Context, requestID uuid.UUID, password string) error
	regionsFn func(ctx context.Context) ([]*entities.Region, error)
	citiesFn  func(ctx context.Context, regionID *uuid.UUID) ([]*entities.City, error)
}

func (s requestServiceStub) Submit(ctx context.Context, input entities.VendorRequestInput) (*entities.VendorRequest, error) {
	return s.submitFn(ctx, input)
}
func (s requestServiceStub) List(ctx context.Context, filter entities.VendorRequestFilter, pagination utils.PaginationParams) ([]*entities.VendorRequest, utils.PaginationMeta, error) {
	return s.listFn(ctx, filter, pagination)
}
func (s requestServiceStub) ResetPassword(ctx context.Context, requestID uuid.UUID, password string) error {
	return s.resetFn(ctx, requestID, password)
}
func (s requestServiceStub) ListRegions(ctx context.Context) ([]*entities.Region, error) {
	return s.regionsFn(ctx)
}
func (s requestServiceStub) ListCities(ctx context.Context, regionID *uuid.UUID) ([]*entities.City, error) {
	return s.citiesFn(ctx, regionID)
}

type uploadServiceStub struct {
	uploadFn func(ctx context.Context, input usecases.UploadInput) (*usecases.UploadResult, error)
}

func (s uploadServiceStub) Upload(ctx context.Context, input usecases.UploadInput) (*usecases.UploadResult, error) {
	return s.uploadFn(ctx, input)
}

type tokenServiceStub struct {
	issueFn func(ctx context.Context, input entities.UploadTokenInput, createdBy *uuid.UUID) (*entities.UploadToken, error)
}

func (s tokenServiceStub) Issue(ctx context.Context, input entities.UploadTokenInput, createdBy *uuid.UUID) (*entities.UploadToken, error) {
	return s.issueFn(ctx, input, createdBy)
}

type promoServiceStub struct {
	validateFn func(ctx context.Context, code string) (*usecases.PromoValidation, error)
}

func (s promoServiceStub) Validate(ctx context.Context, code string) (*usecases.PromoValidation, error) {
	return s.validateFn(ctx, code)
}

type authServiceStub struct {
	adminLoginFn  func(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResponse, error)
	vendorLoginFn func(ctx context.Context, input *entities.VendorLoginInput) (*usecases.AuthResponse, error)
	refreshFn     func(ctx context.Context, refreshToken string) (*usecases.AuthResponse, error)
	getAdminFn    func(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
}

func (s authServiceStub) AdminLogin(ctx context.Context, input *entities.LoginInput) (*usecases.AuthResponse, error) {
	return s.adminLoginFn(ctx, input)
}
func (s authServiceStub) VendorLogin(ctx context.Context, input *entities.VendorLoginInput) (*usecases.AuthResponse, error) {
	return s.vendorLoginFn(ctx, input)
}
func (s authServiceStub) RefreshToken(ctx context.Context, refreshToken string) (*usecases.AuthResponse, error) {
	return s.refreshFn(ctx, refreshToken)
}
func (s authServiceStub) GetAdminByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	return s.getAdminFn(ctx, id)
}

// asSubject stands in for AuthMiddleware
func asSubject(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SubjectIDKey, id)
		c.Set(middleware.SubjectRoleKey, "admin")
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

type accountServiceStub struct {
	profileFn func(ctx context.Context, vendorID uuid.UUID) (*usecases.VendorProfile, error)
}

func (s accountServiceStub) Profile(ctx context.Context, vendorID uuid.UUID) (*usecases.VendorProfile, error) {
	return s.profileFn(ctx, vendorID)
}
