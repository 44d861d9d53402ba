package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rimmarsa.backend/internal/domain/entities"
	"rimmarsa.backend/internal/interfaces/http/handlers"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/usecases"
	"rimmarsa.backend/pkg/jwt"
)

type profileStub struct{}

func (profileStub) Profile(_ context.Context, vendorID uuid.UUID) (*usecases.VendorProfile, error) {
	return &usecases.VendorProfile{Vendor: &entities.Vendor{ID: vendorID}}, nil
}

func stubRouteDeps(authMiddleware gin.HandlerFunc) routeDeps {
	return routeDeps{
		adminHandler:         &handlers.AdminHandler{},
		authHandler:          &handlers.AuthHandler{},
		uploadHandler:        &handlers.UploadHandler{},
		promoHandler:         &handlers.PromoHandler{},
		vendorRequestHandler: &handlers.VendorRequestHandler{},
		vendorHandler:        handlers.NewVendorHandler(profileStub{}),
		authMiddleware:       authMiddleware,
		promoRateLimit:       passThrough,
		uploadTokenRateLimit: passThrough,
	}
}

func TestRegisterAPIRoutes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerAPIRoutes(r, stubRouteDeps(passThrough))

	routes := r.Routes()
	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/auth/admin/login"},
		{"POST", "/api/auth/vendor/login"},
		{"POST", "/api/auth/refresh"},
		{"POST", "/api/vendor-requests"},
		{"GET", "/api/regions"},
		{"GET", "/api/cities"},
		{"POST", "/api/vendor/validate-promo"},
		{"POST", "/api/upload-tokens"},
		{"POST", "/api/upload-vendor-image"},
		{"GET", "/api/vendor/me"},
		{"GET", "/api/admin/me"},
		{"POST", "/api/admin/vendors/approve"},
		{"GET", "/api/admin/vendors/requests"},
		{"PATCH", "/api/admin/vendors/requests"},
		{"POST", "/api/admin/upload-tokens"},
	}
	if len(routes) != len(expects) {
		t.Fatalf("expected %d routes, got %d", len(expects), len(routes))
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterAPIRoutes_AdminRoutesRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := gin.New()
	registerAPIRoutes(r, stubRouteDeps(middleware.AuthMiddleware(jwtService)))

	// no token
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/vendors/requests", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// vendor token
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "37892800@vendor.rimmarsa.com", jwt.RoleVendor)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/vendors/approve", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRegisterAPIRoutes_VendorRoutesRequireVendor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := gin.New()
	registerAPIRoutes(r, stubRouteDeps(middleware.AuthMiddleware(jwtService)))

	get := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/vendor/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := get(""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	adminPair, err := jwtService.GenerateTokenPair(uuid.New(), "admin@rimmarsa.com", jwt.RoleAdmin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if code := get(adminPair.AccessToken); code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin token, got %d", code)
	}

	vendorPair, err := jwtService.GenerateTokenPair(uuid.New(), "37892800@vendor.rimmarsa.com", jwt.RoleVendor)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if code := get(vendorPair.AccessToken); code != http.StatusOK {
		t.Fatalf("expected 200 for vendor token, got %d", code)
	}
}
