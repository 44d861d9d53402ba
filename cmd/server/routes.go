package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rimmarsa.backend/internal/interfaces/http/handlers"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/pkg/jwt"
)

const readHeaderTimeout = 10 * time.Second

type routeDeps struct {
	adminHandler         *handlers.AdminHandler
	authHandler          *handlers.AuthHandler
	uploadHandler        *handlers.UploadHandler
	promoHandler         *handlers.PromoHandler
	vendorRequestHandler *handlers.VendorRequestHandler
	vendorHandler        *handlers.VendorHandler
	authMiddleware       gin.HandlerFunc
	promoRateLimit       gin.HandlerFunc
	uploadTokenRateLimit gin.HandlerFunc
}

func passThrough(c *gin.Context) { c.Next() }

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine, h *handlers.HealthHandler) {
	r.GET("/health", h.Health)
}

func registerMetricsRoute(r *gin.Engine, registry *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/admin/login", d.authHandler.AdminLogin)
			auth.POST("/vendor/login", d.authHandler.VendorLogin)
			auth.POST("/refresh", d.authHandler.RefreshToken)
		}

		// Vendor onboarding (public)
		api.POST("/vendor-requests", d.vendorRequestHandler.Submit)
		api.GET("/regions", d.vendorRequestHandler.ListRegions)
		api.GET("/cities", d.vendorRequestHandler.ListCities)
		api.POST("/vendor/validate-promo", d.promoRateLimit, d.promoHandler.ValidatePromo)
		api.POST("/upload-tokens", d.uploadTokenRateLimit, d.uploadHandler.IssuePublicToken)
		api.POST("/upload-vendor-image", d.uploadHandler.UploadVendorImage)

		// Vendor routes (protected)
		vendor := api.Group("/vendor")
		vendor.Use(d.authMiddleware, middleware.RequireRole(jwt.RoleVendor))
		{
			vendor.GET("/me", d.vendorHandler.Me)
		}

		// Admin routes (protected)
		admin := api.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/me", d.authHandler.Me)
			admin.POST("/vendors/approve", d.adminHandler.ApproveVendor)
			admin.GET("/vendors/requests", d.adminHandler.ListVendorRequests)
			admin.PATCH("/vendors/requests", d.adminHandler.UpdateVendorRequest)
			admin.POST("/upload-tokens", d.uploadHandler.IssueToken)
		}
	}
}
