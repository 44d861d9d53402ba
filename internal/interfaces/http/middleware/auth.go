package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/pkg/jwt"
	"rimmarsa.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SubjectIDKey is the context key for the admin or vendor id
	SubjectIDKey = "subjectId"
	// SubjectEmailKey is the context key for the subject email
	SubjectEmailKey = "subjectEmail"
	// SubjectRoleKey is the context key for the subject role
	SubjectRoleKey = "subjectRole"
)

// AuthMiddleware validates the Bearer access token and stores its claims on the context
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug(c.Request.Context(), "Authorization header missing", zap.String("path", c.Request.URL.Path))
			response.Error(c, domainerrors.Unauthorized("authorization header is required"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.Error(c, domainerrors.Unauthorized("invalid authorization format, use: Bearer <token>"))
			return
		}

		claims, err := jwtService.ValidateAccessToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Access token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Error(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			response.Error(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(SubjectIDKey, claims.SubjectID)
		c.Set(SubjectEmailKey, claims.Email)
		c.Set(SubjectRoleKey, claims.Role)

		if claims.IsAdmin() {
			ctx := context.WithValue(c.Request.Context(), logger.AdminIDKey, claims.SubjectID.String())
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// GetSubjectID gets the authenticated admin or vendor id from context
func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(SubjectIDKey)
	if !exists {
		return uuid.Nil, false
	}
	subjectID, ok := id.(uuid.UUID)
	return subjectID, ok
}

// GetSubjectRole gets the authenticated role from context
func GetSubjectRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(SubjectRoleKey)
	if !exists {
		return "", false
	}
	value, ok := role.(string)
	return value, ok
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetSubjectRole(c)
		if !exists {
			response.Error(c, domainerrors.Unauthorized("role not found"))
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		response.Error(c, domainerrors.Forbidden("insufficient permissions"))
	}
}

// RequireAdmin allows admins and super admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin, jwt.RoleSuperAdmin)
}
