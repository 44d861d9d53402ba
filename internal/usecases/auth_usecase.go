package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/pkg/crypto"
	"rimmarsa.backend/pkg/jwt"
	"rimmarsa.backend/pkg/logger"
)

// AuthResponse is returned by every successful sign in
type AuthResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresAt    int64            `json:"expires_at"`
	Role         string           `json:"role"`
	Admin        *entities.Admin  `json:"admin,omitempty"`
	Vendor       *entities.Vendor `json:"vendor,omitempty"`
}

// AuthUsecase handles admin and vendor authentication
type AuthUsecase struct {
	adminRepo   repositories.AdminRepository
	vendorRepo  repositories.VendorRepository
	identity    repositories.IdentityStore
	jwtService  *jwt.JWTService
	emailDomain string
	checkHash   func(password, hash string) bool
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	adminRepo repositories.AdminRepository,
	vendorRepo repositories.VendorRepository,
	identity repositories.IdentityStore,
	jwtService *jwt.JWTService,
	emailDomain string,
) *AuthUsecase {
	if emailDomain == "" {
		emailDomain = DefaultVendorEmailDomain
	}
	return &AuthUsecase{
		adminRepo:   adminRepo,
		vendorRepo:  vendorRepo,
		identity:    identity,
		jwtService:  jwtService,
		emailDomain: emailDomain,
		checkHash:   crypto.CheckPassword,
	}
}

// AdminLogin authenticates an admin with email and bcrypt password
func (u *AuthUsecase) AdminLogin(ctx context.Context, input *entities.LoginInput) (*AuthResponse, error) {
	admin, err := u.adminRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials()
		}
		return nil, err
	}

	if !u.checkHash(input.Password, admin.PasswordHash) {
		logger.Warn(ctx, "Admin login failed", zap.String("admin_id", admin.ID.String()))
		return nil, domainerrors.InvalidCredentials()
	}

	tokens, err := u.jwtService.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, err
	}
	return newAuthResponse(tokens, string(admin.Role)).withAdmin(admin), nil
}

// VendorLogin authenticates a vendor by phone. The identity store checks the password
// against the email derived from the phone.
func (u *AuthUsecase) VendorLogin(ctx context.Context, input *entities.VendorLoginInput) (*AuthResponse, error) {
	email, err := entities.DeriveVendorEmail(input.Phone, u.emailDomain)
	if err != nil {
		return nil, domainerrors.InvalidCredentials()
	}

	if _, err := u.identity.VerifyPassword(ctx, email, input.Password); err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) || errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials()
		}
		return nil, err
	}

	vendor, err := u.vendorRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials()
		}
		return nil, err
	}
	if !vendor.CanLogin() {
		return nil, domainerrors.Forbidden("vendor account is not active").
			WithArabic("حساب البائع غير مفعل")
	}

	tokens, err := u.jwtService.GenerateTokenPair(vendor.ID, email, jwt.RoleVendor)
	if err != nil {
		return nil, err
	}
	return newAuthResponse(tokens, jwt.RoleVendor).withVendor(vendor), nil
}

// RefreshToken issues a new pair when the refresh token's subject may still sign in
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	var resp *AuthResponse
	switch {
	case claims.IsAdmin():
		admin, err := u.adminRepo.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, u.refreshLookupError(err)
		}
		tokens, err := u.jwtService.GenerateTokenPair(admin.ID, admin.Email, string(admin.Role))
		if err != nil {
			return nil, err
		}
		resp = newAuthResponse(tokens, string(admin.Role)).withAdmin(admin)
	case claims.Role == jwt.RoleVendor:
		vendor, err := u.vendorRepo.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, u.refreshLookupError(err)
		}
		if !vendor.CanLogin() {
			return nil, domainerrors.Forbidden("vendor account is not active")
		}
		tokens, err := u.jwtService.GenerateTokenPair(vendor.ID, claims.Email, jwt.RoleVendor)
		if err != nil {
			return nil, err
		}
		resp = newAuthResponse(tokens, jwt.RoleVendor).withVendor(vendor)
	default:
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	return resp, nil
}

// GetAdminByID gets an admin by ID
func (u *AuthUsecase) GetAdminByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error) {
	admin, err := u.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("admin not found")
		}
		return nil, err
	}
	return admin, nil
}

func (u *AuthUsecase) refreshLookupError(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.Unauthorized("account no longer exists")
	}
	return err
}

func newAuthResponse(tokens *jwt.TokenPair, role string) *AuthResponse {
	return &AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt.Unix(),
		Role:         role,
	}
}

func (r *AuthResponse) withAdmin(admin *entities.Admin) *AuthResponse {
	r.Admin = admin
	return r
}

func (r *AuthResponse) withVendor(vendor *entities.Vendor) *AuthResponse {
	r.Vendor = vendor
	return r
}
