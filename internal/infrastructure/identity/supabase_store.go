package identity

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
)

// gotrueAdmin is the slice of the GoTrue client the store relies on
type gotrueAdmin interface {
	AdminCreateUser(req types.AdminCreateUserRequest) (*types.AdminCreateUserResponse, error)
	AdminUpdateUser(req types.AdminUpdateUserRequest) (*types.AdminUpdateUserResponse, error)
	AdminDeleteUser(req types.AdminDeleteUserRequest) error
	SignInWithEmailPassword(email, password string) (*types.TokenResponse, error)
}

// SupabaseStore manages vendor accounts through the GoTrue admin API of a Supabase project
type SupabaseStore struct {
	client gotrueAdmin
}

// NewSupabaseStore creates an identity store for the project at baseURL using the service role key
func NewSupabaseStore(baseURL, serviceKey string, timeout time.Duration) *SupabaseStore {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := gotrue.New("", serviceKey).
		WithCustomGoTrueURL(strings.TrimRight(baseURL, "/") + "/auth/v1").
		WithToken(serviceKey).
		WithClient(http.Client{Timeout: timeout})
	return &SupabaseStore{client: client}
}

var _ domainrepos.IdentityStore = (*SupabaseStore)(nil)

func (s *SupabaseStore) CreateUser(ctx context.Context, input entities.CreateIdentityInput) (*entities.IdentityUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	password := input.Password
	resp, err := s.client.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        normalizeEmail(input.Email),
		Phone:        input.Phone,
		Password:     &password,
		EmailConfirm: true,
		UserMetadata: toAnyMap(input.Metadata),
		AppMetadata:  map[string]interface{}{"role": input.Role},
	})
	if err != nil {
		return nil, classifyGotrueError(err)
	}
	return toEntity(resp.User), nil
}

func (s *SupabaseStore) UpdateUser(ctx context.Context, id uuid.UUID, input entities.UpdateIdentityInput) (*entities.IdentityUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	req := types.AdminUpdateUserRequest{
		UserID:   id,
		Password: input.Password,
	}
	if input.Email != "" {
		req.Email = normalizeEmail(input.Email)
	}
	if input.Metadata != nil {
		req.UserMetadata = toAnyMap(input.Metadata)
	}

	resp, err := s.client.AdminUpdateUser(req)
	if err != nil {
		return nil, classifyGotrueError(err)
	}
	return toEntity(resp.User), nil
}

func (s *SupabaseStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.client.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id}); err != nil {
		return classifyGotrueError(err)
	}
	return nil
}

func (s *SupabaseStore) VerifyPassword(ctx context.Context, email, password string) (*entities.IdentityUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp, err := s.client.SignInWithEmailPassword(normalizeEmail(email), password)
	if err != nil {
		err = classifyGotrueError(err)
		if appErr, ok := domainerrors.AsAppError(err); ok && appErr.Status < http.StatusInternalServerError {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	return toEntity(resp.User), nil
}

// gotrue-go reports API failures as "response status code <n>: <body>"
var statusCodePattern = regexp.MustCompile(`response status code (\d{3})`)

func classifyGotrueError(err error) error {
	match := statusCodePattern.FindStringSubmatch(err.Error())
	if match == nil {
		return fmt.Errorf("identity request: %w", err)
	}
	status, _ := strconv.Atoi(match[1])
	msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), match[0]+":"))
	lower := strings.ToLower(msg)

	switch {
	case status == http.StatusNotFound:
		return domainerrors.NewAppError(status, domainerrors.CodeNotFound, msg, domainerrors.ErrNotFound)
	case strings.Contains(lower, "already") || strings.Contains(lower, "email_exists") || status == http.StatusConflict:
		return domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeConflict, msg, domainerrors.ErrConflict)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domainerrors.NewAppError(status, domainerrors.CodeUnauthorized, msg, domainerrors.ErrUnauthorized)
	case status == http.StatusTooManyRequests:
		return domainerrors.NewAppError(status, domainerrors.CodeRateLimit, msg, domainerrors.ErrRateLimited)
	case status < http.StatusInternalServerError:
		return domainerrors.NewAppError(http.StatusBadRequest, domainerrors.CodeValidation, msg, domainerrors.ErrValidation)
	default:
		return domainerrors.InternalError(fmt.Errorf("identity store returned %d: %s", status, msg))
	}
}

func toEntity(u types.User) *entities.IdentityUser {
	role := u.Role
	if r, ok := u.AppMetadata["role"].(string); ok && r != "" {
		role = r
	}
	user := &entities.IdentityUser{
		ID:    u.ID,
		Email: u.Email,
		Phone: u.Phone,
		Role:  role,
	}
	if len(u.UserMetadata) > 0 {
		user.Metadata = make(map[string]string, len(u.UserMetadata))
		for k, v := range u.UserMetadata {
			user.Metadata[k] = fmt.Sprint(v)
		}
	}
	return user
}

func toAnyMap(in map[string]string) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
