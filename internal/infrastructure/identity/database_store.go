package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	domainrepos "rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/internal/infrastructure/models"
	"rimmarsa.backend/internal/infrastructure/repositories"
	"rimmarsa.backend/pkg/crypto"
	"rimmarsa.backend/pkg/utils"
)

// DatabaseStore keeps login accounts in the auth_users table with bcrypt hashes
type DatabaseStore struct {
	db           *gorm.DB
	hashPassword func(string) (string, error)
	checkHash    func(password, hash string) bool
}

// NewDatabaseStore creates an identity store backed by the relational database
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{
		db:           db,
		hashPassword: crypto.HashPassword,
		checkHash:    crypto.CheckPassword,
	}
}

var _ domainrepos.IdentityStore = (*DatabaseStore)(nil)

func (s *DatabaseStore) CreateUser(ctx context.Context, input entities.CreateIdentityInput) (*entities.IdentityUser, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.Validation("email and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AuthUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: email %s already registered", domainerrors.ErrConflict, email)
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(input.Metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}

	now := time.Now()
	row := &models.AuthUser{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Metadata:     string(metadata),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Phone != "" {
		row.Phone = &input.Phone
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		// a concurrent registration can slip past the count above
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email %s already registered", domainerrors.ErrConflict, email)
		}
		return nil, fmt.Errorf("create auth user: %w", err)
	}
	return toIdentityUser(row), nil
}

func (s *DatabaseStore) UpdateUser(ctx context.Context, id uuid.UUID, input entities.UpdateIdentityInput) (*entities.IdentityUser, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if input.Email != "" {
		updates["email"] = normalizeEmail(input.Email)
	}
	if input.Password != "" {
		hash, err := s.hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if input.Metadata != nil {
		metadata, err := json.Marshal(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode metadata: %w", err)
		}
		updates["metadata"] = string(metadata)
	}

	result := s.db.WithContext(ctx).Model(&models.AuthUser{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	var row models.AuthUser
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return toIdentityUser(&row), nil
}

func (s *DatabaseStore) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.AuthUser{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) VerifyPassword(ctx context.Context, email, password string) (*entities.IdentityUser, error) {
	row, err := s.findByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.checkHash(password, row.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	return toIdentityUser(row), nil
}

func (s *DatabaseStore) findByEmail(ctx context.Context, email string) (*models.AuthUser, error) {
	var row models.AuthUser
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func toIdentityUser(row *models.AuthUser) *entities.IdentityUser {
	user := &entities.IdentityUser{
		ID:    row.ID,
		Email: row.Email,
		Role:  row.Role,
	}
	if row.Phone != nil {
		user.Phone = *row.Phone
	}
	if row.Metadata != "" && row.Metadata != "null" {
		_ = json.Unmarshal([]byte(row.Metadata), &user.Metadata)
	}
	return user
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
