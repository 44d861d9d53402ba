package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/usecases"
)

func TestUploadTokenUsecase_IssueDefaults(t *testing.T) {
	tokenRepo := new(MockUploadTokenRepository)
	uc := usecases.NewUploadTokenUsecase(tokenRepo, new(MockVendorRequestRepository))
	ctx := context.Background()
	adminID := uuid.New()

	tokenRepo.On("Create", ctx, mock.AnythingOfType("*entities.UploadToken")).Return(nil).Once()

	token, err := uc.Issue(ctx, entities.UploadTokenInput{}, &adminID)
	require.NoError(t, err)
	assert.Len(t, token.Token, 64)
	assert.Regexp(t, `^[0-9a-f]{64}$`, token.Token)
	assert.True(t, token.IsActive)
	assert.Equal(t, usecases.DefaultUploadTokenMaxUploads, token.MaxUploads)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
	assert.Equal(t, &adminID, token.CreatedBy)
}

func TestUploadTokenUsecase_IssueForRequest(t *testing.T) {
	tokenRepo := new(MockUploadTokenRepository)
	requestRepo := new(MockVendorRequestRepository)
	uc := usecases.NewUploadTokenUsecase(tokenRepo, requestRepo)
	ctx := context.Background()
	requestID := uuid.New()

	requestRepo.On("GetByID", ctx, requestID).Return(&entities.VendorRequest{ID: requestID}, nil).Once()
	tokenRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	token, err := uc.Issue(ctx, entities.UploadTokenInput{VendorRequestID: &requestID, MaxUploads: 4, TTLMinutes: 15}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, token.MaxUploads)
	assert.Equal(t, &requestID, token.VendorRequestID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	missing := uuid.New()
	requestRepo.On("GetByID", ctx, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.Issue(ctx, entities.UploadTokenInput{VendorRequestID: &missing}, nil)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUploadTokenUsecase_IssueRejectsOutOfRangeLimits(t *testing.T) {
	uc := usecases.NewUploadTokenUsecase(new(MockUploadTokenRepository), new(MockVendorRequestRepository))

	for _, in := range []entities.UploadTokenInput{
		{MaxUploads: -1},
		{MaxUploads: usecases.MaxUploadTokenUploads + 1},
		{TTLMinutes: -5},
		{TTLMinutes: 8 * 24 * 60},
	} {
		_, err := uc.Issue(context.Background(), in, nil)
		assert.ErrorIs(t, err, domainerrors.ErrValidation, "%+v", in)
	}
}
