package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/domain/repositories"
	"rimmarsa.backend/pkg/crypto"
	"rimmarsa.backend/pkg/imageproc"
	"rimmarsa.backend/pkg/logger"
)

// UploadInput is one image posted with an upload token
type UploadInput struct {
	Token        string
	ImageType    entities.ImageType
	Filename     string
	DeclaredMIME string
	Size         int64
	Body         io.Reader
}

// UploadResult describes a stored image
type UploadResult struct {
	URL              string `json:"url"`
	RemainingUploads int    `json:"remaining_uploads"`
}

// UploadUsecase validates, re-encodes and stores vendor images
type UploadUsecase struct {
	tokenRepo repositories.UploadTokenRepository
	storage   repositories.ObjectStorage
	limits    imageproc.Limits
	metrics   MetricsRecorder
	now       func() time.Time
	randomHex func(n int) (string, error)
}

// NewUploadUsecase creates a new upload usecase. Zero limits use imageproc.DefaultLimits.
func NewUploadUsecase(tokenRepo repositories.UploadTokenRepository, storage repositories.ObjectStorage, limits imageproc.Limits, metrics MetricsRecorder) *UploadUsecase {
	if limits == (imageproc.Limits{}) {
		limits = imageproc.DefaultLimits
	}
	return &UploadUsecase{
		tokenRepo: tokenRepo,
		storage:   storage,
		limits:    limits,
		metrics:   metricsOrNoop(metrics),
		now:       time.Now,
		randomHex: crypto.GenerateRandomToken,
	}
}

// Upload checks the token, sanitizes the image and stores it under
// vendor-requests/{type}/{unix-ms}-{16 hex}.{ext}. Nothing is stored when validation fails.
func (u *UploadUsecase) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	result, err := u.upload(ctx, input)
	switch {
	case err == nil:
		u.metrics.Upload(ResultSuccess)
	case isClientError(err):
		u.metrics.Upload(ResultRejected)
	default:
		u.metrics.Upload(ResultFailure)
	}
	return result, err
}

func (u *UploadUsecase) upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	token, err := u.authorize(ctx, strings.TrimSpace(input.Token))
	if err != nil {
		return nil, err
	}

	if !input.ImageType.Valid() {
		return nil, domainerrors.Validation("type must be one of nni, personal, store, payment, logo")
	}
	if input.Body == nil {
		return nil, domainerrors.Validation("image file is required")
	}
	if input.Size > u.limits.MaxBytes {
		return nil, domainerrors.Validation(fmt.Sprintf("file exceeds the %d MB limit", u.limits.MaxBytes>>20))
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, u.limits.MaxBytes+1))
	if err != nil {
		return nil, domainerrors.Validation("could not read uploaded file")
	}

	img, err := imageproc.Sanitize(data, strings.ToLower(strings.TrimSpace(input.DeclaredMIME)), u.limits)
	if err != nil {
		if errors.Is(err, imageproc.ErrInvalidImage) {
			return nil, domainerrors.Validation(err.Error())
		}
		return nil, fmt.Errorf("sanitize image: %w", err)
	}

	suffix, err := u.randomHex(8)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("vendor-requests/%s/%d-%s.%s", input.ImageType, u.now().UnixMilli(), suffix, img.Ext)

	url, err := u.storage.Put(ctx, key, img.ContentType, img.Data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	counted, err := u.tokenRepo.IncrementUsage(ctx, token.ID)
	if err != nil || !counted {
		u.discard(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("count token usage: %w", err)
		}
		return nil, domainerrors.RateLimit("upload limit reached for this token")
	}

	logger.Info(ctx, "Vendor image uploaded",
		zap.String("key", key),
		zap.String("type", string(input.ImageType)),
		zap.String("filename", input.Filename),
		zap.Int("bytes", len(img.Data)),
	)

	remaining := token.Remaining() - 1
	if remaining < 0 {
		remaining = 0
	}
	return &UploadResult{URL: url, RemainingUploads: remaining}, nil
}

// authorize returns the token when it may still upload. Expired and exhausted tokens
// are deactivated on the way out.
func (u *UploadUsecase) authorize(ctx context.Context, value string) (*entities.UploadToken, error) {
	if value == "" {
		return nil, domainerrors.Unauthorized("upload token is required")
	}

	token, err := u.tokenRepo.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid upload token")
		}
		return nil, fmt.Errorf("load upload token: %w", err)
	}
	if !token.IsActive {
		return nil, domainerrors.Unauthorized("upload token is no longer active")
	}
	if token.IsExpired(u.now()) {
		u.deactivate(ctx, token)
		return nil, domainerrors.Unauthorized("upload token has expired")
	}
	if token.IsExhausted() {
		u.deactivate(ctx, token)
		return nil, domainerrors.RateLimit("upload limit reached for this token")
	}
	return token, nil
}

func (u *UploadUsecase) deactivate(ctx context.Context, token *entities.UploadToken) {
	if err := u.tokenRepo.Deactivate(ctx, token.ID); err != nil {
		logger.Error(ctx, "Failed to deactivate upload token", zap.String("token_id", token.ID.String()), zap.Error(err))
	}
}

func (u *UploadUsecase) discard(ctx context.Context, key string) {
	if err := u.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Error(ctx, "Failed to delete orphaned upload", zap.String("key", key), zap.Error(err))
	}
}

func isClientError(err error) bool {
	appErr, ok := domainerrors.AsAppError(err)
	return ok && appErr.Status >= 400 && appErr.Status < 500
}
