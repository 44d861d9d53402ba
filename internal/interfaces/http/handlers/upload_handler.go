package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"rimmarsa.backend/internal/domain/entities"
	domainerrors "rimmarsa.backend/internal/domain/errors"
	"rimmarsa.backend/internal/interfaces/http/middleware"
	"rimmarsa.backend/internal/interfaces/http/response"
	"rimmarsa.backend/internal/usecases"
)

type uploadService interface {
	Upload(ctx context.Context, input usecases.UploadInput) (*usecases.UploadResult, error)
}

type uploadTokenService interface {
	Issue(ctx context.Context, input entities.UploadTokenInput, createdBy *uuid.UUID) (*entities.UploadToken, error)
}

// multipart framing on top of the image itself
const multipartOverhead = 1 << 20

// UploadHandler handles vendor image uploads and upload token issuance
type UploadHandler struct {
	uploads      uploadService
	tokens       uploadTokenService
	maxFileBytes int64
}

// NewUploadHandler creates a new upload handler. maxFileBytes bounds a single image.
func NewUploadHandler(uploads uploadService, tokens uploadTokenService, maxFileBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, tokens: tokens, maxFileBytes: maxFileBytes}
}

// UploadVendorImage stores one image for a registration form
// POST /api/upload-vendor-image (multipart: token, type, image)
func (h *UploadHandler) UploadVendorImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileBytes+multipartOverhead)

	input := usecases.UploadInput{}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		body, openErr := file.Open()
		if openErr != nil {
			response.Error(c, domainerrors.Validation("could not read uploaded file"))
			return
		}
		defer closeQuietly(body)

		input.Body = body
		input.Filename = file.Filename
		input.Size = file.Size
		input.DeclaredMIME = file.Header.Get("Content-Type")
	case isBodyTooLarge(err):
		response.Error(c, domainerrors.Validation(fmt.Sprintf("file exceeds the %d MB limit", h.maxFileBytes>>20)))
		return
	}

	input.Token = c.PostForm("token")
	input.ImageType = entities.ImageType(strings.ToLower(strings.TrimSpace(c.PostForm("type"))))

	result, err := h.uploads.Upload(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":           true,
		"url":               result.URL,
		"remaining_uploads": result.RemainingUploads,
	})
}

// IssueToken lets an admin issue an upload token, optionally bound to a request
// POST /api/admin/upload-tokens
func (h *UploadHandler) IssueToken(c *gin.Context) {
	var input entities.UploadTokenInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	adminID, ok := middleware.GetSubjectID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("admin not authenticated"))
		return
	}

	h.issue(c, input, &adminID)
}

// IssuePublicToken hands the registration form a token with the default limits
// POST /api/upload-tokens
func (h *UploadHandler) IssuePublicToken(c *gin.Context) {
	h.issue(c, entities.UploadTokenInput{}, nil)
}

func (h *UploadHandler) issue(c *gin.Context, input entities.UploadTokenInput, createdBy *uuid.UUID) {
	token, err := h.tokens.Issue(c.Request.Context(), input, createdBy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success":     true,
		"token":       token.Token,
		"expires_at":  token.ExpiresAt,
		"max_uploads": token.MaxUploads,
	})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func closeQuietly(f multipart.File) {
	_ = f.Close()
}
