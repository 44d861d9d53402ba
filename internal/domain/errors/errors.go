package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUniqueViolation    = errors.New("unique constraint violation")
	ErrPromoCodeTaken     = errors.New("promo code already taken")
	ErrPhoneTaken         = errors.New("phone already registered")
)

// Machine readable error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT"
	CodeForbidden     = "FORBIDDEN"
	CodeRateLimit     = "RATE_LIMIT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternalError = "INTERNAL_ERROR"
)

var arabicMessages = map[string]string{
	CodeNotFound:      "العنصر المطلوب غير موجود",
	CodeValidation:    "البيانات المدخلة غير صالحة",
	CodeConflict:      "تعارض مع البيانات الحالية",
	CodeForbidden:     "غير مسموح لك بتنفيذ هذا الإجراء",
	CodeRateLimit:     "عدد كبير جدا من الطلبات، حاول لاحقا",
	CodeUnauthorized:  "يجب تسجيل الدخول",
	CodeInternalError: "حدث خطأ في الخادم",
}

// AppError represents application error with HTTP status
type AppError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageAr string `json:"message_ar,omitempty"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return e.Message + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error with the default Arabic message for its code
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:    status,
		Code:      code,
		Message:   message,
		MessageAr: arabicMessages[code],
		Err:       err,
	}
}

// WithArabic overrides the user facing Arabic message
func (e *AppError) WithArabic(message string) *AppError {
	cp := *e
	cp.MessageAr = message
	return &cp
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func RateLimit(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimit, message, ErrRateLimited)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InvalidCredentials() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, "invalid credentials", ErrInvalidCredentials).
		WithArabic("بيانات الدخول غير صحيحة")
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// AsAppError unwraps err to an *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
