package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func UnsupportedMediaType(message string) *AppError {
	return &AppError{
		Code:       "UNSUPPORTED_FORMAT",
		Message:    message,
		StatusCode: http.StatusUnsupportedMediaType,
	}
}

func TooLarge(message string) *AppError {
	return &AppError{
		Code:       "FILE_TOO_LARGE",
		Message:    message,
		StatusCode: http.StatusRequestEntityTooLarge,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "an internal error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromDomain maps errors returned by the image pipeline to HTTP-facing errors.
// Anything unrecognised becomes an internal error.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var (
		decodeErr  *domain.DecodeError
		storageErr *domain.StorageError
	)

	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return wrap(UnsupportedMediaType("unsupported image format"), err)
	case errors.Is(err, domain.ErrInvalidDimensions):
		return wrap(New("INVALID_DIMENSIONS", "invalid width or height", http.StatusBadRequest), err)
	case errors.Is(err, domain.ErrInvalidQuality):
		return wrap(New("INVALID_QUALITY", "quality must be between 0 and 100", http.StatusBadRequest), err)
	case errors.Is(err, domain.ErrInvalidKey):
		return wrap(New("INVALID_KEY", "invalid object key", http.StatusBadRequest), err)
	case errors.Is(err, domain.ErrSourceRequired), errors.Is(err, domain.ErrSameSourceAndDestination):
		return wrap(BadRequest("invalid input"), err)
	case errors.As(err, &decodeErr):
		return wrap(New("UNREADABLE_IMAGE", "image could not be decoded", http.StatusUnprocessableEntity), err)
	case errors.Is(err, domain.ErrForbidden):
		return wrap(Forbidden("access denied"), err)
	case errors.Is(err, domain.ErrImageNotFound):
		return wrap(NotFound("image"), err)
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrTokenInvalid):
		return wrap(Unauthorized("unauthorized"), err)
	case errors.As(err, &storageErr):
		return wrap(New("STORAGE_ERROR", "object storage unavailable", http.StatusBadGateway), err)
	default:
		return Internal(err)
	}
}

func wrap(appErr *AppError, err error) *AppError {
	appErr.Err = err
	return appErr
}

func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
