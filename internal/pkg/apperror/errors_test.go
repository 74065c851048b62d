package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcos-nsantos/imgpipe/internal/domain"
	"github.com/marcos-nsantos/imgpipe/internal/pkg/apperror"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unsupported format", fmt.Errorf("converting image: %w", domain.ErrUnsupportedFormat), http.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"},
		{"invalid dimensions", domain.ErrInvalidDimensions, http.StatusBadRequest, "INVALID_DIMENSIONS"},
		{"invalid quality", domain.ErrInvalidQuality, http.StatusBadRequest, "INVALID_QUALITY"},
		{"invalid key", domain.ErrInvalidKey, http.StatusBadRequest, "INVALID_KEY"},
		{"source required", domain.ErrSourceRequired, http.StatusBadRequest, "BAD_REQUEST"},
		{"decode error", &domain.DecodeError{Path: "a.jpg", Err: errors.New("eof")}, http.StatusUnprocessableEntity, "UNREADABLE_IMAGE"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", domain.ErrImageNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"storage error", fmt.Errorf("uploading: %w", &domain.StorageError{Op: "put", Err: errors.New("timeout")}), http.StatusBadGateway, "STORAGE_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperror.FromDomain(tt.err)

			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.code, appErr.Code)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromDomain_KeepsAppError(t *testing.T) {
	original := apperror.TooLarge("file exceeds limit")

	assert.Same(t, original, apperror.FromDomain(original))
	assert.Equal(t, http.StatusRequestEntityTooLarge, apperror.StatusCode(original))
}

func TestStatusCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusCode(errors.New("boom")))
}
