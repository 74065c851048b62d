package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat        = errors.New("unsupported image format")
	ErrInvalidDimensions        = errors.New("invalid dimensions")
	ErrInvalidQuality           = errors.New("invalid quality")
	ErrSourceRequired           = errors.New("source path required")
	ErrInvalidKey               = errors.New("invalid object key")
	ErrSameSourceAndDestination = errors.New("source and destination must differ")
	ErrImageNotFound            = errors.New("image not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrTokenInvalid             = errors.New("token invalid")
)

// DecodeError reports a source file that was recognised but could not be read as an image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type EncodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// StorageError wraps any failure returned by the object store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
