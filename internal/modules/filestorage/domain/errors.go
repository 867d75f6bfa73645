package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("file not found")
	ErrStorage      = errors.New("storage error")
	ErrExists       = errors.New("file already exists")
	ErrTooLarge     = errors.New("upload too large")

	ErrNotImage = fmt.Errorf("%w: only image files are allowed", ErrInvalidInput)
)

// StorageError wraps cause so that errors.Is(err, ErrStorage) holds.
func StorageError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, cause)
}
