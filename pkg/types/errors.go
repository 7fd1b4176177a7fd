package types

import (
	"errors"
	"fmt"
)

// Error kinds returned by the adapter. Wrapped errors carry the offending
// path, field or provider message; match with errors.Is.
var (
	// ErrInvalidInput marks bad or missing request fields and unreadable
	// image paths.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedImageFormat marks files whose content and extension
	// cannot be interpreted as an image.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrMissingCredential marks a missing API key. Surfaced before any
	// network call is attempted.
	ErrMissingCredential = errors.New("missing credential")
)

// ProviderError reports an error status or malformed payload from the remote
// model API. Match with errors.As.
type ProviderError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Status != "":
		return fmt.Sprintf("provider error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("provider error %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("provider error: %s", e.Message)
	}
}

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
