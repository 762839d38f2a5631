package domain

import (
	"errors"
	"fmt"
)

const (
	// MaxUploadBytes is the default ceiling for a single source file.
	MaxUploadBytes int64 = 10 * 1024 * 1024

	DefaultFormat  = "jpg"
	OriginalFormat = "original"
	CustomSize     = "custom"
	NoFilter       = "none"
	FallbackName   = "image"
)

var (
	ErrUploadAborted    = errors.New("upload aborted")
	ErrSubmitInProgress = errors.New("a resize is already in progress")
	ErrJobNotFound      = errors.New("job not found")

	ErrNotImage           = &ValidationError{Message: "Please upload an image file (JPG, PNG, WebP, GIF)"}
	ErrFileTooLarge       = &ValidationError{Message: "File is too large. Please select an image under 10MB"}
	ErrImageRequired      = &ValidationError{Message: "Please upload an image first"}
	ErrNotAuthenticated   = &ValidationError{Message: "User not authenticated"}
	ErrDimensionsRequired = &ValidationError{Message: "Please enter valid width and height or select a preset size"}
)

// ValidationError is a local input problem. It is always raised before any
// network call and is recoverable by correcting the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RemoteError is a non-2xx or malformed response from a collaborator.
// Message holds the most specific text the server provided.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// UserMessage returns the text to show the user for err: the server message
// of a RemoteError, the message of a ValidationError, else err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	return err.Error()
}
