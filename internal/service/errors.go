package service

import (
	"errors"
	"fmt"

	"github.com/ankify/ankify-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNoFlashcards indicates the content produced no flashcards at all.
	// API layer should map this to HTTP 422 Unprocessable Entity.
	ErrNoFlashcards = errors.New("no flashcards could be generated from the content")

	// ErrGenerationUnavailable indicates no language model is configured.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrGenerationUnavailable = errors.New("flashcard generation is not configured")

	// ErrTranscriptUnavailable indicates no transcript service is configured,
	// so YouTube sources cannot be used.
	// API layer should map this to HTTP 503 Service Unavailable.
	ErrTranscriptUnavailable = errors.New("youtube transcripts are not configured")

	// ErrFlashcardSetNotFound indicates that the flashcard set does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrFlashcardSetNotFound = errors.New("flashcard set not found")
)

// ServiceError wraps errors from the flashcard service with context.
type ServiceError struct {
	// Operation is the operation that failed, e.g. "generate" or "save_set"
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flashcard service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("flashcard service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err in a ServiceError. Service sentinels are
// returned unwrapped, and store not-found errors become
// ErrFlashcardSetNotFound.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		ErrNoFlashcards,
		ErrGenerationUnavailable,
		ErrTranscriptUnavailable,
		ErrFlashcardSetNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	if errors.Is(err, store.ErrFlashcardSetNotFound) {
		return ErrFlashcardSetNotFound
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
