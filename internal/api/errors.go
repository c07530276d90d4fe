package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ankify/ankify-api/internal/api/shared"
	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/generation"
	"github.com/ankify/ankify-api/internal/platform/transcript"
	"github.com/ankify/ankify-api/internal/service"
	"github.com/ankify/ankify-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	switch {
	// Bad request errors
	case errors.As(err, &validationErrs),
		errors.As(err, &domainErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrInvalidJSON),
		errors.Is(err, export.ErrUnsupportedFormat),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, shared.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge

	// Not found errors
	case errors.Is(err, service.ErrFlashcardSetNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, transcript.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Content that cannot become flashcards
	case errors.Is(err, service.ErrNoFlashcards),
		errors.Is(err, generation.ErrContentBlocked),
		errors.Is(err, transcript.ErrNoSpeech),
		errors.Is(err, transcript.ErrTooLittleSpeech):
		return http.StatusUnprocessableEntity

	case errors.Is(err, transcript.ErrRateLimited):
		return http.StatusTooManyRequests

	// Upstream failures
	case errors.Is(err, transcript.ErrUnauthorized),
		errors.Is(err, transcript.ErrUpstream),
		errors.Is(err, transcript.ErrTimeout),
		errors.Is(err, transcript.ErrUnexpectedFormat),
		errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return http.StatusBadGateway

	case errors.Is(err, service.ErrGenerationUnavailable),
		errors.Is(err, service.ErrTranscriptUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	var domainErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.As(err, &domainErr):
		if domainErr.Field == "" {
			return "Validation error: " + domainErr.Message
		}
		return fmt.Sprintf("Invalid %s: %s", domainErr.Field, domainErr.Message)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Validation error"

	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"

	case errors.Is(err, shared.ErrRequestTooLarge):
		return "Request body too large"

	case errors.Is(err, export.ErrUnsupportedFormat):
		return fmt.Sprintf("Unsupported export format; use one of: %s", formatList())

	case errors.Is(err, service.ErrFlashcardSetNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Flashcard set not found"

	case errors.Is(err, service.ErrNoFlashcards):
		return "No flashcards could be generated from the content."

	case errors.Is(err, generation.ErrContentBlocked):
		return "The content was blocked by the language model's safety filters."

	case errors.Is(err, generation.ErrGenerationFailed),
		errors.Is(err, generation.ErrInvalidResponse):
		return "Flashcard generation failed. Please try again."

	case errors.Is(err, service.ErrGenerationUnavailable):
		return "Flashcard generation is not available."

	case errors.Is(err, service.ErrTranscriptUnavailable):
		return "YouTube transcripts are not available."

	case errors.Is(err, transcript.ErrNotFound):
		return "Video not found or transcript unavailable."

	case errors.Is(err, transcript.ErrNoSpeech):
		return "No speech could be transcribed from this video."

	case errors.Is(err, transcript.ErrTooLittleSpeech):
		return "Very little speech was detected in this video."

	case errors.Is(err, transcript.ErrRateLimited):
		return "Too many transcript requests. Please try again later."

	case errors.Is(err, transcript.ErrUnauthorized),
		errors.Is(err, transcript.ErrUpstream),
		errors.Is(err, transcript.ErrTimeout),
		errors.Is(err, transcript.ErrUnexpectedFormat):
		return "Failed to fetch the video transcript."

	case errors.Is(err, store.ErrDuplicate):
		return "Flashcard set already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a client message
// naming the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	first := errs[0]
	field := first.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(first.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. A non-empty
// message overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), message, err)
}

func formatList() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
