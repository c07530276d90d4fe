package generation

import "errors"

// Common errors returned by Completer implementations
var (
	// ErrGenerationFailed is returned when the model call fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate flashcards")

	// ErrInvalidResponse is returned when the model response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the completer configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
