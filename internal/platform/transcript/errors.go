package transcript

import "errors"

// Errors returned by Client.Fetch. ErrNoSpeech and ErrTooLittleSpeech
// describe a transcript that was fetched but is unusable.
var (
	ErrUnauthorized     = errors.New("transcript service rejected the API key")
	ErrNotFound         = errors.New("video not found or transcript unavailable")
	ErrRateLimited      = errors.New("transcript service rate limit exceeded")
	ErrTimeout          = errors.New("transcript request timed out")
	ErrUpstream         = errors.New("transcript service error")
	ErrUnexpectedFormat = errors.New("unexpected transcript format")
	ErrNoSpeech         = errors.New("no speech could be transcribed from this video")
	ErrTooLittleSpeech  = errors.New("very little speech detected in this video")
	errMissingAPIKey    = errors.New("transcript api key required")
	errMissingBaseURL   = errors.New("transcript base url required")
	errMissingVideoURL  = errors.New("video url must not be empty")
)
