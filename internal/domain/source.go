package domain

import (
	"errors"
	"regexp"
	"strings"
)

// SourceType identifies where flashcard content comes from.
type SourceType string

// Supported source types
const (
	SourceTypeText    SourceType = "text"
	SourceTypeYouTube SourceType = "youtube"
)

// Source validation errors
var (
	ErrInvalidSourceType = errors.New("invalid source type")
	ErrInvalidYouTubeURL = errors.New("invalid YouTube URL")
)

var youtubeURLRegex = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)

// Source is the raw input of a generation request: either pasted text or a
// YouTube video URL.
type Source struct {
	Type  SourceType `json:"type"`
	Value string     `json:"value"`
}

// IsValid reports whether t is a supported source type.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeText, SourceTypeYouTube:
		return true
	default:
		return false
	}
}

// Validate checks that the source has a known type and usable value.
func (s Source) Validate() error {
	if !s.Type.IsValid() {
		return NewValidationError("type", "must be one of text, youtube", ErrInvalidSourceType)
	}

	value := strings.TrimSpace(s.Value)
	if value == "" {
		return NewValidationError("value", "cannot be empty", ErrEmptyContent)
	}

	if s.Type == SourceTypeYouTube && !youtubeURLRegex.MatchString(value) {
		return NewValidationError("value", "is not a valid YouTube video link", ErrInvalidYouTubeURL)
	}

	return nil
}
