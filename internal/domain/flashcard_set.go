package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// MaxTitleLength is the maximum length of a flashcard set title, in characters.
	MaxTitleLength = 200

	// MaxDescriptionLength is the maximum length of a flashcard set description, in characters.
	MaxDescriptionLength = 2000
)

// FlashcardSet is a titled, persisted, ordered collection of flashcards.
type FlashcardSet struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Cards       []Flashcard `json:"flashcards"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// FlashcardSetSummary is a flashcard set without its cards, used for listings.
type FlashcardSetSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CardCount   int       `json:"card_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFlashcardSet creates a new FlashcardSet with a fresh ID and timestamps.
// Title, description, and every card are trimmed before validation. The
// card slice is copied so the caller keeps ownership of its input.
func NewFlashcardSet(title, description string, cards []Flashcard) (*FlashcardSet, error) {
	now := time.Now().UTC()

	trimmed := make([]Flashcard, len(cards))
	for i, card := range cards {
		trimmed[i] = Flashcard{
			Question: strings.TrimSpace(card.Question),
			Answer:   strings.TrimSpace(card.Answer),
		}
	}

	set := &FlashcardSet{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Cards:       trimmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

// Validate checks if the FlashcardSet has valid data.
func (s *FlashcardSet) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}

	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}

	if utf8.RuneCountInString(s.Title) > MaxTitleLength {
		return NewValidationError("title", "is too long", ErrValidation)
	}

	if utf8.RuneCountInString(s.Description) > MaxDescriptionLength {
		return NewValidationError("description", "is too long", ErrValidation)
	}

	return ValidateFlashcards(s.Cards)
}

// Summary returns the listing view of the set.
func (s *FlashcardSet) Summary() *FlashcardSetSummary {
	return &FlashcardSetSummary{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		CardCount:   len(s.Cards),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
