package domain

import (
	"fmt"
	"strings"
)

// Flashcard validation errors
var (
	// ErrFlashcardQuestionEmpty is returned when a flashcard has a blank question.
	ErrFlashcardQuestionEmpty = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrFlashcardAnswerEmpty is returned when a flashcard has a blank answer.
	ErrFlashcardAnswerEmpty = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)
)

// Flashcard is a single question/answer pair. A flashcard has no identity
// beyond its position in the sequence that holds it.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewFlashcard trims both sides and returns the resulting flashcard, or an
// error if either side is blank.
func NewFlashcard(question, answer string) (Flashcard, error) {
	card := Flashcard{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}
	if err := card.Validate(); err != nil {
		return Flashcard{}, err
	}
	return card, nil
}

// Validate reports whether both sides are non-empty after trimming.
func (f Flashcard) Validate() error {
	if strings.TrimSpace(f.Question) == "" {
		return ErrFlashcardQuestionEmpty
	}
	if strings.TrimSpace(f.Answer) == "" {
		return ErrFlashcardAnswerEmpty
	}
	return nil
}

// ValidateFlashcards validates every card and reports the first failure
// along with its index.
func ValidateFlashcards(cards []Flashcard) error {
	if len(cards) == 0 {
		return NewValidationError("flashcards", "must contain at least one card", ErrEmptyContent)
	}
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("flashcards[%d]", i), "is invalid", err)
		}
	}
	return nil
}
