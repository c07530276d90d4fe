package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/ankify/ankify-api/internal/domain"
)

// FlashcardPayload is a single card in request and response bodies.
type FlashcardPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// ParseRequest defines the payload for POST /api/flashcards/parse.
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// GenerateRequest defines the payload for POST /api/flashcards/generate.
type GenerateRequest struct {
	Type  string `json:"type"  validate:"required,oneof=text youtube"`
	Value string `json:"value" validate:"required"`
}

// ExportCardsRequest defines the payload for POST /api/flashcards/export.
type ExportCardsRequest struct {
	Flashcards []FlashcardPayload `json:"flashcards" validate:"required,min=1,dive"`
}

// CreateSetRequest defines the payload for POST /api/flashcard-sets.
type CreateSetRequest struct {
	Title       string             `json:"title"       validate:"required,max=200"`
	Description string             `json:"description" validate:"max=2000"`
	Flashcards  []FlashcardPayload `json:"flashcards"  validate:"required,min=1,dive"`
}

// FlashcardsResponse is returned by the parse and generate endpoints.
type FlashcardsResponse struct {
	Flashcards []FlashcardPayload `json:"flashcards"`
	Count      int                `json:"count"`
}

// FlashcardSetResponse is a saved set with its cards.
type FlashcardSetResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Flashcards  []FlashcardPayload `json:"flashcards"`
	Count       int                `json:"count"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// FlashcardSetSummaryResponse is a saved set without its cards.
type FlashcardSetSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Count       int       `json:"count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListSetsResponse is returned by GET /api/flashcard-sets.
type ListSetsResponse struct {
	Sets   []FlashcardSetSummaryResponse `json:"sets"`
	Limit  int                           `json:"limit"`
	Offset int                           `json:"offset"`
}

func toFlashcardPayloads(cards []domain.Flashcard) []FlashcardPayload {
	out := make([]FlashcardPayload, len(cards))
	for i, c := range cards {
		out[i] = FlashcardPayload{Question: c.Question, Answer: c.Answer}
	}
	return out
}

func toDomainFlashcards(payloads []FlashcardPayload) []domain.Flashcard {
	out := make([]domain.Flashcard, len(payloads))
	for i, p := range payloads {
		out[i] = domain.Flashcard{Question: p.Question, Answer: p.Answer}
	}
	return out
}

func newFlashcardsResponse(cards []domain.Flashcard) FlashcardsResponse {
	return FlashcardsResponse{
		Flashcards: toFlashcardPayloads(cards),
		Count:      len(cards),
	}
}

func newFlashcardSetResponse(set *domain.FlashcardSet) FlashcardSetResponse {
	return FlashcardSetResponse{
		ID:          set.ID,
		Title:       set.Title,
		Description: set.Description,
		Flashcards:  toFlashcardPayloads(set.Cards),
		Count:       len(set.Cards),
		CreatedAt:   set.CreatedAt,
		UpdatedAt:   set.UpdatedAt,
	}
}

func newSummaryResponses(summaries []*domain.FlashcardSetSummary) []FlashcardSetSummaryResponse {
	out := make([]FlashcardSetSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = FlashcardSetSummaryResponse{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Count:       s.CardCount,
			CreatedAt:   s.CreatedAt,
			UpdatedAt:   s.UpdatedAt,
		}
	}
	return out
}
