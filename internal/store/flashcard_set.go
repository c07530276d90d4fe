package store

import (
	"context"
	"database/sql"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/google/uuid"
)

// FlashcardSetStore defines the interface for flashcard set persistence.
type FlashcardSetStore interface {
	// Create saves set and all of its cards, keeping card order.
	// Returns ErrInvalidEntity if the database rejects the data.
	Create(ctx context.Context, set *domain.FlashcardSet) error

	// GetByID retrieves a set with its cards in their saved order.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// List returns set summaries, newest first.
	// Returns an empty slice if there are no sets in range.
	List(ctx context.Context, limit, offset int) ([]*domain.FlashcardSetSummary, error)

	// Delete removes a set and its cards.
	// Returns ErrFlashcardSetNotFound if the set does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a store that runs on tx.
	WithTx(tx *sql.Tx) FlashcardSetStore

	// DB returns the underlying pool, for use with RunInTransaction.
	DB() *sql.DB
}
