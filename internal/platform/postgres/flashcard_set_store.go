package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/platform/logger"
	"github.com/ankify/ankify-api/internal/redact"
	"github.com/ankify/ankify-api/internal/store"
	"github.com/google/uuid"
)

// cardInsertBatch bounds the rows per INSERT so the bind parameter count
// stays well under PostgreSQL's limit of 65535.
const cardInsertBatch = 1000

// FlashcardSetStore implements store.FlashcardSetStore on PostgreSQL.
type FlashcardSetStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

var _ store.FlashcardSetStore = (*FlashcardSetStore)(nil)

// NewFlashcardSetStore creates a store on pool. If logger is nil, the
// default logger is used.
func NewFlashcardSetStore(pool *sql.DB, logger *slog.Logger) *FlashcardSetStore {
	if pool == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardSetStore{
		db:     pool,
		pool:   pool,
		logger: logger.With(slog.String("component", "flashcard_set_store")),
	}
}

// WithTx returns a store that runs its statements on tx.
func (s *FlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return &FlashcardSetStore{
		db:     tx,
		pool:   s.pool,
		logger: s.logger,
	}
}

// DB returns the underlying pool.
func (s *FlashcardSetStore) DB() *sql.DB {
	return s.pool
}

// Create inserts the set row and then its cards in batches. Run it through
// WithTx so a failed card insert does not leave an empty set behind.
func (s *FlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.WarnContext(ctx, "flashcard set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_id", set.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO flashcard_sets (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, set.ID, set.Title, set.Description, set.CreatedAt, set.UpdatedAt)
	if err != nil {
		log.ErrorContext(ctx, "failed to insert flashcard set",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", set.ID.String()))
		return store.NewStoreError("flashcard_set", "create", "failed to insert set", MapError(err))
	}

	for start := 0; start < len(set.Cards); start += cardInsertBatch {
		end := min(start+cardInsertBatch, len(set.Cards))
		if err := s.insertCards(ctx, set.ID, start, set.Cards[start:end]); err != nil {
			log.ErrorContext(ctx, "failed to insert flashcards",
				slog.String("error", redact.Error(err)),
				slog.String("set_id", set.ID.String()),
				slog.Int("offset", start))
			return store.NewStoreError("flashcard_set", "create", "failed to insert cards", MapError(err))
		}
	}

	log.InfoContext(ctx, "flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.Int("card_count", len(set.Cards)))
	return nil
}

// insertCards writes cards with positions starting at offset in one
// multi-row INSERT.
func (s *FlashcardSetStore) insertCards(
	ctx context.Context,
	setID uuid.UUID,
	offset int,
	cards []domain.Flashcard,
) error {
	var query strings.Builder
	query.WriteString("INSERT INTO flashcards (set_id, position, question, answer) VALUES ")

	args := make([]any, 0, len(cards)*4)
	for i, card := range cards {
		if i > 0 {
			query.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		args = append(args, setID, offset+i, card.Question, card.Answer)
	}

	_, err := s.db.ExecContext(ctx, query.String(), args...)
	return err
}

// GetByID loads a set and its cards ordered by position.
func (s *FlashcardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set domain.FlashcardSet
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, created_at, updated_at
		FROM flashcard_sets
		WHERE id = $1
	`, id).Scan(&set.ID, &set.Title, &set.Description, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.DebugContext(ctx, "flashcard set not found", slog.String("set_id", id.String()))
			return nil, store.ErrFlashcardSetNotFound
		}
		log.ErrorContext(ctx, "failed to get flashcard set",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", id.String()))
		return nil, store.NewStoreError("flashcard_set", "get", "failed to query set", MapError(err))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT question, answer
		FROM flashcards
		WHERE set_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		log.ErrorContext(ctx, "failed to query flashcards",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", id.String()))
		return nil, store.NewStoreError("flashcard_set", "get", "failed to query cards", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	set.Cards = []domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.Question, &card.Answer); err != nil {
			return nil, store.NewStoreError("flashcard_set", "get", "failed to scan card", err)
		}
		set.Cards = append(set.Cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard_set", "get", "failed to read cards", MapError(err))
	}

	log.DebugContext(ctx, "flashcard set retrieved",
		slog.String("set_id", id.String()),
		slog.Int("card_count", len(set.Cards)))
	return &set, nil
}

// List returns set summaries newest first, with card counts.
func (s *FlashcardSetStore) List(ctx context.Context, limit, offset int) ([]*domain.FlashcardSetSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.description, s.created_at, s.updated_at, COUNT(f.position)
		FROM flashcard_sets s
		LEFT JOIN flashcards f ON f.set_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		log.ErrorContext(ctx, "failed to list flashcard sets", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("flashcard_set", "list", "failed to query sets", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	summaries := []*domain.FlashcardSetSummary{}
	for rows.Next() {
		var summary domain.FlashcardSetSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Title,
			&summary.Description,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.CardCount,
		); err != nil {
			return nil, store.NewStoreError("flashcard_set", "list", "failed to scan set", err)
		}
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("flashcard_set", "list", "failed to read sets", MapError(err))
	}

	return summaries, nil
}

// Delete removes a set; its cards go with it through ON DELETE CASCADE.
func (s *FlashcardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM flashcard_sets WHERE id = $1`, id)
	if err != nil {
		log.ErrorContext(ctx, "failed to delete flashcard set",
			slog.String("error", redact.Error(err)),
			slog.String("set_id", id.String()))
		return store.NewStoreError("flashcard_set", "delete", "failed to delete set", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrFlashcardSetNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.ErrorContext(ctx, "failed to check deleted rows", slog.String("error", err.Error()))
		}
		return err
	}

	log.InfoContext(ctx, "flashcard set deleted", slog.String("set_id", id.String()))
	return nil
}
