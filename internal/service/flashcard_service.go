package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/generation"
	"github.com/ankify/ankify-api/internal/parser"
	"github.com/ankify/ankify-api/internal/platform/logger"
	"github.com/ankify/ankify-api/internal/redact"
	"github.com/ankify/ankify-api/internal/store"
	"github.com/google/uuid"
)

// Pagination bounds for ListSets.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// TranscriptFetcher returns the transcript of a YouTube video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}

// FlashcardService provides flashcard operations.
type FlashcardService interface {
	// Parse converts pasted text into flashcards.
	Parse(ctx context.Context, text string) ([]domain.Flashcard, error)

	// Generate asks the language model for flashcards about source.
	Generate(ctx context.Context, source domain.Source) ([]domain.Flashcard, error)

	// SaveSet validates and persists a titled set of cards.
	SaveSet(ctx context.Context, title, description string, cards []domain.Flashcard) (*domain.FlashcardSet, error)

	// GetSet returns a saved set with its cards.
	GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// ListSets returns saved set summaries, newest first.
	ListSets(ctx context.Context, limit, offset int) ([]*domain.FlashcardSetSummary, error)

	// DeleteSet removes a saved set.
	DeleteSet(ctx context.Context, id uuid.UUID) error

	// ExportSet writes a saved set to w and returns the set.
	ExportSet(ctx context.Context, id uuid.UUID, format export.Format, w io.Writer) (*domain.FlashcardSet, error)

	// ExportCards validates cards and writes them to w.
	ExportCards(ctx context.Context, cards []domain.Flashcard, format export.Format, w io.Writer) error
}

type flashcardService struct {
	sets        store.FlashcardSetStore
	completer   generation.Completer
	transcripts TranscriptFetcher
	logger      *slog.Logger
}

// Option configures the flashcard service.
type Option func(*flashcardService)

// WithCompleter enables generation through c.
func WithCompleter(c generation.Completer) Option {
	return func(s *flashcardService) { s.completer = c }
}

// WithTranscriptFetcher enables YouTube sources through f.
func WithTranscriptFetcher(f TranscriptFetcher) Option {
	return func(s *flashcardService) { s.transcripts = f }
}

// NewFlashcardService creates a FlashcardService backed by sets. Generation
// and YouTube sources stay disabled unless the matching option is given.
func NewFlashcardService(sets store.FlashcardSetStore, logger *slog.Logger, opts ...Option) (FlashcardService, error) {
	if sets == nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   "flashcard set store cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &flashcardService{
		sets:   sets,
		logger: logger.With("component", "flashcard_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *flashcardService) Parse(ctx context.Context, text string) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cards, stats := parser.ParseWithStats(text)
	log.DebugContext(ctx, "parsed text",
		"lines", stats.Lines,
		"dropped", stats.Dropped,
		"fallback", stats.Fallback,
		"card_count", len(cards))

	if len(cards) == 0 {
		return nil, ErrNoFlashcards
	}
	return cards, nil
}

func (s *flashcardService) Generate(ctx context.Context, source domain.Source) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := source.Validate(); err != nil {
		return nil, err
	}

	if s.completer == nil {
		return nil, ErrGenerationUnavailable
	}

	var transcriptText string
	if source.Type == domain.SourceTypeYouTube {
		if s.transcripts == nil {
			return nil, ErrTranscriptUnavailable
		}
		source.Value = strings.TrimSpace(source.Value)

		var err error
		transcriptText, err = s.transcripts.Fetch(ctx, source.Value)
		if err != nil {
			log.WarnContext(ctx, "failed to fetch transcript",
				"error", redact.Error(err),
				"video_url", source.Value)
			return nil, NewServiceError("generate", "failed to fetch transcript", err)
		}
	}

	prompt := generation.BuildUserPrompt(source, transcriptText)
	output, err := s.completer.Complete(ctx, generation.SystemPrompt, prompt)
	if err != nil {
		log.ErrorContext(ctx, "flashcard generation failed",
			"error", redact.Error(err),
			"source_type", source.Type)
		return nil, NewServiceError("generate", "language model request failed", err)
	}

	cards := parser.Parse(output)
	if len(cards) == 0 {
		log.WarnContext(ctx, "language model output produced no flashcards",
			"output_length", len(output))
		return nil, ErrNoFlashcards
	}

	log.InfoContext(ctx, "flashcards generated",
		"source_type", source.Type,
		"card_count", len(cards))
	return cards, nil
}

func (s *flashcardService) SaveSet(
	ctx context.Context,
	title, description string,
	cards []domain.Flashcard,
) (*domain.FlashcardSet, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := domain.NewFlashcardSet(title, description, cards)
	if err != nil {
		log.DebugContext(ctx, "flashcard set rejected", "error", err)
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.sets.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.sets.WithTx(tx).Create(ctx, set); err != nil {
			return NewServiceError("save_set", "failed to save flashcard set", err)
		}
		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "failed to save flashcard set",
			"error", redact.Error(err),
			"set_id", set.ID)
		return nil, err
	}

	log.InfoContext(ctx, "flashcard set saved",
		"set_id", set.ID,
		"card_count", len(set.Cards))
	return set, nil
}

func (s *flashcardService) GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	set, err := s.sets.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to retrieve flashcard set",
				"error", redact.Error(err),
				"set_id", id)
		}
		return nil, NewServiceError("get_set", "failed to retrieve flashcard set", err)
	}
	return set, nil
}

func (s *flashcardService) ListSets(ctx context.Context, limit, offset int) ([]*domain.FlashcardSetSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	summaries, err := s.sets.List(ctx, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).ErrorContext(ctx, "failed to list flashcard sets",
			"error", redact.Error(err))
		return nil, NewServiceError("list_sets", "failed to list flashcard sets", err)
	}
	return summaries, nil
}

func (s *flashcardService) DeleteSet(ctx context.Context, id uuid.UUID) error {
	if err := s.sets.Delete(ctx, id); err != nil {
		return NewServiceError("delete_set", "failed to delete flashcard set", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).InfoContext(ctx, "flashcard set deleted", "set_id", id)
	return nil
}

func (s *flashcardService) ExportSet(
	ctx context.Context,
	id uuid.UUID,
	format export.Format,
	w io.Writer,
) (*domain.FlashcardSet, error) {
	format, err := export.ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	set, err := s.GetSet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := export.Write(w, format, set.Cards); err != nil {
		return nil, NewServiceError("export_set", "failed to write export", err)
	}
	return set, nil
}

func (s *flashcardService) ExportCards(
	ctx context.Context,
	cards []domain.Flashcard,
	format export.Format,
	w io.Writer,
) error {
	format, err := export.ParseFormat(string(format))
	if err != nil {
		return err
	}

	if err := domain.ValidateFlashcards(cards); err != nil {
		return err
	}

	if err := export.Write(w, format, cards); err != nil {
		return NewServiceError("export_cards", "failed to write export", err)
	}
	return nil
}
