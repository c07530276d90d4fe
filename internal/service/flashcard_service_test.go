package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/generation"
	"github.com/ankify/ankify-api/internal/platform/transcript"
	"github.com/ankify/ankify-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...Option) (FlashcardService, *MockFlashcardSetStore, sqlmock.Sqlmock) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sets := &MockFlashcardSetStore{db: db}
	svc, err := NewFlashcardService(sets, nil, opts...)
	require.NoError(t, err)
	return svc, sets, sqlMock
}

func TestNewFlashcardService(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		svc, err := NewFlashcardService(nil, nil)
		assert.Nil(t, svc)

		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "create_service", serviceErr.Operation)
	})

	t.Run("valid store", func(t *testing.T) {
		svc, err := NewFlashcardService(&MockFlashcardSetStore{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestFlashcardService_Parse(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cards, err := svc.Parse(ctx, "What is Go? | A language\nTerm: Definition")
	require.NoError(t, err)
	assert.Equal(t, []domain.Flashcard{
		{Question: "What is Go?", Answer: "A language"},
		{Question: "Term", Answer: "Definition"},
	}, cards)

	_, err = svc.Parse(ctx, "  \n\t ")
	assert.ErrorIs(t, err, ErrNoFlashcards)
}

func TestFlashcardService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid source", func(t *testing.T) {
		completer := &MockCompleter{}
		svc, _, _ := newTestService(t, WithCompleter(completer))

		_, err := svc.Generate(ctx, domain.Source{Type: "pdf", Value: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidSourceType)

		_, err = svc.Generate(ctx, domain.Source{Type: domain.SourceTypeText, Value: "   "})
		assert.ErrorIs(t, err, domain.ErrEmptyContent)

		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("generation not configured", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Generate(ctx, domain.Source{Type: domain.SourceTypeText, Value: "notes"})
		assert.ErrorIs(t, err, ErrGenerationUnavailable)
	})

	t.Run("text source", func(t *testing.T) {
		completer := &MockCompleter{}
		completer.On("Complete", mock.Anything, generation.SystemPrompt,
			mock.MatchedBy(func(p string) bool { return strings.HasSuffix(p, "Mitochondria notes") })).
			Return("What is the powerhouse of the cell? | The mitochondria", nil)
		svc, _, _ := newTestService(t, WithCompleter(completer))

		cards, err := svc.Generate(ctx, domain.Source{Type: domain.SourceTypeText, Value: "Mitochondria notes"})
		require.NoError(t, err)
		assert.Equal(t, []domain.Flashcard{
			{Question: "What is the powerhouse of the cell?", Answer: "The mitochondria"},
		}, cards)
		completer.AssertExpectations(t)
	})

	t.Run("empty model output", func(t *testing.T) {
		completer := &MockCompleter{}
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("  ", nil)
		svc, _, _ := newTestService(t, WithCompleter(completer))

		_, err := svc.Generate(ctx, domain.Source{Type: domain.SourceTypeText, Value: "notes"})
		assert.ErrorIs(t, err, ErrNoFlashcards)
	})

	t.Run("model failure is wrapped", func(t *testing.T) {
		completer := &MockCompleter{}
		completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return("", generation.ErrContentBlocked)
		svc, _, _ := newTestService(t, WithCompleter(completer))

		_, err := svc.Generate(ctx, domain.Source{Type: domain.SourceTypeText, Value: "notes"})
		assert.ErrorIs(t, err, generation.ErrContentBlocked)

		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "generate", serviceErr.Operation)
	})

	t.Run("youtube without transcript service", func(t *testing.T) {
		svc, _, _ := newTestService(t, WithCompleter(&MockCompleter{}))

		_, err := svc.Generate(ctx, domain.Source{
			Type:  domain.SourceTypeYouTube,
			Value: "https://www.youtube.com/watch?v=abc",
		})
		assert.ErrorIs(t, err, ErrTranscriptUnavailable)
	})

	t.Run("youtube source uses transcript", func(t *testing.T) {
		const videoURL = "https://youtu.be/abc"

		fetcher := &MockTranscriptFetcher{}
		fetcher.On("Fetch", mock.Anything, videoURL).Return("the transcript text", nil)

		completer := &MockCompleter{}
		completer.On("Complete", mock.Anything, generation.SystemPrompt,
			mock.MatchedBy(func(p string) bool {
				return strings.Contains(p, "the transcript text") && strings.HasSuffix(p, videoURL)
			})).
			Return("Q1 | A1\nQ2 | A2", nil)

		svc, _, _ := newTestService(t, WithCompleter(completer), WithTranscriptFetcher(fetcher))

		cards, err := svc.Generate(ctx, domain.Source{Type: domain.SourceTypeYouTube, Value: "  " + videoURL + "\n"})
		require.NoError(t, err)
		assert.Len(t, cards, 2)
		fetcher.AssertExpectations(t)
		completer.AssertExpectations(t)
	})

	t.Run("transcript failure", func(t *testing.T) {
		fetcher := &MockTranscriptFetcher{}
		fetcher.On("Fetch", mock.Anything, mock.Anything).Return("", transcript.ErrNotFound)
		completer := &MockCompleter{}
		svc, _, _ := newTestService(t, WithCompleter(completer), WithTranscriptFetcher(fetcher))

		_, err := svc.Generate(ctx, domain.Source{
			Type:  domain.SourceTypeYouTube,
			Value: "https://www.youtube.com/watch?v=abc",
		})
		assert.ErrorIs(t, err, transcript.ErrNotFound)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFlashcardService_SaveSet(t *testing.T) {
	ctx := context.Background()
	cards := []domain.Flashcard{{Question: " Q1 ", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}

	t.Run("commits on success", func(t *testing.T) {
		svc, sets, sqlMock := newTestService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()
		sets.On("Create", mock.Anything, mock.AnythingOfType("*domain.FlashcardSet")).Return(nil)

		set, err := svc.SaveSet(ctx, " Biology ", "", cards)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, set.ID)
		assert.Equal(t, "Biology", set.Title)
		assert.Equal(t, "Q1", set.Cards[0].Question)
		assert.Equal(t, " Q1 ", cards[0].Question)

		sets.AssertExpectations(t)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("rolls back on store failure", func(t *testing.T) {
		svc, sets, sqlMock := newTestService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()
		cause := errors.New("insert failed")
		sets.On("Create", mock.Anything, mock.Anything).Return(cause)

		set, err := svc.SaveSet(ctx, "Biology", "", cards)
		assert.Nil(t, set)
		assert.ErrorIs(t, err, cause)

		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "save_set", serviceErr.Operation)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("validation failure skips the store", func(t *testing.T) {
		svc, sets, sqlMock := newTestService(t)

		_, err := svc.SaveSet(ctx, "  ", "", cards)
		assert.ErrorIs(t, err, domain.ErrEmptyContent)

		_, err = svc.SaveSet(ctx, "Title", "", []domain.Flashcard{{Question: "Q", Answer: " "}})
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)

		sets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestFlashcardService_GetSet(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		want := &domain.FlashcardSet{ID: id, Title: "Set"}
		sets.On("GetByID", mock.Anything, id).Return(want, nil)

		got, err := svc.GetSet(ctx, id)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		sets.On("GetByID", mock.Anything, id).Return(nil, store.ErrFlashcardSetNotFound)

		_, err := svc.GetSet(ctx, id)
		assert.ErrorIs(t, err, ErrFlashcardSetNotFound)
	})
}

func TestFlashcardService_ListSets(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative values", -5, -1, DefaultListLimit, 0},
		{"capped limit", 500, 40, MaxListLimit, 40},
		{"explicit values", 10, 30, 10, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sets, _ := newTestService(t)
			summaries := []*domain.FlashcardSetSummary{{ID: uuid.New(), Title: "Set", CardCount: 3}}
			sets.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return(summaries, nil)

			got, err := svc.ListSets(ctx, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, summaries, got)
			sets.AssertExpectations(t)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		sets.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := svc.ListSets(ctx, 0, 0)
		var serviceErr *ServiceError
		assert.ErrorAs(t, err, &serviceErr)
	})
}

func TestFlashcardService_DeleteSet(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	svc, sets, _ := newTestService(t)
	sets.On("Delete", mock.Anything, id).Return(nil).Once()
	sets.On("Delete", mock.Anything, id).Return(store.ErrFlashcardSetNotFound).Once()

	assert.NoError(t, svc.DeleteSet(ctx, id))
	assert.ErrorIs(t, svc.DeleteSet(ctx, id), ErrFlashcardSetNotFound)
}

func TestFlashcardService_ExportSet(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	set := &domain.FlashcardSet{
		ID:    id,
		Title: "Set",
		Cards: []domain.Flashcard{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: `say "hi"`}},
	}

	t.Run("text", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		sets.On("GetByID", mock.Anything, id).Return(set, nil)

		var buf bytes.Buffer
		got, err := svc.ExportSet(ctx, id, export.FormatText, &buf)
		require.NoError(t, err)
		assert.Same(t, set, got)
		assert.Equal(t, "Q1|A1\nQ2|say \"hi\"", buf.String())
	})

	t.Run("csv", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		sets.On("GetByID", mock.Anything, id).Return(set, nil)

		var buf bytes.Buffer
		_, err := svc.ExportSet(ctx, id, export.FormatCSV, &buf)
		require.NoError(t, err)
		assert.Equal(t, "\"Q1\",\"A1\"\n\"Q2\",\"say \"\"hi\"\"\"\n", buf.String())
	})

	t.Run("unsupported format", func(t *testing.T) {
		svc, sets, _ := newTestService(t)

		_, err := svc.ExportSet(ctx, id, export.Format("apkg"), &bytes.Buffer{})
		assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
		sets.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing set", func(t *testing.T) {
		svc, sets, _ := newTestService(t)
		sets.On("GetByID", mock.Anything, id).Return(nil, store.ErrFlashcardSetNotFound)

		_, err := svc.ExportSet(ctx, id, export.FormatCSV, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrFlashcardSetNotFound)
	})
}

func TestFlashcardService_ExportCards(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	var buf bytes.Buffer
	err := svc.ExportCards(ctx, []domain.Flashcard{{Question: "Q", Answer: "A"}}, export.FormatText, &buf)
	require.NoError(t, err)
	assert.Equal(t, "Q|A", buf.String())

	err = svc.ExportCards(ctx, []domain.Flashcard{{Question: "", Answer: "A"}}, export.FormatText, &bytes.Buffer{})
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	err = svc.ExportCards(ctx, nil, export.Format("xml"), &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
