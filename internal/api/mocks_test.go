package api

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
)

// MockFlashcardService is a mock implementation of service.FlashcardService.
// Export methods write the string given as their output argument to w.
type MockFlashcardService struct {
	mock.Mock
}

func (m *MockFlashcardService) Parse(ctx context.Context, text string) ([]domain.Flashcard, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) Generate(ctx context.Context, source domain.Source) ([]domain.Flashcard, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) SaveSet(
	ctx context.Context,
	title, description string,
	cards []domain.Flashcard,
) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, title, description, cards)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockFlashcardService) GetSet(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockFlashcardService) ListSets(
	ctx context.Context,
	limit, offset int,
) ([]*domain.FlashcardSetSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FlashcardSetSummary), args.Error(1)
}

func (m *MockFlashcardService) DeleteSet(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlashcardService) ExportSet(
	ctx context.Context,
	id uuid.UUID,
	format export.Format,
	w io.Writer,
) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(2)
	}
	_, _ = io.WriteString(w, args.String(1))
	return args.Get(0).(*domain.FlashcardSet), args.Error(2)
}

func (m *MockFlashcardService) ExportCards(
	ctx context.Context,
	cards []domain.Flashcard,
	format export.Format,
	w io.Writer,
) error {
	args := m.Called(ctx, cards, format)
	if args.Error(1) == nil {
		_, _ = io.WriteString(w, args.String(0))
	}
	return args.Error(1)
}
