package service

import (
	"context"
	"database/sql"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockFlashcardSetStore is a mock implementation of store.FlashcardSetStore.
type MockFlashcardSetStore struct {
	mock.Mock
	db *sql.DB
}

func (m *MockFlashcardSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockFlashcardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockFlashcardSetStore) List(
	ctx context.Context,
	limit, offset int,
) ([]*domain.FlashcardSetSummary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FlashcardSetSummary), args.Error(1)
}

func (m *MockFlashcardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations set on it apply inside
// transactions.
func (m *MockFlashcardSetStore) WithTx(tx *sql.Tx) store.FlashcardSetStore {
	return m
}

func (m *MockFlashcardSetStore) DB() *sql.DB {
	return m.db
}

// MockCompleter is a mock implementation of generation.Completer.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockTranscriptFetcher is a mock implementation of TranscriptFetcher.
type MockTranscriptFetcher struct {
	mock.Mock
}

func (m *MockTranscriptFetcher) Fetch(ctx context.Context, videoURL string) (string, error) {
	args := m.Called(ctx, videoURL)
	return args.String(0), args.Error(1)
}
