package postgres

import (
	"context"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	entries, err := fs.ReadDir(migrationsFS, migrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		"00001_create_flashcard_sets.sql",
		"00002_create_flashcards.sql",
	}, names)

	for _, name := range names {
		body, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestMigrateUnknownCommand(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = Migrate(context.Background(), db, nil, "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown migration command")
}
