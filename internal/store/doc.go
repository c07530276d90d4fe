// Package store defines the persistence contract for saved flashcard sets
// and the transaction helpers shared by its implementations. The Postgres
// implementation lives in internal/platform/postgres.
package store
