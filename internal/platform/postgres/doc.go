// Package postgres provides the PostgreSQL implementation of
// store.FlashcardSetStore along with its embedded goose migrations.
//
// Connections use database/sql with the pgx stdlib driver registered as
// "pgx". Driver errors are translated into store sentinels by MapError so
// callers never branch on PostgreSQL error codes.
package postgres
