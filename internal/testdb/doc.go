// Package testdb provides utilities for tests that need a real Postgres
// database. Tests using it are expected to carry the integration build tag.
package testdb
