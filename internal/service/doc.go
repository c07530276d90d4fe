// Package service implements the application's use cases on top of the
// parser, the generation and transcript adapters, and the flashcard set
// store. Handlers in internal/api and the CLI call into this package and
// never reach the adapters directly.
package service
