// Package domain contains the core business entities, value objects, and
// validation rules of the application: flashcards, flashcard sets, and the
// content sources flashcards are generated from. It is independent of any
// storage or delivery mechanism.
package domain
