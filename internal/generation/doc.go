// Package generation defines the boundary between the application and the
// language model that drafts flashcards.
//
// The model is asked to answer in the "Question | Answer" line format the
// parser recognises, so generated output goes through exactly the same
// parsing path as pasted text. A Completer implementation for Gemini lives
// in internal/platform/gemini.
package generation
