// Package gemini implements generation.Completer on Google's Gemini API.
//
// This package is an infrastructure adapter: it turns one system prompt
// and one user prompt into a single GenerateContent call and maps the
// response, or its failure modes, onto the generation package's errors.
// It performs no retries; callers decide whether to try again.
package gemini
