// Package transcript fetches YouTube video transcripts from the
// TranscriptAPI service so they can be turned into flashcards.
package transcript
