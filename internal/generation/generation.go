package generation

import (
	"context"
	"strings"

	"github.com/ankify/ankify-api/internal/domain"
)

// Completer sends one prompt to a language model and returns its raw text
// answer.
type Completer interface {
	// Complete returns the model's text for userPrompt under systemPrompt.
	// Errors wrap one of the sentinels in errors.go.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SystemPrompt instructs the model to emit one "Question | Answer" card per
// line with no numbering or labels.
const SystemPrompt = `You are a world-class Anki flashcard creator. Your goal is to extract key facts and concepts and format them as flashcards.

STRICT OUTPUT RULES:
1. Format: Question | Answer
2. Exactly one flashcard per line.
3. Use the pipe symbol (|) as the ONLY separator.
4. NO numbering (e.g., skip "1. ", "Card 1:").
5. NO headers, NO "Question:" or "Answer:" labels.
6. NO bolding of the separator or keys.
7. Wrap math in \( ... \) for inline or \[ ... \] for block.
8. Wrap chemistry in \( \ce{...} \).

Example Output:
What is the speed of light? | Approximately 299,792,458 meters per second.
What are the three laws of thermodynamics? | 1. Energy cannot be created or destroyed. 2. Entropy always increases. 3. Entropy approaches a constant at absolute zero.`

// BuildUserPrompt renders the user message for source. For YouTube sources
// transcript carries the fetched transcript; it is ignored for text.
func BuildUserPrompt(source domain.Source, transcript string) string {
	var b strings.Builder
	switch source.Type {
	case domain.SourceTypeYouTube:
		b.WriteString("Create Anki flashcards from this YouTube video transcript:\n\n")
		b.WriteString(transcript)
		b.WriteString("\n\nYouTube URL: ")
		b.WriteString(source.Value)
	default:
		b.WriteString("Create Anki flashcards from this text content:\n\n")
		b.WriteString(source.Value)
	}
	return b.String()
}
