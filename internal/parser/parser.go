package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ankify/ankify-api/internal/domain"
)

// PlaceholderQuestion is the question of the single catch-all card produced
// when the input has no recognisable structure and fewer than two sentences.
const PlaceholderQuestion = "Key Points"

// Rule names reported in Stats.Matched.
const (
	RulePipe  = "pipe"
	RuleColon = "colon"
)

// Fallback values reported in Stats.Fallback.
const (
	FallbackNone        = ""
	FallbackSentences   = "sentences"
	FallbackPlaceholder = "placeholder"
)

// sentenceRegex matches a run of non-terminal characters followed by one or
// more terminal punctuation marks, which stay attached to the sentence.
var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Stats describes how a parse arrived at its result.
type Stats struct {
	// Lines is the number of non-blank lines examined.
	Lines int `json:"lines"`
	// Matched counts accepted lines per rule name.
	Matched map[string]int `json:"matched"`
	// Dropped is the number of non-blank lines no rule accepted.
	Dropped int `json:"dropped"`
	// Fallback names the fallback used, or FallbackNone.
	Fallback string `json:"fallback,omitempty"`
}

// Parse converts text into an ordered sequence of flashcards. The result is
// empty only when text is empty or all whitespace.
func Parse(text string) []domain.Flashcard {
	cards, _ := ParseWithStats(text)
	return cards
}

// ParseWithStats is Parse that also reports per-rule statistics.
func ParseWithStats(text string) ([]domain.Flashcard, Stats) {
	stats := Stats{Matched: make(map[string]int, len(defaultRules))}
	var cards []domain.Flashcard

	for _, raw := range strings.Split(text, "\n") {
		line := trim(raw)
		if line == "" {
			continue
		}
		stats.Lines++

		card, ruleName, ok := matchLine(line)
		if !ok {
			stats.Dropped++
			continue
		}
		stats.Matched[ruleName]++
		cards = append(cards, card)
	}

	if len(cards) > 0 {
		return cards, stats
	}

	trimmed := trim(text)
	if trimmed == "" {
		return nil, stats
	}

	if cards := pairSentences(text); len(cards) > 0 {
		stats.Fallback = FallbackSentences
		return cards, stats
	}

	stats.Fallback = FallbackPlaceholder
	return []domain.Flashcard{{Question: PlaceholderQuestion, Answer: trimmed}}, stats
}

// matchLine offers line to each rule in priority order.
func matchLine(line string) (domain.Flashcard, string, bool) {
	for _, r := range defaultRules {
		if card, ok := r.match(line); ok {
			return card, r.name(), true
		}
	}
	return domain.Flashcard{}, "", false
}

// pairSentences splits text into sentences and pairs them as
// question/answer. It returns nil when there are fewer than two sentences;
// a trailing unpaired sentence is dropped.
func pairSentences(text string) []domain.Flashcard {
	sentences := sentenceRegex.FindAllString(text, -1)
	if len(sentences) < 2 {
		return nil
	}

	cards := make([]domain.Flashcard, 0, len(sentences)/2)
	for i := 0; i+1 < len(sentences); i += 2 {
		cards = append(cards, domain.Flashcard{
			Question: trim(sentences[i]),
			Answer:   trim(sentences[i+1]),
		})
	}
	return cards
}

// trim strips surrounding whitespace including the byte order mark, which
// unicode.IsSpace does not cover.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
