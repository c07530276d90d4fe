package parser

import (
	"regexp"
	"strings"

	"github.com/ankify/ankify-api/internal/domain"
)

// maxColonQuestionLength bounds the question side of the colon rule, in
// characters, so long prose containing a colon is not taken as a card.
const maxColonQuestionLength = 500

// labelRegex matches one leading label models add despite instructions:
// "Card 1:", "Card 2.", "1. ", "2) ", "3: ", "Q:" or "Question:".
var labelRegex = regexp.MustCompile(`(?i)^(card\s*\d+[:.]?\s*|\d+[.):]\s*|q:|question:)`)

// rule recognises a single trimmed, non-empty line.
type rule interface {
	// name identifies the rule in Stats.
	name() string
	// match returns the card for line and true, or false if the rule
	// does not apply or would produce a blank side.
	match(line string) (domain.Flashcard, bool)
}

// defaultRules is the recognition order shared by every caller.
var defaultRules = []rule{
	pipeRule{},
	colonRule{},
}

// stripLabel removes one leading label from s and trims the result.
func stripLabel(s string) string {
	return trim(labelRegex.ReplaceAllString(trim(s), ""))
}

// pipeRule handles "question | answer". Only the first '|' splits; any
// further pipes stay in the answer.
type pipeRule struct{}

func (pipeRule) name() string { return RulePipe }

func (pipeRule) match(line string) (domain.Flashcard, bool) {
	question, answer, found := strings.Cut(line, "|")
	if !found {
		return domain.Flashcard{}, false
	}
	return pair(stripLabel(question), trim(answer))
}

// colonRule handles "question: answer". Lines starting with an http(s)
// scheme are never split, and neither are lines whose question side is
// very long or still contains "http".
type colonRule struct{}

func (colonRule) name() string { return RuleColon }

func (colonRule) match(line string) (domain.Flashcard, bool) {
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return domain.Flashcard{}, false
	}

	question, answer, found := strings.Cut(line, ":")
	if !found {
		return domain.Flashcard{}, false
	}

	question = stripLabel(question)
	if len([]rune(question)) >= maxColonQuestionLength || strings.Contains(question, "http") {
		return domain.Flashcard{}, false
	}
	return pair(question, trim(answer))
}

// pair builds a card from already trimmed sides, rejecting blanks.
func pair(question, answer string) (domain.Flashcard, bool) {
	if question == "" || answer == "" {
		return domain.Flashcard{}, false
	}
	return domain.Flashcard{Question: question, Answer: answer}, true
}
