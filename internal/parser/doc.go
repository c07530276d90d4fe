// Package parser turns loosely structured text, typically language-model
// output or pasted notes, into an ordered sequence of flashcards.
//
// Parsing is line oriented. Each non-blank line is offered to a fixed list
// of rules in priority order and the first rule that produces a complete
// question/answer pair wins:
//
//  1. Pipe rule: "question | answer", split on the first '|'.
//  2. Colon rule: "question: answer", split on the first ':', skipping URLs.
//
// Lines no rule accepts are dropped silently. When no line yields a card the
// whole input is split into sentences which are paired consecutively, and if
// fewer than two sentences exist a single card with PlaceholderQuestion is
// returned. Only empty or all-whitespace input produces no cards.
//
// Parse is a pure function and is safe for concurrent use.
package parser
