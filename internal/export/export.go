// Package export serializes flashcards into the downloadable formats
// accepted by Anki's import dialog.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ankify/ankify-api/internal/domain"
)

// Format names an export serialization.
type Format string

const (
	// FormatText writes one "question|answer" line per card.
	FormatText Format = "txt"
	// FormatCSV writes one fully quoted "question","answer" row per card.
	FormatCSV Format = "csv"
)

// ErrUnsupportedFormat is returned for format names other than txt or csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Formats lists the supported formats in display order.
var Formats = []Format{FormatText, FormatCSV}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText:
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType is the MIME type served for format.
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FileName returns base with the extension for format. An empty base
// becomes "flashcards".
func FileName(format Format, base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "flashcards"
	}
	return base + "." + string(format)
}

// Write serializes cards to w in the given format.
func Write(w io.Writer, format Format, cards []domain.Flashcard) error {
	var body string
	switch format {
	case FormatText:
		body = text(cards)
	case FormatCSV:
		body = csv(cards)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	if _, err := io.WriteString(w, body); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return nil
}

// Bytes is Write into a fresh buffer.
func Bytes(format Format, cards []domain.Flashcard) ([]byte, error) {
	var b strings.Builder
	if err := Write(&b, format, cards); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func text(cards []domain.Flashcard) string {
	lines := make([]string, len(cards))
	for i, c := range cards {
		lines[i] = c.Question + "|" + c.Answer
	}
	return strings.Join(lines, "\n")
}

// csv always quotes both fields, which encoding/csv only does when a field
// needs it.
func csv(cards []domain.Flashcard) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(quote(c.Question))
		b.WriteByte(',')
		b.WriteString(quote(c.Answer))
		b.WriteByte('\n')
	}
	return b.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
