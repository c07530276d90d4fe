package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/ankify/ankify-api/internal/domain"
	"github.com/ankify/ankify-api/internal/export"
	"github.com/ankify/ankify-api/internal/parser"
)

const formatTable = "table"

var errNoFlashcards = errors.New("no flashcards could be generated")

// newCLIApp creates the CLI application reading from in and writing to out
// and errOut.
func newCLIApp(in io.Reader, out, errOut io.Writer) *cli.App {
	app := &cli.App{
		Name:      "ankify",
		Usage:     "Turn question/answer text into flashcards",
		Version:   Version,
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			parseCmd(),
			versionCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// parseCmd creates the parse command.
func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse flashcards from FILE, or stdin when FILE is omitted",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: txt|csv|table (default table on a terminal, txt otherwise)",
			},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Write output to FILE instead of stdout"},
			&cli.BoolFlag{Name: "stats", Usage: "Print parse statistics to stderr"},
		},
		Action: func(c *cli.Context) error {
			text, err := readInput(c)
			if err != nil {
				return err
			}

			cards, stats := parser.ParseWithStats(text)
			if c.Bool("stats") {
				fmt.Fprintln(c.App.ErrWriter, formatStats(stats, len(cards)))
			}
			if len(cards) == 0 {
				return errNoFlashcards
			}

			path := c.String("output")
			format := c.String("format")
			if format == "" {
				format = string(export.FormatText)
				if path == "" {
					format = defaultFormat(c.App.Writer)
				}
			}
			if err := checkFormat(format); err != nil {
				return err
			}

			if path == "" {
				return writeCards(c.App.Writer, format, cards)
			}
			return writeFile(path, format, cards)
		},
	}
}

// versionCmd creates the version command.
func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the ankify version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "ankify %s\n", Version)
			return nil
		},
	}
}

func readInput(c *cli.Context) (string, error) {
	if c.NArg() > 1 {
		return "", fmt.Errorf("expected at most one FILE argument, got %d", c.NArg())
	}

	if path := c.Args().First(); path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func isTable(format string) bool {
	return strings.EqualFold(strings.TrimSpace(format), formatTable)
}

// checkFormat rejects unknown formats before any output is opened.
func checkFormat(format string) error {
	if isTable(format) {
		return nil
	}
	_, err := export.ParseFormat(format)
	return err
}

func writeFile(path, format string, cards []domain.Flashcard) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeCards(f, format, cards); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func writeCards(w io.Writer, format string, cards []domain.Flashcard) error {
	if isTable(format) {
		_, err := fmt.Fprintln(w, renderCards(cards))
		return err
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if err := export.Write(w, f, cards); err != nil {
		return err
	}
	if f == export.FormatText {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// defaultFormat picks the table view for terminals and plain text for pipes
// and files.
func defaultFormat(w io.Writer) string {
	if isTerminal(w) {
		return formatTable
	}
	return string(export.FormatText)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatStats(stats parser.Stats, cardCount int) string {
	rules := make([]string, 0, len(stats.Matched))
	for name := range stats.Matched {
		rules = append(rules, name)
	}
	sort.Strings(rules)

	matched := make([]string, 0, len(rules))
	for _, name := range rules {
		matched = append(matched, fmt.Sprintf("%s=%d", name, stats.Matched[name]))
	}

	fallback := stats.Fallback
	if fallback == parser.FallbackNone {
		fallback = "none"
	}

	return fmt.Sprintf("lines: %d, matched: [%s], dropped: %d, fallback: %s, cards: %d",
		stats.Lines, strings.Join(matched, " "), stats.Dropped, fallback, cardCount)
}
