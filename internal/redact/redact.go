// Package redact scrubs secrets from strings before they reach the logs.
// Errors from the Gemini client echo request URLs carrying the API key,
// transcript API failures can echo the bearer token, and pgx errors can
// carry the connection string or the failing statement.
package redact

import "regexp"

// Placeholders substituted for redacted text.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules run in order. Credential rules come first so later rules never see
// a raw secret.
var rules = []rule{
	// userinfo in database URLs
	{
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?)://[^@\s/]+@`),
		"${1}://" + RedactedCredentialPlaceholder + "@",
	},
	// Google API keys, as sent to Gemini
	{regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`), RedactedKeyPlaceholder},
	{
		regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9._~+/=-]{8,}`),
		"${1}" + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)([?&](?:key|api_key)=)[^&\s"]+`),
		"${1}" + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|password)(\s*[=:]\s*)['"]?[^'"&\s]{8,}['"]?`),
		"${1}${2}" + RedactionPlaceholder,
	},

	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackPlaceholder},

	// Statements echoed by the driver. Keywords are matched upper case only
	// so log messages like "failed to delete flashcard set" survive.
	{
		regexp.MustCompile(`\b(?:SELECT|INSERT|UPDATE|DELETE)\b[^;\n]*?\b(?:FROM|INTO|SET)\b[^;\n]*`),
		RedactedSQLPlaceholder,
	},

	// Absolute file paths, but not the path part of a URL.
	{regexp.MustCompile(`(^|[\s"'=(])(?:/[\w.-]+){2,}`), "${1}" + RedactedPathPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
