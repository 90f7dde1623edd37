// Package redact strips credentials and infrastructure details from error
// text before it is logged. Terminal users send their exchange secrets in
// plain text, and driver errors can echo connection strings or the offending
// row values back, so every error that reaches a log line passes through here.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
	RedactedValuePlaceholder      = "[REDACTED_VALUE]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order: connection strings first, statements before the
// password rule.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql|database)://[^@\s]+@`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[\s\w,*()$.]+\b(FROM|INTO|SET|TABLE)\b[\s\w,*()$=.'"]*`), RedactedSQLPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]+['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(mexc[_-]?api[_-]?(key|secret)|api[_-]?(key|secret)|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{4,}`), RedactedKeyPlaceholder},
	// pgconn detail lines such as `Key (login)=(alice) already exists.`
	{regexp.MustCompile(`Key \([^)]*\)=\([^)]*\)`), RedactedValuePlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}:\d{1,5}\b`), RedactedHostPlaceholder},
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}:\d{1,5}\b`), RedactedHostPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
