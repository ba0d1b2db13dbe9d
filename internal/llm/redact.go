package llm

import "regexp"

// Best-effort PII scrub over rendered prompt text. The aggregation path only
// carries figures, so this is a safety net for anything that leaks in via
// labels or history, not a redaction guarantee. Must run after interpolation.
var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern   = regexp.MustCompile(`(\+91[\-\s]?)?\b[6-9]\d{9}\b`)
	addressPattern = regexp.MustCompile(`(?i)\b\d+\s+\w+\s+(street|road|avenue|lane|drive)\b`)
)

// Redact replaces email addresses, Indian-style mobile numbers and simple
// street addresses with placeholder tags.
func Redact(text string) string {
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	text = phonePattern.ReplaceAllString(text, "[PHONE]")
	text = addressPattern.ReplaceAllString(text, "[ADDRESS]")
	return text
}
