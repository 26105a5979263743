package logging

import (
	"fmt"
	"regexp"
	"strings"
)

// redactedPlaceholder replaces masked values in log output.
const redactedPlaceholder = "***"

// defaultSensitiveKeys are attribute key names whose values are always
// masked, matching the applicant fields screeners commonly collect.
var defaultSensitiveKeys = []string{
	"ssn", "social_security_number",
	"income", "household_income", "monthly_income", "annual_income",
	"date_of_birth", "dob",
	"email", "phone", "address",
}

// valuePattern is a compiled regex with its replacement.
type valuePattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Redactor masks applicant data in log fields. Keys are matched by name
// (suffix match, so "applicant_income" masks like "income"); string values
// are additionally scanned for common PII shapes.
type Redactor struct {
	sensitiveKeys map[string]bool
	patterns      []valuePattern
}

// NewRedactor creates a redactor with the default key set plus any extra
// keys supplied by configuration.
func NewRedactor(extraKeys []string) *Redactor {
	r := &Redactor{
		sensitiveKeys: make(map[string]bool),
	}

	for _, k := range defaultSensitiveKeys {
		r.sensitiveKeys[k] = true
	}
	for _, k := range extraKeys {
		r.sensitiveKeys[strings.ToLower(k)] = true
	}

	r.patterns = []valuePattern{
		{
			name:        "ssn",
			regex:       regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			replacement: "***-**-****",
		},
		{
			name:        "email",
			regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
			replacement: redactedPlaceholder,
		},
		{
			name:        "phone",
			regex:       regexp.MustCompile(`\b\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
			replacement: redactedPlaceholder,
		},
	}

	return r
}

// SensitiveKey reports whether values logged under the given key are masked.
func (r *Redactor) SensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if r.sensitiveKeys[key] {
		return true
	}
	for k := range r.sensitiveKeys {
		if strings.HasSuffix(key, "_"+k) {
			return true
		}
	}
	return false
}

// RedactArgs redacts alternating key/value log arguments. Values under
// sensitive keys are replaced wholesale; other string values are scrubbed
// for PII shapes.
func (r *Redactor) RedactArgs(args ...any) []any {
	out := make([]any, len(args))
	copy(out, args)

	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if r.SensitiveKey(key) {
			out[i+1] = redactedPlaceholder
			continue
		}
		if s, ok := out[i+1].(string); ok {
			out[i+1] = r.RedactString(s)
		}
	}

	return out
}

// RedactString scrubs PII shapes from a string value.
func (r *Redactor) RedactString(s string) string {
	for _, p := range r.patterns {
		s = p.regex.ReplaceAllString(s, p.replacement)
	}
	return s
}

// RedactValue masks any value, stringifying non-strings first.
func (r *Redactor) RedactValue(v any) string {
	return r.RedactString(fmt.Sprint(v))
}
