// Package validate holds field-scoped validation shared by the event
// and registration forms.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
)

// plainText matches letters, digits and spaces only. Applied to event
// names and to the free-text registration fields.
var plainText = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)

// PlainText reports whether s contains only letters, numbers and
// spaces (and is non-empty).
func PlainText(s string) bool {
	return plainText.MatchString(s)
}

// Email reports whether s is a syntactically valid address.
func Email(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// FieldErrors maps a field name to its validation message. It is the
// recoverable, field-scoped error class; anything else is treated as a
// system error and surfaced generically.
type FieldErrors map[string]string

// Add records a message for a field, keeping the first message when a
// field fails more than one check.
func (fe FieldErrors) Add(field, message string) {
	if _, ok := fe[field]; !ok {
		fe[field] = message
	}
}

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// AsFieldErrors returns the FieldErrors inside err, if any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	fe, ok := err.(FieldErrors)
	return fe, ok
}
