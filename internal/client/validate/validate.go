// Package validate holds the local pre-flight checks; a failed check never
// reaches the network layer.
package validate

import (
	"regexp"
	"strings"
)

// Error is a client-side validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Field + ": " + e.Message }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(email string) error {
	if !emailRe.MatchString(email) {
		return &Error{Field: "email", Message: "please enter a valid email address"}
	}
	return nil
}

func Password(password string) error {
	if len(password) < 6 {
		return &Error{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}

// Amount accepts strictly positive transaction amounts.
func Amount(amount float64) error {
	if amount <= 0 {
		return &Error{Field: "amount", Message: "please enter a valid amount"}
	}
	return nil
}

func DisplayName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return &Error{Field: "displayName", Message: "name must be at least 2 characters"}
	}
	return nil
}
