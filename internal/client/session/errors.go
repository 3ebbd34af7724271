package session

import (
	"errors"

	"github.com/anudeepmamidala/Banking-System/internal/client/api"
)

// AuthError is a credential or registration rejection by the remote
// service.
type AuthError struct {
	Status  int
	Message string
	err     error
}

func (e *AuthError) Error() string { return "auth: " + e.Message }

func (e *AuthError) Unwrap() error { return e.err }

// authError converts a request-wrapper failure into an AuthError, keeping
// the server's status and message when present.
func authError(fallback string, err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return &AuthError{Status: apiErr.Status, Message: apiErr.Message, err: err}
	}
	return &AuthError{Message: fallback, err: err}
}
