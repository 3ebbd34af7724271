package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-success HTTP response from the banking API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorFromResponse drains the body looking for the server's message field;
// the service reports errors as {"message": ...}, older endpoints as
// {"error": ...}.
func errorFromResponse(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: "request failed"}
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Err != "":
			apiErr.Message = body.Err
		}
	}
	return apiErr
}
