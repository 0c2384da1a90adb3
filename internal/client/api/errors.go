package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no response was received at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized matches APIError responses with status 401 via
	// errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the API. Message is always safe to
// show to the user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match authorization failures.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
