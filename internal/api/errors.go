package api

import (
	"errors"
	"fmt"

	"github.com/abhisek/fitplan/internal/fitness"
)

// NetworkError means the backend could not be reached or the request did
// not complete.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Message is the text shown to the user.
func (e *NetworkError) Message() string {
	return "Could not reach the server. Check your connection and try again."
}

// ServerError means the backend answered but rejected the request or sent
// something unusable.
type ServerError struct {
	Op     string
	Status int
	// Msg comes from the response body when present, otherwise a generic
	// fallback for the operation.
	Msg string
	Err error
}

func (e *ServerError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: server returned %d: %s", e.Op, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *ServerError) Unwrap() error { return e.Err }

// Message is the text shown to the user.
func (e *ServerError) Message() string { return e.Msg }

// NotFoundError means the requested resource does not exist. For workout
// plans this is a normal state, not a failure.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// UserMessage returns the text to show for err, or fallback when err
// carries no user-facing message.
func UserMessage(err error, fallback string) string {
	var (
		ve *fitness.ValidationError
		se *ServerError
		ne *NetworkError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &se) && se.Msg != "":
		return se.Msg
	case errors.As(err, &ne):
		return ne.Message()
	}
	return fallback
}
