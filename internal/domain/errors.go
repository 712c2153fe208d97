package domain

import (
	"context"
	"errors"
)

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the movie database could not be reached
	ErrNetwork = errors.New("movie database is unreachable")

	// ErrMalformedResponse indicates the movie database returned a payload we could not understand
	ErrMalformedResponse = errors.New("unexpected response from movie database")

	// ErrMovieNotFound indicates the requested identifier does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrInvalidAPIKey indicates the API key was rejected
	ErrInvalidAPIKey = errors.New("API key is invalid")

	// ErrRequestLimit indicates the API key has used up its daily quota
	ErrRequestLimit = errors.New("request limit reached")

	// ErrPersistence indicates local storage could not be read or written
	ErrPersistence = errors.New("local storage failure")

	// ErrEmptyQuery indicates a search was requested without any text
	ErrEmptyQuery = errors.New("search query is empty")
)

// ErrorKind groups errors by how the UI reacts to them
type ErrorKind int

const (
	ErrorKindNone ErrorKind = iota
	ErrorKindNetwork
	ErrorKindRejected
	ErrorKindMalformed
	ErrorKindPersistence
	ErrorKindOther
)

// ClassifyError maps an error onto the kind the UI cares about
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorKindNone
	case errors.Is(err, ErrNetwork),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return ErrorKindNetwork
	case errors.Is(err, ErrInvalidAPIKey), errors.Is(err, ErrRequestLimit):
		return ErrorKindRejected
	case errors.Is(err, ErrMalformedResponse):
		return ErrorKindMalformed
	case errors.Is(err, ErrPersistence):
		return ErrorKindPersistence
	default:
		return ErrorKindOther
	}
}

// Retryable reports whether repeating the same request could succeed.
// Rejected keys and malformed payloads fail the same way every time.
func (k ErrorKind) Retryable() bool {
	return k == ErrorKindNetwork
}
