package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable indicates the request never produced a response.
	ErrUnreachable = errors.New("solver: service unreachable")

	// ErrBadStatus indicates a non-2xx response.
	ErrBadStatus = errors.New("solver: unexpected status")

	// ErrMalformedResponse indicates a response that failed to parse or validate.
	ErrMalformedResponse = errors.New("solver: malformed response")

	// ErrUnknownAlgorithm indicates an unsupported maze generation algorithm.
	ErrUnknownAlgorithm = errors.New("solver: unknown algorithm")

	// ErrNotRecorded indicates a search on a grid that differs from a recording.
	ErrNotRecorded = errors.New("solver: no recorded trace for this grid")
)

// NetworkError describes a failed call to the solver service.
type NetworkError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
