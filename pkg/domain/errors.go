package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessSpawn matches every ProcessSpawnError via errors.Is.
	ErrProcessSpawn = errors.New("worker process could not be started")
	// ErrExchange matches every ExchangeError via errors.Is.
	ErrExchange = errors.New("worker exchange failed")
	// ErrResponseDecode matches every ResponseDecodeError via errors.Is.
	ErrResponseDecode = errors.New("malformed worker response")
)

// ProcessSpawnError is returned when the worker cannot be started or restarted.
type ProcessSpawnError struct {
	Executable string
	Err        error
}

func (e *ProcessSpawnError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Executable, e.Err)
}

func (e *ProcessSpawnError) Unwrap() []error {
	return []error{ErrProcessSpawn, e.Err}
}

// ExchangeError is returned when writing the request or reading the response fails.
type ExchangeError struct {
	Op  string // "write" or "read"
	PID int
	Err error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("worker %d: %s failed: %v", e.PID, e.Op, e.Err)
}

func (e *ExchangeError) Unwrap() []error {
	return []error{ErrExchange, e.Err}
}

// ResponseDecodeError describes a response line that is not a token array.
// The facade recovers from it with an empty result.
type ResponseDecodeError struct {
	Line string
	Err  error
}

func (e *ResponseDecodeError) Error() string {
	line := e.Line
	if len(line) > 64 {
		line = line[:64] + "..."
	}
	return fmt.Sprintf("malformed worker response %q: %v", line, e.Err)
}

func (e *ResponseDecodeError) Unwrap() []error {
	return []error{ErrResponseDecode, e.Err}
}
