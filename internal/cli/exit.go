package cli

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-edge-sync/internal/adapter"
)

// Exit codes of edgectl.
const (
	ExitSuccess     = 0
	ExitFailure     = 1 // unexpected error
	ExitUsage       = 2 // bad flags, arguments or a request the node rejected as invalid
	ExitUnavailable = 3 // node unreachable, offline or without its shared store
	ExitConflict    = 4 // cycle in progress, lease held or already resolved
	ExitNotFound    = 5
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err. Errors that are not an
// *ExitError exit with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// adapterError wraps an admin API error with the exit code of its class.
func adapterError(message string, err error) *ExitError {
	code := ExitFailure
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		code = ExitUsage
	case errors.Is(err, adapter.ErrOffline),
		errors.Is(err, adapter.ErrServiceUnavailable),
		errors.Is(err, adapter.ErrRequestFailed),
		errors.Is(err, adapter.ErrTooManyRequests):
		code = ExitUnavailable
	case errors.Is(err, adapter.ErrConflict):
		code = ExitConflict
	case errors.Is(err, adapter.ErrNotFound):
		code = ExitNotFound
	}
	return WrapExitError(code, message, err)
}
