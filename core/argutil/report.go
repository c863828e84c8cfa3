package argutil

import (
	"errors"
)

// Exit statuses returned by builtins.
const (
	ExecutionSuccess = 0
	ExecutionFailure = 1
	// ExUsage is returned when a builtin was invoked with the wrong shape of
	// arguments.
	ExUsage = 2
)

// Reporter is the diagnostic channel of the command that is parsing its
// arguments.
type Reporter interface {
	// Usage shows the command's correct usage.
	Usage()
	// Warnf writes a single diagnostic line.
	Warnf(format string, a ...interface{})
}

// Discard is a Reporter that drops everything.
var Discard Reporter = discard{}

type discard struct{}

func (discard) Usage()                        {}
func (discard) Warnf(string, ...interface{}) {}

var (
	// ErrUsage matches every error after which the usage message was shown.
	ErrUsage = errors.New("usage error")

	// ErrExecutionFailure is returned when the environment, rather than the
	// user, caused the failure.
	ErrExecutionFailure = errors.New("execution failure")
)

// UsageError wraps an error that was reported to the user together with the
// command's usage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Is reports true for ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

func usage(r Reporter, err error) error {
	r.Usage()
	return &UsageError{Err: err}
}

// Status maps an error returned by this package to a builtin exit status.
func Status(err error) int {
	switch {
	case err == nil:
		return ExecutionSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, ErrHelp):
		return ExUsage
	default:
		return ExecutionFailure
	}
}
