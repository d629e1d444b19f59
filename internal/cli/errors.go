package cli

import (
	"errors"
	"strings"
)

// usageError is a bad invocation (exit 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(msg string) error { return usageError{msg: msg} }

// reportedError means the failure was already printed as a status line
// (exit 1, nothing more to print).
type reportedError struct{ msg string }

func (e reportedError) Error() string { return e.msg }

// exitCode maps an Execute error to 0 ok, 1 error, 2 usage.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	if strings.HasPrefix(err.Error(), "unknown command") || strings.HasPrefix(err.Error(), "unknown flag") {
		return 2
	}
	return 1
}
