// pkg/eos_err/util.go

package eos_err

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var debugMode atomic.Bool

// SetDebugMode toggles verbose error output (stack traces via %+v).
func SetDebugMode(enabled bool) {
	debugMode.Store(enabled)
}

// DebugEnabled reports whether debug mode is on.
func DebugEnabled() bool {
	return debugMode.Load()
}

// UserError marks an error the user can fix (bad flag, bad input) as opposed
// to a failure of credgen or its environment.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}

// NewExpectedError wraps err as a UserError and logs it at warn level.
func NewExpectedError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	otelzap.Ctx(ctx).Warn("Expected user error", zap.Error(err))
	return &UserError{cause: err}
}

// IsExpectedUserError reports whether err wraps a UserError.
func IsExpectedUserError(err error) bool {
	var userErr *UserError
	return errors.As(err, &userErr)
}

// PrintError writes a user-facing summary of err to stderr. User errors are
// printed as a notice; everything else as an error.
func PrintError(ctx context.Context, userMessage string, err error) {
	if err == nil {
		return
	}

	if IsExpectedUserError(err) {
		otelzap.Ctx(ctx).Warn(userMessage, zap.Error(err))
		fmt.Fprintf(os.Stderr, "Notice: %s: %v\n", userMessage, err)
		return
	}

	otelzap.Ctx(ctx).Error(userMessage, zap.Error(err))
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, "Error: %s: %+v\n", userMessage, err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", userMessage, err)
}
