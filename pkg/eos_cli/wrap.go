// pkg/eos_cli/wrap.go

package eos_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunFunc is the signature of a wrapped command body.
type RunFunc func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, telemetry, logging, and signal handling
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if logger.L() == nil {
			logger.InitFallback()
		}

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		signals := NewSignalHandler(parent)
		defer signals.Stop()

		ctx := eos_io.NewContext(signals.Context(), commandName(cmd))
		defer ctx.End(&err)
		defer func() {
			if cerr.HasAssertionFailure(err) {
				err = eos_err.NewInternalError("credgen panicked", err)
			}
		}()
		defer ctx.HandlePanic(&err)

		ctx.Log.Debug("Running command", zap.Int("arg_count", len(args)))

		err = fn(ctx, cmd, args)
		if err != nil && signals.Interrupted() {
			return eos_err.NewUserCancelledError(cmd.CommandPath())
		}
		if err != nil && !eos_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}

// commandName turns "credgen create password" into "create-password".
func commandName(cmd *cobra.Command) string {
	name := cmd.Name()
	for p := cmd.Parent(); p != nil && p.HasParent(); p = p.Parent() {
		name = p.Name() + "-" + name
	}
	return name
}
