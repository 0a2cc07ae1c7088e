/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/credgen/cmd/check"
	"github.com/CodeMonkeyCybersecurity/credgen/cmd/create"
	"github.com/CodeMonkeyCybersecurity/credgen/cmd/self"

	// Internal packages
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
)

var debugFlag bool

// RootCmd is the base command for credgen.
var RootCmd = &cobra.Command{
	Use:   "credgen",
	Short: "Generate random passwords and screen strings for markup lead-ins",
	Long: `credgen generates random passwords over an 87-symbol alphabet with a
minimum number of punctuation characters, and rejects any candidate that
contains a markup or script lead-in such as "<a" or "&#".

It can also check an arbitrary string with the same detector.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		eos_err.SetDebugMode(debugFlag)
	},
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Info("terminal prompt: No subcommand provided. Try `credgen help`.")
		return cmd.Help()
	}),
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	Long:  "Displays help for credgen or a specific subcommand.",
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return eos_err.NewExpectedError(rc.Ctx, fmt.Errorf("command not found: %s", strings.Join(args, " ")))
		}
		return c.Help()
	}),
}

// VersionCmd prints the build version.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the credgen version",
	Args:  cobra.NoArgs,
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Info("terminal prompt: " + shared.CredgenID + " " + shared.Version)
		return nil
	}),
}

var registered bool

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	if registered {
		return
	}
	registered = true

	RootCmd.SetHelpCommand(HelpCmd)
	RootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return eos_err.NewValidationError("invalid flag", err,
			"Run '"+c.CommandPath()+" --help' for usage")
	})
	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print full error details, including stack traces")
	RootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/credgen/config.yaml)")

	for _, subCmd := range []*cobra.Command{
		create.CreateCmd,
		check.CheckCmd,
		self.SelfCmd,
		VersionCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command, returning the process exit code.
func Execute() int {
	defer func() {
		shared.SafeSync()
	}()

	if err := telemetry.Init(shared.CredgenID); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			logger.L().Warn("Failed to flush telemetry", zap.Error(err))
		}
	}()

	RegisterCommands()

	var err error
	done := logger.LogCommandLifecycle(commandPath(os.Args[1:]))
	defer done(&err)

	err = RootCmd.Execute()
	if err != nil {
		eos_err.PrintError(context.Background(), "credgen", err)
	}
	return eos_err.GetExitCode(err)
}

// commandPath returns the subcommand names from args, stopping at the first
// flag or positional value so checked strings are never logged.
func commandPath(args []string) string {
	path := []string{shared.CredgenID}
	cmd := RootCmd
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		next, _, err := cmd.Find([]string{a})
		if err != nil || next == cmd {
			break
		}
		path = append(path, next.Name())
		cmd = next
	}
	return strings.Join(path, " ")
}
