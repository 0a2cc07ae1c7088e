// cmd/check/string.go
package check

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var checkStringFormat string

// stdinSource is where the value is read from when no argument is given.
var stdinSource = os.Stdin

var CheckStringCmd = &cobra.Command{
	Use:   "string [value]",
	Short: "Report whether a string contains a markup or script lead-in",
	Long: `Report whether a string contains "<" followed by a letter, "!", "/" or "?",
or "&" followed by "#". These are the patterns credgen never emits in a password.

With no argument the value is read from stdin: one line, without echo when
stdin is a terminal. Exit status is 0 when the value is safe and 2 when it is
dangerous.`,
	Example: `  credgen check string 'a<b'
  printf '%s\n' "$VALUE" | credgen check string --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: eos.Wrap(runCheckString),
}

func init() {
	CheckCmd.AddCommand(CheckStringCmd)
	CheckStringCmd.Flags().StringVar(&checkStringFormat, "format", "text", "Output format: text or json")
}

func runCheckString(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if checkStringFormat != "text" && checkStringFormat != "json" {
		return eos_err.NewValidationError(fmt.Sprintf("unknown output format %q", checkStringFormat), nil,
			"Use --format text or --format json")
	}

	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		v, err := eos_io.ReadSecretValue(rc, stdinSource, "Value to check: ", "value")
		if err != nil {
			return eos_err.NewValidationError("failed to read value", err,
				"Pass the value as an argument or pipe it on stdin")
		}
		value = v
	}

	result := crypto.CheckString(value)
	rc.Attributes["dangerous"] = fmt.Sprint(result.Dangerous)
	logger.Debug("String checked",
		zap.Int("length", len(value)),
		zap.Bool("dangerous", result.Dangerous),
		zap.Int("index", result.Index))

	if checkStringFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else if result.Dangerous {
		rc.Log.Info(fmt.Sprintf("terminal prompt: dangerous: %q at index %d", result.Pattern, result.Index))
	} else {
		rc.Log.Info("terminal prompt: safe")
	}

	if result.Dangerous {
		return eos_err.NewValidationError("string is dangerous", nil)
	}
	return nil
}
