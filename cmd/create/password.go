// cmd/create/password.go
package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var CreatePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Generate random passwords that contain no markup lead-ins",
	Long: `Generate random passwords over digits, letters and 25 punctuation symbols.

Each password has at least --non-alphanumeric punctuation characters and never
contains "<" followed by a letter, "!", "/" or "?", nor "&#".

Settings can also come from CREDGEN_* environment variables (for example
CREDGEN_LENGTH=24), a .env file in the working directory, or the YAML config
file. Flags win over all of them.`,
	Example: `  credgen create password
  credgen create password --length 32 --non-alphanumeric 6
  credgen create password -c 5 --format json`,
	Args: cobra.NoArgs,
	RunE: eos.Wrap(runCreatePassword),
}

func init() {
	CreateCmd.AddCommand(CreatePasswordCmd)

	cli.AddIntFlag(CreatePasswordCmd, config.KeyLength, "l", shared.DefaultPasswordLength, "Password length (1-128)")
	cli.AddIntFlag(CreatePasswordCmd, config.KeyNonAlphanumeric, "n", shared.DefaultNonAlphanumeric, "Minimum number of punctuation characters (0-length)")
	cli.AddIntFlag(CreatePasswordCmd, config.KeyCount, "c", shared.DefaultPasswordCount, fmt.Sprintf("Number of passwords to generate (1-%d)", shared.MaxPasswordCount))
	cli.AddIntFlag(CreatePasswordCmd, config.KeyMaxAttempts, "", shared.DefaultMaxAttempts, "Give up after this many rejected candidates per password (0 = never)")
	cli.AddStringFlag(CreatePasswordCmd, config.KeyQuotaSource, "", shared.DefaultQuotaSource, "Randomness for punctuation patching: crypto or math", false)
	cli.AddStringFlag(CreatePasswordCmd, config.KeyFormat, "", shared.DefaultOutputFormat, "Output format: text, json or yaml", false)
}

// passwordReport is the json/yaml document written by `create password`.
type passwordReport struct {
	Passwords       []string  `json:"passwords" yaml:"passwords"`
	Length          int       `json:"length" yaml:"length"`
	NonAlphanumeric int       `json:"non_alphanumeric" yaml:"non_alphanumeric"`
	QuotaSource     string    `json:"quota_source" yaml:"quota_source"`
	GeneratedAt     time.Time `json:"generated_at" yaml:"generated_at"`
}

func runCreatePassword(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	logger := otelzap.Ctx(rc.Ctx)

	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadPassword(rc.Ctx, cmd, configPath)
	if err != nil {
		if eos_err.GetCategory(err) == eos_err.CategoryValidation {
			return err
		}
		return eos_err.NewValidationError("failed to load settings", err,
			"Check the --config file and CREDGEN_* environment variables")
	}

	rc.Attributes["format"] = settings.Format
	rc.Attributes["count"] = fmt.Sprint(settings.Count)

	logger.Debug("Generating passwords",
		zap.Int("length", settings.Length),
		zap.Int("non_alphanumeric", settings.NonAlphanumeric),
		zap.Int("count", settings.Count),
		zap.Int("max_attempts", settings.MaxAttempts),
		zap.String("quota_source", settings.QuotaSource))

	passwords, err := generateBatch(rc.Ctx, crypto.NewGenerator(), settings)
	if err != nil {
		return classifyGenerateError(err)
	}

	logger.Debug("Passwords generated", zap.Int("count", len(passwords)))
	return writePasswords(rc, cmd.OutOrStdout(), settings, passwords)
}

func generateBatch(ctx context.Context, g *crypto.Generator, settings *config.Password) ([]string, error) {
	opts := settings.Options()
	passwords := make([]string, 0, settings.Count)
	for i := 0; i < settings.Count; i++ {
		pw, err := g.Generate(ctx, opts)
		if err != nil {
			return nil, err
		}
		passwords = append(passwords, pw)
	}
	return passwords, nil
}

func classifyGenerateError(err error) error {
	var argErr *crypto.ArgumentError
	switch {
	case errors.As(err, &argErr):
		return eos_err.NewValidationError("invalid password options", err,
			fmt.Sprintf("--%s must be between %d and %d", flagForParam(argErr.Param), argErr.Min, argErr.Max))
	case errors.Is(err, crypto.ErrInvalidArgument):
		return eos_err.NewValidationError("invalid password options", err)
	case errors.Is(err, crypto.ErrExhaustedRetries):
		return eos_err.NewSystemError("no safe password found within the attempt limit", err,
			"Raise --max-attempts, or set it to 0 for no limit")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return eos_err.NewSystemError("password generation failed", err,
			"Check that the system random source is available")
	}
}

func flagForParam(param string) string {
	switch param {
	case crypto.ParamLength:
		return config.KeyLength
	case crypto.ParamNonAlphanumeric:
		return config.KeyNonAlphanumeric
	case crypto.ParamMaxAttempts:
		return config.KeyMaxAttempts
	default:
		return param
	}
}

func writePasswords(rc *eos_io.RuntimeContext, out io.Writer, settings *config.Password, passwords []string) error {
	switch settings.Format {
	case "json", "yaml":
		report := passwordReport{
			Passwords:       passwords,
			Length:          settings.Length,
			NonAlphanumeric: settings.NonAlphanumeric,
			QuotaSource:     settings.QuotaSource,
			GeneratedAt:     time.Now().UTC(),
		}
		if settings.Format == "yaml" {
			return eos_io.WriteYAML(rc.Ctx, out, report)
		}
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		for _, pw := range passwords {
			rc.Log.Info("terminal prompt: " + pw)
		}
		return nil
	}
}
