// cmd/self/telemetry.go

package self

import (
	"fmt"

	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/telemetry/telemetry_management"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var TelemetryCmd = &cobra.Command{
	Use:   "telemetry [on|off|status]",
	Short: "Manage credgen telemetry collection",
	Long: `Manage local telemetry collection for credgen usage statistics.

Telemetry data is stored locally in JSONL format and can be analyzed
to understand usage patterns. No data is sent to external servers.
Generated passwords and checked values are never recorded.

Commands:
  on     - Enable telemetry collection
  off    - Disable telemetry collection
  status - Show telemetry status and statistics`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off", "status"},
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		action := args[0]

		switch action {
		case "on":
			return telemetry_management.Enable(rc)
		case "off":
			return telemetry_management.Disable(rc)
		case "status":
			return telemetry_management.ShowTelemetryStatus(rc)
		default:
			otelzap.Ctx(rc.Ctx).Warn("Invalid telemetry argument", zap.String("arg", action))
			return eos_err.NewValidationError(fmt.Sprintf("unknown telemetry action %q", action), nil,
				"usage: credgen self telemetry [on|off|status]")
		}
	}),
}

func init() {
	SelfCmd.AddCommand(TelemetryCmd)
}
