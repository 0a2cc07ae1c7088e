// cmd/create/create.go
package create

import (
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/cli"
	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/spf13/cobra"
)

// CreateCmd is the root command for create operations
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create credentials (e.g., passwords)",
	Long:  `The create command generates new credentials. Nothing is stored; results are printed.`,
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Warn("No subcommand specified for 'create'. Use a subcommand like 'password'.")
		return cli.ShowHelp(cmd)
	}),
}
