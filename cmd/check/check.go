// cmd/check/check.go
package check

import (
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/cli"
	eos "github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_io"
	"github.com/spf13/cobra"
)

// CheckCmd represents the 'credgen check' command
var CheckCmd = &cobra.Command{
	Use:   "check [command]",
	Short: "Check values against credgen's safety rules",
	Long:  `Check values against the same rules credgen applies to generated passwords.`,
	RunE: eos.Wrap(func(rc *eos_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cli.ShowHelp(cmd)
	}),
}
