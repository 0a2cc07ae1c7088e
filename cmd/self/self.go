// cmd/self/self.go

package self

import (
	"github.com/spf13/cobra"
)

// SelfCmd is the root command for self-management commands
var SelfCmd = &cobra.Command{
	Use:   "self",
	Short: "Self-management commands for credgen",
	Long:  `The self command manages credgen's own behaviour, such as local telemetry.`,
}
