/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/xdg"
)

// DefaultLogPaths returns fallback log paths in order of priority for the platform.
func DefaultLogPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), shared.CredgenID, shared.CredgenLogFile),
			".\\" + shared.CredgenLogFile,
		}
	default:
		return []string{
			xdg.XDGStatePath(shared.CredgenID, shared.CredgenLogFile), // e.g., ~/.local/state/credgen/credgen.log
			shared.CredgenLogsPWD,
			shared.CredgenLogsTmp, // ephemeral
		}
	}
}
