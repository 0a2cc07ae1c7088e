// pkg/shared/vars.go

package shared

import (
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X ...shared.Version=v1.2.3".
var Version = "dev"

// SafeSync flushes the global logger. Safe to call repeatedly.
func SafeSync() {
	// stdout/stderr sinks return EINVAL on Sync; nothing useful to do with it.
	_ = zap.L().Sync()
}
