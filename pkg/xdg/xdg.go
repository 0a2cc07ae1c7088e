// pkg/xdg/xdg.go

package xdg

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
)

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

func XDGConfigPath(app, file string) string {
	base := GetEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(homeDir(), ".config"))
	return filepath.Join(base, app, file)
}

func XDGStatePath(app, file string) string {
	base := GetEnvOrDefault("XDG_STATE_HOME", filepath.Join(homeDir(), ".local", "state"))
	return filepath.Join(base, app, file)
}

// EnsureDir creates the parent directory of path, owner-only.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), shared.SecretDirPerm)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.TempDir()
}
