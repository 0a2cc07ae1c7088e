// pkg/xdg/xdg_test.go
package xdg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXDGPathsHonourEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))

	assert.Equal(t, filepath.Join(dir, "config", "credgen", "config.yaml"), XDGConfigPath("credgen", "config.yaml"))
	assert.Equal(t, filepath.Join(dir, "state", "credgen", "credgen.log"), XDGStatePath("credgen", "credgen.log"))
}

func TestXDGPathsFallBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")

	assert.Equal(t, filepath.Join(home, ".config", "app", "f"), XDGConfigPath("app", "f"))
	assert.Equal(t, filepath.Join(home, ".local", "state", "app", "f"), XDGStatePath("app", "f"))
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("CREDGEN_XDG_TEST", "")
	assert.Equal(t, "fallback", GetEnvOrDefault("CREDGEN_XDG_TEST", "fallback"))

	t.Setenv("CREDGEN_XDG_TEST", "set")
	assert.Equal(t, "set", GetEnvOrDefault("CREDGEN_XDG_TEST", "fallback"))
}

func TestEnsureDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "file.log")
	require.NoError(t, EnsureDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
