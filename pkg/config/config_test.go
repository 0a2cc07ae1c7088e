package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passwordCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "password"}
	cli.AddIntFlag(cmd, KeyLength, "l", shared.DefaultPasswordLength, "")
	cli.AddIntFlag(cmd, KeyNonAlphanumeric, "n", shared.DefaultNonAlphanumeric, "")
	cli.AddIntFlag(cmd, KeyCount, "c", shared.DefaultPasswordCount, "")
	cli.AddIntFlag(cmd, KeyMaxAttempts, "", shared.DefaultMaxAttempts, "")
	cli.AddStringFlag(cmd, KeyQuotaSource, "", shared.DefaultQuotaSource, "", false)
	cli.AddStringFlag(cmd, KeyFormat, "", shared.DefaultOutputFormat, "", false)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoadPassword_Defaults(t *testing.T) {
	isolate(t)

	p, err := LoadPassword(context.Background(), passwordCmd(t), "")
	require.NoError(t, err)

	assert.Equal(t, &Password{
		Length:          16,
		NonAlphanumeric: 2,
		Count:           1,
		MaxAttempts:     0,
		QuotaSource:     "crypto",
		Format:          "text",
	}, p)
}

func TestLoadPassword_Flags(t *testing.T) {
	isolate(t)

	p, err := LoadPassword(context.Background(),
		passwordCmd(t, "-l", "32", "-n", "5", "-c", "3", "--format", "json", "--quota-source", "math"), "")
	require.NoError(t, err)

	assert.Equal(t, 32, p.Length)
	assert.Equal(t, 5, p.NonAlphanumeric)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, "json", p.Format)

	opts := p.Options()
	assert.Equal(t, crypto.PasswordOptions{Length: 32, MinPunctuation: 5, QuotaSource: crypto.QuotaSourceMath}, opts)
}

func TestLoadPassword_Precedence(t *testing.T) {
	dir := isolate(t)

	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("length: 40\nnon-alphanumeric: 6\nformat: yaml\n"), 0o600))
	t.Setenv("CREDGEN_NON_ALPHANUMERIC", "8")

	p, err := LoadPassword(context.Background(), passwordCmd(t, "--format", "text"), cfg)
	require.NoError(t, err)

	assert.Equal(t, 40, p.Length, "config file beats default")
	assert.Equal(t, 8, p.NonAlphanumeric, "env beats config file")
	assert.Equal(t, "text", p.Format, "flag beats config file")
}

func TestLoadPassword_DefaultConfigFile(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, shared.CredgenID, shared.DefaultConfigFilename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("count: 4\n"), 0o600))

	p, err := LoadPassword(context.Background(), passwordCmd(t), "")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Count)
}

func TestLoadPassword_MissingExplicitConfig(t *testing.T) {
	dir := isolate(t)

	_, err := LoadPassword(context.Background(), passwordCmd(t), filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPassword_Invalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"length_zero", []string{"-l", "0"}, "Length"},
		{"length_too_long", []string{"-l", "129"}, "Length"},
		{"count_zero", []string{"-c", "0"}, "Count"},
		{"count_too_many", []string{"-c", "1001"}, "Count"},
		{"bad_format", []string{"--format", "xml"}, "Format"},
		{"bad_quota_source", []string{"--quota-source", "dice"}, "QuotaSource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPassword(context.Background(), passwordCmd(t, tt.args...), "")
			require.Error(t, err)
			assert.Equal(t, 2, eos_err.GetExitCode(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadPassword_QuotaAboveLengthPassesSettings(t *testing.T) {
	isolate(t)

	// The generator reports this with its own argument error.
	p, err := LoadPassword(context.Background(), passwordCmd(t, "-l", "4", "-n", "9"), "")
	require.NoError(t, err)
	assert.ErrorIs(t, p.Options().Validate(), crypto.ErrInvalidArgument)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CREDGEN_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("CREDGEN_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CREDGEN_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(context.Background(), path))
	assert.Equal(t, "from-file", os.Getenv("CREDGEN_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(context.Background(), filepath.Join(dir, "missing.env")))
}

func TestValidate_Remediation(t *testing.T) {
	err := Validate(&Password{Length: 200, Count: 1, QuotaSource: "crypto", Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--length must be at most 128 (got 200)")
	assert.Contains(t, cerr.FlattenHints(err), "--length must be at most 128 (got 200)")
	assert.Equal(t, 2, eos_err.GetExitCode(err))
}
