package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/config"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// runPassword executes CreatePasswordCmd with fresh flag state and returns
// what it wrote to stdout and through the terminal channel.
func runPassword(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var terminal bytes.Buffer
	prev := logger.L()
	logger.SetLogger(logger.NewConsoleLogger(&terminal, io.Discard, zapcore.InfoLevel))
	t.Cleanup(func() {
		if prev != nil {
			logger.SetLogger(prev)
		}
	})

	cmd := CreatePasswordCmd
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })

	err := cmd.RunE(cmd, cmd.Flags().Args())
	return terminal.String() + out.String(), err
}

func TestCreatePassword_Text(t *testing.T) {
	out, err := runPassword(t, "-l", "24", "-n", "4", "-c", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, pw := range lines {
		assert.Len(t, pw, 24)
		dangerous, _ := crypto.IsDangerousString(pw)
		assert.False(t, dangerous)
	}
}

func TestCreatePassword_JSON(t *testing.T) {
	out, err := runPassword(t, "--length", "12", "--non-alphanumeric", "12", "--count", "2", "--format", "json")
	require.NoError(t, err)

	var report passwordReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Passwords, 2)
	assert.Equal(t, 12, report.Length)
	assert.Equal(t, 12, report.NonAlphanumeric)
	assert.Equal(t, "crypto", report.QuotaSource)
	for _, pw := range report.Passwords {
		assert.Len(t, pw, 12)
		for i := 0; i < len(pw); i++ {
			assert.Equal(t, crypto.ClassPunctuation, crypto.SymbolClassOf(pw[i]))
		}
	}
}

func TestCreatePassword_YAML(t *testing.T) {
	out, err := runPassword(t, "-l", "8", "-n", "0", "--format", "yaml", "--quota-source", "math")
	require.NoError(t, err)

	var report passwordReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	require.Len(t, report.Passwords, 1)
	assert.Len(t, report.Passwords[0], 8)
	assert.Equal(t, "math", report.QuotaSource)
}

func TestCreatePassword_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"length_zero", []string{"-l", "0"}},
		{"length_too_long", []string{"-l", "129"}},
		{"quota_above_length", []string{"-l", "10", "-n", "11"}},
		{"negative_quota", []string{"-l", "10", "--non-alphanumeric=-1"}},
		{"negative_max_attempts", []string{"--max-attempts=-1"}},
		{"bad_format", []string{"--format", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runPassword(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, 2, eos_err.GetExitCode(err))
		})
	}
}

func TestClassifyGenerateError(t *testing.T) {
	_, argErr := crypto.NewGenerator().Generate(context.Background(), crypto.PasswordOptions{Length: 10, MinPunctuation: 11})
	require.Error(t, argErr)

	err := classifyGenerateError(argErr)
	assert.Equal(t, 2, eos_err.GetExitCode(err))
	assert.Contains(t, err.Error(), "--non-alphanumeric must be between 0 and 10")

	err = classifyGenerateError(crypto.ErrExhaustedRetries)
	assert.Equal(t, 1, eos_err.GetExitCode(err))
	assert.Contains(t, err.Error(), "--max-attempts")

	assert.ErrorIs(t, classifyGenerateError(context.Canceled), context.Canceled)
	assert.Equal(t, 1, eos_err.GetExitCode(classifyGenerateError(errors.New("entropy"))))
}

func TestGenerateBatch_StopsOnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generateBatch(ctx, crypto.NewGenerator(), &config.Password{Length: 8, Count: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateCmdRegistersPassword(t *testing.T) {
	found, _, err := CreateCmd.Find([]string{"password"})
	require.NoError(t, err)
	assert.Same(t, CreatePasswordCmd, found)
}
