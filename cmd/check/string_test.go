package check

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func runCheck(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()

	var terminal bytes.Buffer
	prev := logger.L()
	logger.SetLogger(logger.NewConsoleLogger(&terminal, io.Discard, zapcore.InfoLevel))
	t.Cleanup(func() {
		if prev != nil {
			logger.SetLogger(prev)
		}
	})

	checkStringFormat = format
	t.Cleanup(func() { checkStringFormat = "text" })

	var out bytes.Buffer
	CheckStringCmd.SetOut(&out)
	t.Cleanup(func() { CheckStringCmd.SetOut(nil) })

	err := CheckStringCmd.RunE(CheckStringCmd, args)
	return terminal.String() + out.String(), err
}

func TestCheckString_Text(t *testing.T) {
	tests := []struct {
		value     string
		want      string
		dangerous bool
	}{
		{"plain text", "safe\n", false},
		{"a<", "safe\n", false},
		{"a&b", "safe\n", false},
		{"a<b", "dangerous: \"<b\" at index 1\n", true},
		{"x&#121;", "dangerous: \"&#\" at index 1\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			out, err := runCheck(t, "text", tt.value)
			assert.Equal(t, tt.want, out)
			if tt.dangerous {
				require.Error(t, err)
				assert.Equal(t, 2, eos_err.GetExitCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckString_JSON(t *testing.T) {
	out, err := runCheck(t, "json", "<!-- x")
	require.Error(t, err)

	var got crypto.DangerCheck
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, crypto.DangerCheck{Dangerous: true, Index: 0, Pattern: "<!"}, got)
}

func TestCheckString_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("a</b\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	prev := stdinSource
	stdinSource = r
	t.Cleanup(func() {
		stdinSource = prev
		_ = r.Close()
	})

	out, err := runCheck(t, "json")
	require.Error(t, err)

	var got crypto.DangerCheck
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Dangerous)
	assert.Equal(t, 1, got.Index)
}

func TestCheckString_BadFormat(t *testing.T) {
	_, err := runCheck(t, "xml", "abc")
	require.Error(t, err)
	assert.Equal(t, 2, eos_err.GetExitCode(err))
}
