package eos_err

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Helper function to capture stderr output
func captureStderr(fn func()) string {
	originalStderr := os.Stderr

	r, w, _ := os.Pipe()
	os.Stderr = w

	outputCh := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputCh <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stderr = originalStderr

	return <-outputCh
}

func TestPrintError(t *testing.T) {
	originalDebug := DebugEnabled()
	defer SetDebugMode(originalDebug)

	tests := []struct {
		name        string
		debugMode   bool
		userMessage string
		err         error
		contains    []string
		empty       bool
	}{
		{
			name:        "nil_error_no_output",
			userMessage: "operation completed",
			err:         nil,
			empty:       true,
		},
		{
			name:        "regular_error",
			userMessage: "password generation failed",
			err:         errors.New("entropy source closed"),
			contains:    []string{"Error: password generation failed", "entropy source closed"},
		},
		{
			name:        "user_error_is_notice",
			userMessage: "invalid flags",
			err:         &UserError{cause: errors.New("length must be between 1 and 128")},
			contains:    []string{"Notice: invalid flags", "length must be between 1 and 128"},
		},
		{
			name:        "debug_mode_regular_error",
			debugMode:   true,
			userMessage: "check failed",
			err:         errors.New("stdin closed"),
			contains:    []string{"Error: check failed", "stdin closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDebugMode(tt.debugMode)

			output := captureStderr(func() {
				PrintError(context.Background(), tt.userMessage, tt.err)
			})

			if tt.empty {
				assert.Empty(t, output)
				return
			}
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestDebugMode(t *testing.T) {
	originalDebug := DebugEnabled()
	defer SetDebugMode(originalDebug)

	SetDebugMode(true)
	assert.True(t, DebugEnabled())

	SetDebugMode(false)
	assert.False(t, DebugEnabled())
}
