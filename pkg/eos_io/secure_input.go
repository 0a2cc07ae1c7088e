package eos_io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	// MaxInputLength defines the maximum allowed length for a value read from stdin
	MaxInputLength = 64 * 1024
)

// ErrNoInput is returned when stdin closes before any value is read.
var ErrNoInput = cerr.New("no input received")

// InputValidationError represents input validation errors
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Reason)
}

// ReadSecretValue reads one value from in. On a terminal the prompt is shown
// and the value is read without echo; otherwise a single line is read as-is.
// The value is never logged.
func ReadSecretValue(rc *RuntimeContext, in *os.File, prompt, fieldName string) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	if term.IsTerminal(int(in.Fd())) {
		logger.Debug("Reading value from terminal without echo", zap.String("field", fieldName))
		rc.Log.Info("terminal prompt: " + prompt)
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", cerr.Wrap(err, "failed to read value from terminal")
		}
		value := string(raw)
		if err := validateInputLength(value, fieldName); err != nil {
			return "", err
		}
		return value, nil
	}

	logger.Debug("Reading value from piped stdin", zap.String("field", fieldName))
	return ReadLine(in, fieldName)
}

// ReadLine reads a single line from r, dropping the trailing newline.
// Everything else, including leading and trailing spaces, is preserved.
func ReadLine(r io.Reader, fieldName string) (string, error) {
	br := bufio.NewReader(io.LimitReader(r, MaxInputLength+3))

	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", cerr.Wrap(err, "failed to read input")
	}
	if err == io.EOF && line == "" {
		return "", ErrNoInput
	}

	value := strings.TrimSuffix(line, "\n")
	value = strings.TrimSuffix(value, "\r")
	if err := validateInputLength(value, fieldName); err != nil {
		return "", err
	}
	return value, nil
}

func validateInputLength(input, fieldName string) error {
	if len(input) > MaxInputLength {
		return &InputValidationError{
			Field:  fieldName,
			Reason: fmt.Sprintf("too long (%d bytes, max %d)", len(input), MaxInputLength),
		}
	}
	return nil
}
