// pkg/crypto/errors.go

package crypto

import (
	"fmt"

	cerr "github.com/cockroachdb/errors"
)

var (
	// ErrInvalidArgument marks a request parameter outside its contract range.
	ErrInvalidArgument = cerr.New("invalid argument")

	// ErrExhaustedRetries is returned when MaxAttempts candidates were all rejected.
	ErrExhaustedRetries = cerr.New("exhausted retries")
)

// ArgumentError names the parameter that failed validation and its allowed range.
type ArgumentError struct {
	Param string
	Value int
	Min   int
	Max   int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %d is outside [%d,%d]", e.Param, e.Value, e.Min, e.Max)
}

// Is lets errors.Is(err, ErrInvalidArgument) match any ArgumentError.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func newArgumentError(param string, value, min, max int) error {
	return cerr.WithStack(&ArgumentError{Param: param, Value: value, Min: min, Max: max})
}
