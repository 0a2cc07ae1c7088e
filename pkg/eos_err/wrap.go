// pkg/eos_err/wrap.go

package eos_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapValidationError attaches a stack and one hint per remediation step to
// a settings or input failure. With no steps the hint is "validation failed".
func WrapValidationError(err error, remediation ...string) error {
	if err == nil {
		return nil
	}
	err = cerr.WithStack(err)
	if len(remediation) == 0 {
		return cerr.WithHint(err, "validation failed")
	}
	for _, step := range remediation {
		err = cerr.WithHint(err, step)
	}
	return err
}
