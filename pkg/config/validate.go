// pkg/config/validate.go

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/credgen/pkg/eos_err"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks p against its struct tags. Failures come back as a
// validation-classified error with one remediation line per field.
func Validate(p *Password) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return eos_err.NewInternalError("settings validation failed", err)
	}

	fields := make([]string, 0, len(verrs))
	remediation := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		remediation = append(remediation, describe(fe))
	}

	return eos_err.NewValidationError(
		"invalid settings: "+strings.Join(fields, ", "),
		eos_err.WrapValidationError(err, remediation...),
		remediation...,
	)
}

func describe(fe validator.FieldError) string {
	flag := flagName(fe.Field())
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("--%s must be at least %s (got %v)", flag, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("--%s must be at most %s (got %v)", flag, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("--%s must be one of: %s (got %q)", flag, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("--%s failed %s check", flag, fe.Tag())
	}
}

func flagName(field string) string {
	switch field {
	case "Length":
		return KeyLength
	case "NonAlphanumeric":
		return KeyNonAlphanumeric
	case "Count":
		return KeyCount
	case "MaxAttempts":
		return KeyMaxAttempts
	case "QuotaSource":
		return KeyQuotaSource
	case "Format":
		return KeyFormat
	default:
		return strings.ToLower(field)
	}
}
