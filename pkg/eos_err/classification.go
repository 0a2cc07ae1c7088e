// pkg/eos_err/classification.go
//
// Error classification system with proper exit codes
// Extends existing UserError infrastructure

package eos_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem/entropy issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - Input validation failures (exit 2)
	CategoryValidation
	// CategoryUser - User cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - Bugs in credgen itself (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryUser:
		return "user"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation:
		return 2 // Invalid input/arguments
	case CategoryInternal:
		return 3 // Internal error/bug
	default:
		return 1 // General error
	}
}

// GetExitCode extracts exit code from any error
// Returns 0 for nil, appropriate code for classified errors, 1 for others
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	// Expected user errors that were never classified still mean bad input.
	if IsExpectedUserError(err) {
		return 2
	}

	return 1
}

// GetCategory returns the category of a classified error, or CategorySystem.
func GetCategory(err error) ErrorCategory {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return CategorySystem
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewSystemError creates an error for environment failures such as an
// unreadable entropy source or an unwritable config directory
func NewSystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for credgen bugs
// These should be reported to developers
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in credgen",
			"Rerun with LOG_LEVEL=DEBUG and include the output when reporting it",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}
