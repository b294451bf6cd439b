package errors

import (
	"errors"
	"fmt"
)

// Exit codes for generate-cloud-init
const (
	ExitSuccess               = 0
	ExitGeneralError          = 1
	ExitMissingRequiredValue  = 2
	ExitNoKeysFound           = 3
	ExitTemplateNotFound      = 4
	ExitUnresolvedPlaceholder = 5
	ExitMalformedOutput       = 6
	ExitConfigError           = 7
)

// Kind classifies a RenderError.
type Kind string

const (
	KindGeneral               Kind = "General"
	KindMissingRequiredValue  Kind = "MissingRequiredValue"
	KindNoKeysFound           Kind = "NoKeysFound"
	KindTemplateNotFound      Kind = "TemplateNotFound"
	KindUnresolvedPlaceholder Kind = "UnresolvedPlaceholder"
	KindMalformedOutput       Kind = "MalformedOutput"
	KindConfigError           Kind = "ConfigError"
)

var kindExitCodes = map[Kind]int{
	KindGeneral:               ExitGeneralError,
	KindMissingRequiredValue:  ExitMissingRequiredValue,
	KindNoKeysFound:           ExitNoKeysFound,
	KindTemplateNotFound:      ExitTemplateNotFound,
	KindUnresolvedPlaceholder: ExitUnresolvedPlaceholder,
	KindMalformedOutput:       ExitMalformedOutput,
	KindConfigError:           ExitConfigError,
}

// RenderError is the base error type for generate-cloud-init
type RenderError struct {
	Kind    Kind
	Message string
	Hint    string // Remediation shown to the user, e.g. which variable to set
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *RenderError) ExitCode() int {
	if code, ok := kindExitCodes[e.Kind]; ok {
		return code
	}
	return ExitGeneralError
}

// WithHint returns the error with its remediation hint set.
func (e *RenderError) WithHint(format string, args ...any) *RenderError {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// New creates a new RenderError
func New(kind Kind, message string) *RenderError {
	return &RenderError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with a RenderError
func Wrap(kind Kind, message string, cause error) *RenderError {
	return &RenderError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// MissingRequiredValue returns an error for a required input that is absent or empty.
func MissingRequiredValue(name string) *RenderError {
	return New(KindMissingRequiredValue, fmt.Sprintf("missing required value: %s", name))
}

// NoKeysFound returns an error when no SSH public key could be resolved.
func NoKeysFound(consulted []string) *RenderError {
	msg := "no SSH public keys found"
	if len(consulted) > 0 {
		msg = fmt.Sprintf("no SSH public keys found (checked %d sources)", len(consulted))
	}
	return New(KindNoKeysFound, msg)
}

// TemplateNotFound returns an error for a missing template file
func TemplateNotFound(path string) *RenderError {
	return New(KindTemplateNotFound, fmt.Sprintf("template not found: %s", path))
}

// UnresolvedPlaceholder returns an error for tokens left in rendered output.
func UnresolvedPlaceholder(tokens []string) *RenderError {
	return New(KindUnresolvedPlaceholder, fmt.Sprintf("unresolved placeholders in output: %v", tokens))
}

// MalformedOutput returns an error when the rendered document does not parse.
func MalformedOutput(cause error) *RenderError {
	return Wrap(KindMalformedOutput, "rendered output is not valid YAML", cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *RenderError {
	return Wrap(KindConfigError, message, cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.ExitCode()
	}
	return ExitGeneralError
}

// GetHint returns the remediation hint of the first RenderError in the chain, if any.
func GetHint(err error) string {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Hint
	}
	return ""
}

// IsKind reports whether err's chain contains a RenderError of the given kind.
func IsKind(err error, kind Kind) bool {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		return renderErr.Kind == kind
	}
	return false
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
