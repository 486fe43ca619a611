package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidManifest indicates a malformed build manifest.
	ErrInvalidManifest = errors.New("qbsql: invalid manifest")
	// ErrInvalidConfig indicates a generator configuration error.
	ErrInvalidConfig = errors.New("qbsql: invalid generator configuration")
	// ErrValidationFailed indicates a template validation failure.
	ErrValidationFailed = errors.New("qbsql: template validation failed")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("qbsql: code generation failed")
)

// ManifestError represents a manifest loading or shape error.
type ManifestError struct {
	Path    string // manifest file path, if loaded from disk
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ManifestError) Error() string {
	var b strings.Builder
	b.WriteString("qbsql: manifest error")
	if e.Path != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ManifestError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ManifestError.
func (e *ManifestError) Is(target error) bool {
	return target == ErrInvalidManifest
}

// NewManifestError creates a new ManifestError.
func NewManifestError(path, message string, cause error) *ManifestError {
	return &ManifestError{
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// TemplateError represents a template validation failure.
type TemplateError struct {
	Template string // template name from the manifest
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString("qbsql: template error")
	if e.Template != "" {
		fmt.Fprintf(&b, " on %q", e.Template)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for TemplateError.
func (e *TemplateError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewTemplateError creates a new TemplateError.
func NewTemplateError(template, message string, cause error) *TemplateError {
	return &TemplateError{
		Template: template,
		Message:  message,
		Cause:    cause,
	}
}

// ConfigError represents a generator configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("qbsql: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("qbsql: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation failure.
type GenerationError struct {
	File    string // output file name
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("qbsql: generation error")
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(file, message string, cause error) *GenerationError {
	return &GenerationError{
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsManifestError reports whether the error is a ManifestError.
func IsManifestError(err error) bool {
	var manifestErr *ManifestError
	return errors.As(err, &manifestErr)
}

// IsTemplateError reports whether the error is a TemplateError.
func IsTemplateError(err error) bool {
	var templateErr *TemplateError
	return errors.As(err, &templateErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
