package models

import (
	"strings"
	"time"
)

// RenameOperation is the immutable configuration of one rename run.
// It is built once by the CLI and threaded through every component.
type RenameOperation struct {
	ID   string
	Root string

	// Extension handling. Extensions carry a leading period.
	Extensions           []string
	ExtensionMap         map[string]string
	UnderscoreExtensions []string

	// Affix markers preserved verbatim
	Prefixes []string
	Suffixes []string

	// SafeChars are punctuation characters kept inside slugs
	SafeChars string

	// Ignore rules
	IgnoreStems      []string
	IgnoreExtensions []string
	IgnoreGlobs      []string

	// Optional limits, 0 = disabled
	MaxLength  int
	NumDigits  int
	WarnLimit  int
	ErrorLimit int

	DryRun     bool
	NoRecurse  bool
	IgnoreRoot bool
	Force      bool

	CreatedAt time.Time
}

// Validate checks if the operation configuration is valid
func (op *RenameOperation) Validate() error {
	if op.Root == "" {
		return &ValidationError{Field: "Root", Message: "root path is required"}
	}
	if op.MaxLength < 0 {
		return &ValidationError{Field: "MaxLength", Message: "max length cannot be negative"}
	}
	if op.NumDigits < 0 || op.NumDigits > 18 {
		return &ValidationError{Field: "NumDigits", Message: "num digits must be between 0 and 18"}
	}
	if op.WarnLimit < 0 {
		return &ValidationError{Field: "WarnLimit", Message: "warn limit cannot be negative"}
	}
	if op.ErrorLimit < 0 {
		return &ValidationError{Field: "ErrorLimit", Message: "error limit cannot be negative"}
	}
	for _, marker := range append(append([]string{}, op.Prefixes...), op.Suffixes...) {
		if marker == "" {
			return &ValidationError{Field: "Prefixes", Message: "affix markers cannot be empty"}
		}
		if strings.ContainsAny(marker, "/\\") {
			return &ValidationError{Field: "Prefixes", Message: "affix markers cannot contain path separators"}
		}
	}
	for from, to := range op.ExtensionMap {
		if !strings.HasPrefix(from, ".") || !strings.HasPrefix(to, ".") {
			return &ValidationError{Field: "ExtensionMap", Message: "extensions must start with a period: " + from + " -> " + to}
		}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
