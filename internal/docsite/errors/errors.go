package errors

import (
	"fmt"
)

// ParseError represents a descriptor decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigError reports a missing or invalid site descriptor field.
// Field is the serialized path, e.g. "themeConfig.navbar.items[1].sidebarId".
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError.
func NewConfigError(field, message string, err error) error {
	return &ConfigError{Field: field, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ReferenceKind names the class of target an UnresolvedReferenceError points at.
type ReferenceKind string

const (
	RefSidebar      ReferenceKind = "sidebar"
	RefDoc          ReferenceKind = "doc"
	RefRoute        ReferenceKind = "route"
	RefMarkdownLink ReferenceKind = "markdown-link"
)

// UnresolvedReferenceError reports a navigation item, footer link or markdown
// link whose target does not exist. Policy records the link policy that was in
// force ("throw", "warn", "log") so callers can tell fatal from advisory records.
type UnresolvedReferenceError struct {
	Kind   ReferenceKind
	Ref    string
	Source string
	Policy string
}

// NewUnresolvedReferenceError constructs an UnresolvedReferenceError.
func NewUnresolvedReferenceError(kind ReferenceKind, ref, source, policy string) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{Kind: kind, Ref: ref, Source: source, Policy: policy}
}

func (e *UnresolvedReferenceError) Error() string {
	if e == nil {
		return ""
	}
	if e.Source != "" {
		return fmt.Sprintf("unresolved %s reference %q in %s", e.Kind, e.Ref, e.Source)
	}
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Ref)
}

// Fatal reports whether the record aborts the build.
func (e *UnresolvedReferenceError) Fatal() bool {
	return e != nil && e.Policy == "throw"
}
