package diagnostic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lwdita-editor/internal/common"
)

// Codes used by the schema compiler.
const (
	CodeUnknownNode     = "unknown_node"
	CodeUnknownOverride = "unknown_override"
	CodeAttrCollision   = "attr_collision"
)

// Diagnostics holds all diagnostic information from one compilation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Kind is the grammar kind whose content model produced the diagnostic.
	Kind string
	// Ref is the offending name (an unknown kind or group, an attribute).
	Ref string
	// Suggestions are known names close to Ref.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add records d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, kind, ref string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Kind: kind, Ref: ref})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, kind, ref string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Kind: kind, Ref: ref})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, kind, ref string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Kind: kind, Ref: ref})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len is the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// ByCode returns every diagnostic with the given code, in severity order.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if there
// are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to logger at the matching level.
func (d *Diagnostics) Log(logger *slog.Logger) {
	for _, diag := range d.All() {
		level := slog.LevelInfo

		switch diag.Severity {
		case SeverityError:
			level = slog.LevelError
		case SeverityWarning:
			level = slog.LevelWarn
		}

		logger.Log(context.Background(), level, diag.Message, diag.attrs()...)
	}
}

func (d Diagnostic) attrs() []any {
	attrs := []any{"code", d.Code}
	if d.Kind != "" {
		attrs = append(attrs, "kind", d.Kind)
	}

	if d.Ref != "" {
		attrs = append(attrs, "ref", d.Ref)
	}

	if len(d.Suggestions) > 0 {
		attrs = append(attrs, "suggestions", d.Suggestions)
	}

	return attrs
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Kind != "" {
		msg = d.Kind + ": " + msg
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
