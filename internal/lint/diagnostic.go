package lint

import (
	"fmt"
	"strings"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// MarshalText renders the severity by name in JSON and YAML reports.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Diagnostic codes that do not come from a cronexpr.ErrorKind.
const (
	CodeMissingCommand    = "missing-command"
	CodeDescriptor        = "descriptor"
	CodeUnknownDescriptor = "unknown-descriptor"
	CodeCompat            = "compat"
)

// Diagnostic is one finding on one crontab line.
type Diagnostic struct {
	Line     int      `json:"line" yaml:"line"`
	Severity Severity `json:"severity" yaml:"severity"`
	// Code identifies the kind of finding, e.g. "out-of-range".
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	// Field names the schedule field at fault, if any.
	Field       string   `json:"field,omitempty" yaml:"field,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// String formats the diagnostic as "line N: severity [code] message".
func (d Diagnostic) String() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", d.Line)
	}
	b.WriteString(d.Severity.String())
	if d.Code != "" {
		fmt.Fprintf(&b, " [%s]", d.Code)
	}
	b.WriteString(" ")
	b.WriteString(d.Message)
	if len(d.Suggestions) > 0 {
		fmt.Fprintf(&b, " (try: %s)", strings.Join(d.Suggestions, ", "))
	}
	return b.String()
}
