package lint

import (
	"errors"
	"fmt"
	"strings"
)

// Entry is a schedule line that parsed cleanly.
type Entry struct {
	Line int `json:"line" yaml:"line"`
	// Expression is the five schedule fields as written.
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
	// Canonical is the expression with normalized spacing and numbers.
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	// Descriptor is set instead of Expression for "@daily"-style lines.
	Descriptor  string `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`
	Command     string `json:"command" yaml:"command"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Var is an environment assignment line.
type Var struct {
	Line  int    `json:"line" yaml:"line"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Report is the result of linting one crontab.
type Report struct {
	Source      string       `json:"source" yaml:"source"`
	Lines       int          `json:"lines" yaml:"lines"`
	Entries     []Entry      `json:"entries" yaml:"entries"`
	Env         []Var        `json:"env,omitempty" yaml:"env,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

func (r *Report) add(d Diagnostic) { r.Diagnostics = append(r.Diagnostics, d) }

// Count returns the number of diagnostics with the given severity.
func (r *Report) Count(s Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error diagnostic was recorded.
func (r *Report) HasErrors() bool { return r.Count(SeverityError) > 0 }

// Filter returns the diagnostics with the given severity, in line order.
func (r *Report) Filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Err joins all error diagnostics, or returns nil when there are none.
func (r *Report) Err() error {
	errs := r.Filter(SeverityError)
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, 0, len(errs))
	for _, d := range errs {
		parts = append(parts, d.String())
	}
	return errors.New(strings.Join(parts, "; "))
}

// Summary is a one-line tally, e.g. "crontab: 3 entries, 1 error, 0 warnings".
func (r *Report) Summary() string {
	return fmt.Sprintf("%s: %s, %s, %s",
		r.Source,
		plural(len(r.Entries), "entry", "entries"),
		plural(r.Count(SeverityError), "error", "errors"),
		plural(r.Count(SeverityWarning), "warning", "warnings"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
