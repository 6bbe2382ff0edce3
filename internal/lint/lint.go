// Package lint checks crontab files line by line.
//
// Each schedule line is split into its five cronexpr fields and a command.
// Blank lines and comments are skipped, environment assignments are recorded,
// and "@daily"-style descriptors are flagged unless allowed.
package lint

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"crontab/internal/compat"
	"crontab/pkg/cronexpr"
	logx "crontab/pkg/logx"
)

// Options tune a Linter.
type Options struct {
	// Compat, when set, cross-checks every schedule with the standard parser.
	Compat *compat.Checker
	// AllowDescriptors accepts "@daily"-style lines without a warning.
	AllowDescriptors bool
	Logger           logx.Logger
}

type Linter struct {
	opts Options
	log  logx.Logger
}

func New(opts Options) *Linter {
	log := opts.Logger
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Linter{opts: opts, log: log.With(logx.String("comp", "lint"))}
}

// File lints the crontab at path.
func (l *Linter) File(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return l.Lint(path, f)
}

// Lint reads crontab lines from r. source names the input in the report.
// The returned error is a read error only; findings go into the report.
func (l *Linter) Lint(source string, r io.Reader) (*Report, error) {
	rep := &Report{Source: source, Entries: []Entry{}, Diagnostics: []Diagnostic{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rep.Lines++
		l.line(rep, rep.Lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("read %s: %w", source, err)
	}
	l.log.Debug("linted",
		logx.String("source", source),
		logx.Int("entries", len(rep.Entries)),
		logx.Int("errors", rep.Count(SeverityError)),
		logx.Int("warnings", rep.Count(SeverityWarning)),
	)
	return rep, nil
}

var envLine = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.*)$`)

var descriptors = map[string]bool{
	"@reboot":   true,
	"@yearly":   true,
	"@annually": true,
	"@monthly":  true,
	"@weekly":   true,
	"@daily":    true,
	"@midnight": true,
	"@hourly":   true,
}

func (l *Linter) line(rep *Report, n int, text string) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "", strings.HasPrefix(trimmed, "#"):
		return
	case envLine.MatchString(trimmed):
		m := envLine.FindStringSubmatch(trimmed)
		rep.Env = append(rep.Env, Var{Line: n, Name: m[1], Value: unquote(m[2])})
		return
	case strings.HasPrefix(trimmed, "@"):
		l.descriptor(rep, n, trimmed)
		return
	}

	fields, command := cut(trimmed, len(cronexpr.Fields()))
	expr := strings.Join(fields, " ")
	if l.opts.Compat != nil {
		if v := l.opts.Compat.Check(expr); !v.Agree() {
			rep.add(Diagnostic{Line: n, Severity: SeverityWarning, Code: CodeCompat, Message: v.String()})
		}
	}

	entry, err := cronexpr.Parse(expr)
	if err != nil {
		rep.add(parseDiagnostic(n, err))
		return
	}
	if command == "" {
		rep.add(Diagnostic{Line: n, Severity: SeverityError, Code: CodeMissingCommand, Message: "schedule has no command"})
		return
	}
	rep.Entries = append(rep.Entries, Entry{
		Line:        n,
		Expression:  expr,
		Canonical:   entry.Expression(),
		Command:     command,
		Description: entry.String(),
	})
}

func (l *Linter) descriptor(rep *Report, n int, trimmed string) {
	parts, command := cut(trimmed, 1)
	name := parts[0]
	if !descriptors[name] {
		rep.add(Diagnostic{Line: n, Severity: SeverityError, Code: CodeUnknownDescriptor,
			Message: fmt.Sprintf("%q is not a known schedule descriptor", name)})
		return
	}
	if command == "" {
		rep.add(Diagnostic{Line: n, Severity: SeverityError, Code: CodeMissingCommand, Message: "schedule has no command"})
		return
	}
	if !l.opts.AllowDescriptors {
		rep.add(Diagnostic{Line: n, Severity: SeverityWarning, Code: CodeDescriptor,
			Message: fmt.Sprintf("%s is not a five-field expression and cannot be described", name)})
	}
	rep.Entries = append(rep.Entries, Entry{Line: n, Descriptor: name, Command: command})
}

func parseDiagnostic(n int, err error) Diagnostic {
	d := Diagnostic{Line: n, Severity: SeverityError, Message: strings.TrimPrefix(err.Error(), "cronexpr: ")}
	var pe *cronexpr.ParseError
	if !errors.As(err, &pe) {
		return d
	}
	d.Code = pe.Kind.String()
	if pe.Field.Valid() {
		d.Field = pe.Field.String()
		if pe.Kind == cronexpr.KindUnknownSymbol {
			if _, ok := pe.Field.Rules().Lookup(strings.ToUpper(pe.Literal)); ok {
				d.Suggestions = []string{strings.ToUpper(pe.Literal)}
			}
		}
	}
	return d
}

// cut splits off up to n leading whitespace-separated fields. The rest keeps
// its inner spacing.
func cut(line string, n int) ([]string, string) {
	fields := make([]string, 0, n)
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	for len(fields) < n && rest != "" {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	return fields, strings.TrimRightFunc(rest, unicode.IsSpace)
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
