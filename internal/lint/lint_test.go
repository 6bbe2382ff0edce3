package lint

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crontab/internal/compat"
	logx "crontab/pkg/logx"
)

const sample = `# nightly jobs
MAILTO=ops@example.com
PATH = "/usr/local/bin:/usr/bin"

23 0-20/2 * * *   /usr/bin/backup --fast
*/15 * * JAN MON  echo hi   there
@daily            /usr/bin/rotate
70 * * * *        /bin/true
0 0 1 jan *       /bin/false
* * *
5 4 * * SUN
`

func TestLintSample(t *testing.T) {
	t.Parallel()
	rep := lintText(t, New(Options{}), "crontab", sample)

	assert.Equal(t, 11, rep.Lines)
	require.Len(t, rep.Env, 2)
	assert.Equal(t, Var{Line: 2, Name: "MAILTO", Value: "ops@example.com"}, rep.Env[0])
	assert.Equal(t, Var{Line: 3, Name: "PATH", Value: "/usr/local/bin:/usr/bin"}, rep.Env[1])

	require.Len(t, rep.Entries, 3)
	assert.Equal(t, Entry{
		Line:        5,
		Expression:  "23 0-20/2 * * *",
		Canonical:   "23 0-20/2 * * *",
		Command:     "/usr/bin/backup --fast",
		Description: "At minute 23 past every 2 hour from 0 through 20",
	}, rep.Entries[0])
	assert.Equal(t, "echo hi   there", rep.Entries[1].Command)
	assert.Equal(t, Entry{Line: 7, Descriptor: "@daily", Command: "/usr/bin/rotate"}, rep.Entries[2])

	codes := make([]string, 0, len(rep.Diagnostics))
	for _, d := range rep.Diagnostics {
		codes = append(codes, d.Code)
	}
	assert.Equal(t, []string{CodeDescriptor, "out-of-range", "unknown-symbol", "field-count", CodeMissingCommand}, codes)
	assert.Equal(t, 4, rep.Count(SeverityError))
	assert.Equal(t, 1, rep.Count(SeverityWarning))
	assert.True(t, rep.HasErrors())
	assert.Equal(t, "crontab: 3 entries, 4 errors, 1 warning", rep.Summary())
}

func TestLintDiagnosticDetails(t *testing.T) {
	t.Parallel()
	rep := lintText(t, New(Options{}), "c", "70 * * * * x\n0 0 1 jan * x\n")
	require.Len(t, rep.Diagnostics, 2)

	oor := rep.Diagnostics[0]
	assert.Equal(t, 1, oor.Line)
	assert.Equal(t, "minute", oor.Field)
	assert.Equal(t, "minute field: value out of range: 70 not in 0-59", oor.Message)
	assert.Equal(t, "line 1: error [out-of-range] minute field: value out of range: 70 not in 0-59", oor.String())

	sym := rep.Diagnostics[1]
	assert.Equal(t, "month", sym.Field)
	assert.Equal(t, []string{"JAN"}, sym.Suggestions)
	assert.True(t, strings.HasSuffix(sym.String(), "(try: JAN)"))
}

func TestLintAllowDescriptors(t *testing.T) {
	t.Parallel()
	rep := lintText(t, New(Options{AllowDescriptors: true}), "c", "@hourly run\n@often run\n@weekly\n")
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, "@hourly", rep.Entries[0].Descriptor)

	require.Len(t, rep.Diagnostics, 2)
	assert.Equal(t, CodeUnknownDescriptor, rep.Diagnostics[0].Code)
	assert.Equal(t, CodeMissingCommand, rep.Diagnostics[1].Code)
	assert.Equal(t, 3, rep.Diagnostics[1].Line)
}

func TestLintCompatWarnings(t *testing.T) {
	t.Parallel()
	l := New(Options{Compat: compat.New(logx.Nop())})
	rep := lintText(t, l, "c", "*/90 * * * * run\n*/5 * * * * run\n")

	require.Len(t, rep.Diagnostics, 2)
	assert.Equal(t, CodeCompat, rep.Diagnostics[0].Code)
	assert.Equal(t, SeverityWarning, rep.Diagnostics[0].Severity)
	assert.Equal(t, "out-of-range", rep.Diagnostics[1].Code)
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, 2, rep.Entries[0].Line)
}

func TestLintCleanFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "crontab")
	require.NoError(t, os.WriteFile(path, []byte("*/5 * * * * /bin/true\n"), 0o600))

	rep, err := New(Options{}).File(path)
	require.NoError(t, err)
	assert.False(t, rep.HasErrors())
	assert.NoError(t, rep.Err())
	assert.Empty(t, rep.Diagnostics)
	assert.Equal(t, path+": 1 entry, 0 errors, 0 warnings", rep.Summary())

	_, err = New(Options{}).File(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReportErr(t *testing.T) {
	t.Parallel()
	rep := lintText(t, New(Options{}), "c", "* * *\n")
	err := rep.Err()
	require.Error(t, err)
	assert.Equal(t, "line 1: error [field-count] expected exactly 5 fields: got 3", err.Error())
}

func TestCut(t *testing.T) {
	t.Parallel()
	fields, rest := cut("  a  b\tc d  e   run  it  ", 5)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, fields)
	assert.Equal(t, "run  it", rest)

	fields, rest = cut("a b", 5)
	assert.Equal(t, []string{"a", "b"}, fields)
	assert.Empty(t, rest)
}

func TestSeverityText(t *testing.T) {
	t.Parallel()
	b, err := SeverityError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(b))
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func lintText(t *testing.T, l *Linter, source, text string) *Report {
	t.Helper()
	rep, err := l.Lint(source, strings.NewReader(text))
	require.NoError(t, err)
	return rep
}
