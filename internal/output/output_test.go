package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "go.yaml.in/yaml/v3"

	"crontab/internal/lint"
	"crontab/pkg/cronexpr"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{"": Text, " JSON ": JSON, "yaml": YAML, "text": Text} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.EqualError(t, err, `unsupported format "xml" (use text, json or yaml)`)
}

func TestDescribeText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := Describe(" 23 0-20/2 * * * ", cronexpr.MustParse("23 0-20/2 * * *"))
	require.NoError(t, Write(&buf, Text, d))
	assert.Equal(t, "At minute 23 past every 2 hour from 0 through 20\n", buf.String())
}

func TestDescribeJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	d := Describe("05 1-3 */10 JAN *", cronexpr.MustParse("05 1-3 */10 JAN *"))
	require.NoError(t, Write(&buf, JSON, d))

	var got Description
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "05 1-3 */10 JAN *", got.Expression)
	assert.Equal(t, "5 1-3 */10 JAN *", got.Canonical)
	require.Len(t, got.Fields, 5)

	minute := got.Fields[0]
	assert.Equal(t, "minute", minute.Field)
	assert.False(t, minute.Any)
	assert.True(t, got.Fields[4].Any)
	assert.Equal(t, []ClauseView{{Kind: "single", Raw: "05", Value: "05"}}, minute.Clauses)

	hour := got.Fields[1].Clauses[0]
	assert.Equal(t, "range", hour.Kind)
	require.NotNil(t, hour.Start)
	assert.EqualValues(t, 1, *hour.Start)
	assert.EqualValues(t, 3, *hour.End)
	assert.Nil(t, hour.Step)

	dom := got.Fields[2].Clauses[0]
	assert.Equal(t, "stepped", dom.Kind)
	assert.True(t, dom.Wildcard)
	assert.EqualValues(t, 1, *dom.Start)
	assert.EqualValues(t, 31, *dom.End)
	assert.EqualValues(t, 10, *dom.Step)

	assert.Equal(t, "any", got.Fields[4].Clauses[0].Kind)
}

func TestDescribeYAML(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, Describe("* * * * *", cronexpr.MustParse("* * * * *"))))
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "* * * * *", got["expression"])
	assert.Equal(t, "At every minute", got["description"])
	assert.Len(t, got["fields"], 5)
}

func TestRulesText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, Rules()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"FIELD", "RANGE", "NAMES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"minute", "0-59", "-"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"month", "1-12", "JAN,FEB,MAR,APR,MAY,JUN,JUL,AUG,SEP,OCT,NOV,DEC"}, strings.Fields(lines[4]))
}

func TestWriteReport(t *testing.T) {
	t.Parallel()
	rep, err := lint.New(lint.Options{}).Lint("crontab", strings.NewReader("5 4 * * * run\n70 * * * * x\n"))
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, WriteReport(&text, Text, rep, true))
	assert.Equal(t,
		"line 1: At minute 5 past hour 4: run\n"+
			"line 2: error [out-of-range] minute field: value out of range: 70 not in 0-59\n"+
			"crontab: 1 entry, 1 error, 0 warnings\n",
		text.String())

	var js bytes.Buffer
	require.NoError(t, WriteReport(&js, JSON, rep, false))
	var got map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	assert.Equal(t, "crontab", got["source"])
	diags := got["diagnostics"].([]any)
	require.Len(t, diags, 1)
	assert.Equal(t, "error", diags[0].(map[string]any)["severity"])
}

func TestWriteFallbacks(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Text, "plain"))
	assert.Equal(t, "plain\n", buf.String())

	buf.Reset()
	var none []RuleView
	require.NoError(t, Write(&buf, JSON, none))
	assert.Equal(t, "[]\n", buf.String())

	assert.Error(t, Write(&buf, "toml", 1))
}
