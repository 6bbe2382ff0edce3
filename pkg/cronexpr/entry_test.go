package cronexpr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	t.Parallel()
	expressions := []string{
		"* * * * *",
		"5 4 10 JAN 3",
		"23 0-20/2 * * *",
		"*/15 0-6 1,15 * 1-5",
		"0 9 * DEC SUN",
		"0-30/5 */2 */10 */3 */2",
		"  5   4 10 JAN 3 \t",
	}
	for _, expression := range expressions {
		expression := expression
		t.Run(expression, func(t *testing.T) {
			t.Parallel()
			e, err := Parse(expression)
			require.NoError(t, err)
			assert.False(t, e.IsZero())
		})
	}
}

func TestParseFieldValues(t *testing.T) {
	t.Parallel()
	e, err := Parse("23 0-20/2 * * *")
	require.NoError(t, err)

	assert.Equal(t, FieldValue{{Kind: ClauseSingle, Raw: "23", Value: "23", Number: 23}}, e.Field(Minute))
	assert.Equal(t, FieldValue{{Kind: ClauseSteppedRange, Raw: "0-20/2", Start: 0, End: 20, Step: 2}}, e.Field(Hour))
	for _, f := range []Field{DayOfMonth, Month, DayOfWeek} {
		assert.True(t, e.Field(f).IsAny(), f.String())
	}
	assert.Nil(t, e.Field(Field(0)))
}

func TestParseWildcardEverywhere(t *testing.T) {
	t.Parallel()
	e, err := Parse("* * * * *")
	require.NoError(t, err)
	for _, f := range Fields() {
		v := e.Field(f)
		require.Len(t, v, 1)
		assert.Equal(t, ClauseAny, v[0].Kind)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		expression string
		wantErr    error
		wantField  Field
		wantToken  string
		wantClass  ErrorClass
	}{
		{
			name:       "minute out of range",
			expression: "70 4 10 JAN 3",
			wantErr:    ErrOutOfRange,
			wantField:  Minute,
			wantToken:  "70",
			wantClass:  ClassSemantic,
		},
		{
			name:       "too few fields",
			expression: "5 4 10",
			wantErr:    ErrFieldCount,
			wantToken:  "5 4 10",
			wantClass:  ClassStructural,
		},
		{
			name:       "empty",
			expression: "",
			wantErr:    ErrFieldCount,
			wantClass:  ClassStructural,
		},
		{
			name:       "too many fields",
			expression: "* * * * * *",
			wantErr:    ErrFieldCount,
			wantToken:  "* * * * * *",
			wantClass:  ClassStructural,
		},
		{
			name:       "reversed range among valid siblings",
			expression: "10,11,12-9 4 10 JAN 3",
			wantErr:    ErrEndBeforeStart,
			wantField:  Minute,
			wantToken:  "12-9",
			wantClass:  ClassSemantic,
		},
		{
			name:       "malformed hour",
			expression: "0 x * * *",
			wantErr:    ErrMalformedInteger,
			wantField:  Hour,
			wantToken:  "x",
			wantClass:  ClassSyntactic,
		},
		{
			name:       "lower-case month",
			expression: "0 0 1 jan *",
			wantErr:    ErrUnknownSymbol,
			wantField:  Month,
			wantToken:  "jan",
			wantClass:  ClassSemantic,
		},
		{
			name:       "day of week seven",
			expression: "0 0 * * 7",
			wantErr:    ErrOutOfRange,
			wantField:  DayOfWeek,
			wantToken:  "7",
			wantClass:  ClassSemantic,
		},
		{
			name:       "wildcard range bound in day of month",
			expression: "0 0 *-5 * *",
			wantErr:    ErrWildcardMisuse,
			wantField:  DayOfMonth,
			wantToken:  "*-5",
			wantClass:  ClassSemantic,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, err := Parse(tt.expression)
			require.Error(t, err)
			assert.True(t, e.IsZero())
			assert.ErrorIs(t, err, tt.wantErr)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantField, pe.Field)
			assert.Equal(t, tt.wantToken, pe.Token)
			assert.Equal(t, tt.wantClass, pe.Kind.Class())
		})
	}
}

func TestParseStopsAtFirstBadField(t *testing.T) {
	t.Parallel()
	// Every field is bad; only the minute must be reported.
	_, err := Parse("70 99 0 FOO 9")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Minute, pe.Field)

	_, err = Parse("5 99 0 FOO 9")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Hour, pe.Field)
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()
	_, err := Parse("70 4 10 JAN 3")
	require.Error(t, err)
	assert.Equal(t, "cronexpr: minute field: value out of range: 70 not in 0-59", err.Error())

	_, err = Parse("10,11,12-9 4 10 JAN 3")
	require.Error(t, err)
	assert.Equal(t, `cronexpr: minute field: range ends before it starts: 12 > 9 in clause "12-9"`, err.Error())

	_, err = Parse("5 4 10")
	require.Error(t, err)
	assert.Equal(t, "cronexpr: expected exactly 5 fields: got 3", err.Error())
}

func TestEntryIsImmutable(t *testing.T) {
	t.Parallel()
	e := MustParse("5,6 * * * *")
	v := e.Field(Minute)
	v[0].Value = "59"

	again := e.Field(Minute)
	require.Len(t, again, 2)
	assert.Equal(t, "5", again[0].Value)
}

func TestEntryExpression(t *testing.T) {
	t.Parallel()
	e := MustParse("05   */15 01-05 JAN   MON,1-3/1")
	assert.Equal(t, "5 */15 1-5 JAN MON,1-3/1", e.Expression())

	again, err := Parse(e.Expression())
	require.NoError(t, err)
	assert.Equal(t, e.Expression(), again.Expression())
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParse("not a cron") })
	assert.NotPanics(t, func() { MustParse("* * * * *") })
}

func TestErrorKindStrings(t *testing.T) {
	t.Parallel()
	kinds := map[ErrorKind]string{
		KindFieldCount:       "field-count",
		KindMalformedInteger: "malformed-integer",
		KindOutOfRange:       "out-of-range",
		KindUnknownSymbol:    "unknown-symbol",
		KindWildcardMisuse:   "wildcard-misuse",
		KindEndBeforeStart:   "end-before-start",
	}
	for k, want := range kinds {
		assert.Equal(t, want, k.String())
		assert.NotNil(t, (&ParseError{Kind: k}).Unwrap())
	}
	assert.Nil(t, (&ParseError{}).Unwrap())
	assert.Equal(t, "structural", ClassStructural.String())
}
