package cronexpr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Wildcard is the literal that matches every value of a field.
const Wildcard = "*"

// Field identifies one of the five positions of an expression.
type Field int

const (
	_ Field = iota // zero value is not a field

	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
)

var fieldOrder = [...]Field{Minute, Hour, DayOfMonth, Month, DayOfWeek}

// Fields returns the five fields in expression order.
func Fields() []Field {
	return slices.Clone(fieldOrder[:])
}

func (f Field) Valid() bool { return f >= Minute && f <= DayOfWeek }

func (f Field) String() string {
	switch f {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case DayOfMonth:
		return "day-of-month"
	case Month:
		return "month"
	case DayOfWeek:
		return "day-of-week"
	default:
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
}

// Rules returns the validation rules of the field. It panics on an invalid
// field, which is a programming error rather than bad input.
func (f Field) Rules() Rules {
	if !f.Valid() {
		panic("cronexpr: no rules for " + f.String())
	}
	return rules[f]
}

type symbol struct {
	name  string
	value uint8
}

// Rules holds the accepted values of one field: an inclusive numeric range
// and an optional set of upper-case names.
type Rules struct {
	field    Field
	min, max uint8
	symbols  []symbol
}

var rules = [...]Rules{
	Minute:     {field: Minute, min: 0, max: 59},
	Hour:       {field: Hour, min: 0, max: 23},
	DayOfMonth: {field: DayOfMonth, min: 1, max: 31},
	Month: {field: Month, min: 1, max: 12, symbols: []symbol{
		{"JAN", 1}, {"FEB", 2}, {"MAR", 3}, {"APR", 4}, {"MAY", 5}, {"JUN", 6},
		{"JUL", 7}, {"AUG", 8}, {"SEP", 9}, {"OCT", 10}, {"NOV", 11}, {"DEC", 12},
	}},
	DayOfWeek: {field: DayOfWeek, min: 0, max: 6, symbols: []symbol{
		{"MON", 1}, {"TUE", 2}, {"WED", 3}, {"THU", 4}, {"FRI", 5}, {"SAT", 6}, {"SUN", 0},
	}},
}

func (r Rules) Field() Field { return r.field }
func (r Rules) Min() uint8   { return r.min }
func (r Rules) Max() uint8   { return r.max }

// Names returns the symbolic names of the field in calendar order, or nil
// when the field is numeric only.
func (r Rules) Names() []string {
	if len(r.symbols) == 0 {
		return nil
	}
	names := make([]string, len(r.symbols))
	for i, s := range r.symbols {
		names[i] = s.name
	}
	return names
}

// Lookup resolves a symbolic name to its numeric value. Matching is exact.
func (r Rules) Lookup(name string) (uint8, bool) {
	for _, s := range r.symbols {
		if s.name == name {
			return s.value, true
		}
	}
	return 0, false
}

// InRange reports whether literal is acceptable as a single value.
func (r Rules) InRange(literal string) bool {
	return r.Check(literal) == nil
}

// Check validates literal as a single value: the wildcard, one of the
// field's names, or an integer within bounds. The returned error is a
// *ParseError.
func (r Rules) Check(literal string) error {
	if literal == Wildcard {
		return nil
	}
	if _, ok := r.Lookup(literal); ok {
		return nil
	}
	if len(r.symbols) > 0 && literal != "" && !isDigits(literal) {
		return r.fail(KindUnknownSymbol, literal, "%q is not one of %s", literal, strings.Join(r.Names(), ", "))
	}
	_, err := r.Value(literal)
	return err
}

// Value decodes a numeric literal and checks it against the field bounds.
// Names and the wildcard are rejected: they are not numbers.
func (r Rules) Value(literal string) (uint8, error) {
	n, err := strconv.ParseUint(literal, 10, 8)
	if err != nil {
		switch {
		case literal == "":
			return 0, r.fail(KindMalformedInteger, literal, "empty value")
		case isDigits(literal):
			return 0, r.fail(KindMalformedInteger, literal, "%s exceeds 255", literal)
		default:
			if _, ok := r.Lookup(literal); ok {
				return 0, r.fail(KindMalformedInteger, literal, "%q must be numeric here", literal)
			}
			return 0, r.fail(KindMalformedInteger, literal, "invalid integer %q", literal)
		}
	}
	v := uint8(n)
	if v < r.min || v > r.max {
		return 0, r.fail(KindOutOfRange, literal, "%d not in %d-%d", v, r.min, r.max)
	}
	return v, nil
}

func (r Rules) fail(kind ErrorKind, literal, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Field:   r.field,
		Literal: literal,
		Detail:  fmt.Sprintf(format, args...),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
