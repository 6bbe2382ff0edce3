package cronexpr

import (
	"errors"
	"strconv"
	"strings"
)

// ClauseKind is the shape of a parsed clause.
type ClauseKind int

const (
	_ ClauseKind = iota

	ClauseAny          // *
	ClauseSingle       // 5, JAN
	ClauseRange        // 1-5
	ClauseSteppedRange // 0-20/2
	ClauseStepped      // */15, 10/5
)

func (k ClauseKind) String() string {
	switch k {
	case ClauseAny:
		return "any"
	case ClauseSingle:
		return "single"
	case ClauseRange:
		return "range"
	case ClauseSteppedRange:
		return "stepped-range"
	case ClauseStepped:
		return "stepped"
	default:
		return "ClauseKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Clause is one comma-separated unit of a field.
//
// Which members are meaningful depends on Kind:
//   - ClauseAny: none.
//   - ClauseSingle: Value (as written) and Number (names resolved).
//   - ClauseRange: Start, End.
//   - ClauseSteppedRange: Start, End, Step.
//   - ClauseStepped: Start, End (always the field maximum), Step, and
//     Wildcard when the start was written as "*" (Start is then the field
//     minimum). Start and Step may be written as names ("JAN/2", "*/FEB").
type Clause struct {
	Kind ClauseKind
	// Raw is the clause text exactly as it appeared in the expression.
	Raw string

	Value  string
	Number uint8

	Start    uint8
	End      uint8
	Step     uint8
	Wildcard bool
}

// StartLiteral returns the start bound as recorded: "*" for a wildcard step
// start, the decimal start otherwise.
func (c Clause) StartLiteral() string {
	if c.Kind == ClauseStepped && c.Wildcard {
		return Wildcard
	}
	return strconv.Itoa(int(c.Start))
}

// String returns the canonical text of the clause.
func (c Clause) String() string {
	switch c.Kind {
	case ClauseAny:
		return Wildcard
	case ClauseSingle:
		if isDigits(c.Value) {
			return strconv.Itoa(int(c.Number))
		}
		return c.Value
	case ClauseRange:
		return strconv.Itoa(int(c.Start)) + "-" + strconv.Itoa(int(c.End))
	case ClauseSteppedRange:
		return strconv.Itoa(int(c.Start)) + "-" + strconv.Itoa(int(c.End)) + "/" + strconv.Itoa(int(c.Step))
	case ClauseStepped:
		return c.StartLiteral() + "/" + strconv.Itoa(int(c.Step))
	default:
		return c.Raw
	}
}

// ParseClause parses one clause of field. token must not contain a comma.
//
// Shapes are tried in this order: "*", "X-Y/Z", "X/Y", "X-Y", single value.
// Each split happens on the first separator only, so "1-2-3" fails on the
// malformed end bound "2-3".
func ParseClause(field Field, token string) (Clause, error) {
	c, err := field.Rules().parseClause(token)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Token == "" {
			pe.Token = token
		}
		return Clause{}, err
	}
	c.Raw = token
	return c, nil
}

func (r Rules) parseClause(token string) (Clause, error) {
	hasDash := strings.Contains(token, "-")
	hasSlash := strings.Contains(token, "/")

	switch {
	case token == Wildcard:
		return Clause{Kind: ClauseAny}, nil

	case hasDash && hasSlash:
		start, rest, _ := strings.Cut(token, "-")
		end, step, _ := strings.Cut(rest, "/")
		if err := r.concrete("range bound", start, end); err != nil {
			return Clause{}, err
		}
		if err := r.concrete("step", step); err != nil {
			return Clause{}, err
		}
		lo, hi, err := r.bounds(start, end)
		if err != nil {
			return Clause{}, err
		}
		n, err := r.step(step)
		if err != nil {
			return Clause{}, err
		}
		return Clause{Kind: ClauseSteppedRange, Start: lo, End: hi, Step: n}, nil

	case hasSlash:
		start, step, _ := strings.Cut(token, "/")
		if err := r.concrete("step", step); err != nil {
			return Clause{}, err
		}
		c := Clause{Kind: ClauseStepped, End: r.max}
		if start == Wildcard {
			c.Start = r.min
			c.Wildcard = true
		} else {
			v, err := r.resolve(start)
			if err != nil {
				return Clause{}, err
			}
			c.Start = v
		}
		n, err := r.resolve(step)
		if err != nil {
			return Clause{}, err
		}
		c.Step = n
		return c, nil

	case hasDash:
		start, end, _ := strings.Cut(token, "-")
		if err := r.concrete("range bound", start, end); err != nil {
			return Clause{}, err
		}
		lo, hi, err := r.bounds(start, end)
		if err != nil {
			return Clause{}, err
		}
		return Clause{Kind: ClauseRange, Start: lo, End: hi}, nil

	default:
		n, err := r.resolve(token)
		if err != nil {
			return Clause{}, err
		}
		return Clause{Kind: ClauseSingle, Value: token, Number: n}, nil
	}
}

// concrete rejects the wildcard where a real number is required.
func (r Rules) concrete(role string, literals ...string) error {
	for _, lit := range literals {
		if lit == Wildcard {
			return r.fail(KindWildcardMisuse, lit, "%q cannot be a %s", lit, role)
		}
	}
	return nil
}

// bounds decodes a range and enforces end >= start. The step of a stepped
// range is deliberately not compared with the range width.
func (r Rules) bounds(start, end string) (uint8, uint8, error) {
	lo, err := r.Value(start)
	if err != nil {
		return 0, 0, err
	}
	hi, err := r.Value(end)
	if err != nil {
		return 0, 0, err
	}
	if hi < lo {
		return 0, 0, r.fail(KindEndBeforeStart, "", "%d > %d", lo, hi)
	}
	return lo, hi, nil
}

// resolve decodes a literal that may also be one of the field's names.
func (r Rules) resolve(literal string) (uint8, error) {
	if n, ok := r.Lookup(literal); ok {
		return n, nil
	}
	if err := r.Check(literal); err != nil {
		return 0, err
	}
	return r.Value(literal)
}

// step decodes the step of a stepped range, which must be at least 1.
func (r Rules) step(literal string) (uint8, error) {
	n, err := r.Value(literal)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, r.fail(KindOutOfRange, literal, "step must be at least 1")
	}
	return n, nil
}

// FieldValue is the ordered list of clauses of one field. Duplicates are
// kept as written.
type FieldValue []Clause

// ParseField splits raw on commas and parses every clause. The first bad
// clause fails the whole field.
func ParseField(field Field, raw string) (FieldValue, error) {
	parts := strings.Split(raw, ",")
	v := make(FieldValue, 0, len(parts))
	for _, part := range parts {
		c, err := ParseClause(field, part)
		if err != nil {
			return nil, err
		}
		v = append(v, c)
	}
	return v, nil
}

// IsAny reports whether every clause is the wildcard.
func (v FieldValue) IsAny() bool {
	for _, c := range v {
		if c.Kind != ClauseAny {
			return false
		}
	}
	return len(v) > 0
}

func (v FieldValue) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
