package cronexpr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// phrasing holds the sentence templates of one field. Placeholders: {v} a
// single value, {s} and {e} range bounds, {n} the step.
type phrasing struct {
	any     string // empty when the wildcard adds nothing to the sentence
	single  string
	span    string
	stepped string
}

var phrasings = [...]phrasing{
	Minute: {
		any:     "At every minute",
		single:  "At minute {v}",
		span:    "At every minute from {s} through {e}",
		stepped: "At every {n} minute from {s} through {e}",
	},
	Hour: {
		single:  "past hour {v}",
		span:    "past every hour from {s} through {e}",
		stepped: "past every {n} hour from {s} through {e}",
	},
	DayOfMonth: {
		single:  "On day-of-month {v}",
		span:    "on every day-of-month from {s} through {e}",
		stepped: "on every {n} day-of-month from {s} through {e}",
	},
	Month: {
		single:  "in month {v}",
		span:    "in every month from {s} through {e}",
		stepped: "in every {n} month from {s} through {e}",
	},
	DayOfWeek: {
		single:  "on {v}",
		span:    "on every day-of-week from {s} through {e}",
		stepped: "on every {n} day-of-week from {s} through {e}",
	},
}

// Render describes e as one English sentence, e.g.
// "At minute 23 past every 2 hour from 0 through 20".
//
// Fields are described in expression order. Fields that add nothing (a bare
// "*" anywhere but the minute) are left out together with their separating
// space. Every fragment after the first starts in lower case.
func Render(e Entry) string {
	parts := make([]string, 0, len(fieldOrder))
	for i, f := range fieldOrder {
		if s := renderField(f, e.fields[i]); s != "" {
			parts = append(parts, s)
		}
	}
	for i := 1; i < len(parts); i++ {
		parts[i] = lowerFirst(parts[i])
	}
	return strings.Join(parts, " ")
}

// renderField joins clause fragments as "a, b, and c".
func renderField(f Field, v FieldValue) string {
	frags := make([]string, 0, len(v))
	for _, c := range v {
		if s := renderClause(f, c); s != "" {
			frags = append(frags, s)
		}
	}
	if len(frags) < 2 {
		return strings.Join(frags, "")
	}

	var b strings.Builder
	last := len(frags) - 1
	for i, s := range frags {
		if i > 0 {
			s = lowerFirst(s)
		}
		if i == last {
			b.WriteString("and ")
			b.WriteString(s)
			break
		}
		b.WriteString(s)
		b.WriteString(", ")
	}
	return b.String()
}

func renderClause(f Field, c Clause) string {
	p := phrasings[f]
	itoa := func(n uint8) string { return strconv.Itoa(int(n)) }

	switch c.Kind {
	case ClauseAny:
		return p.any
	case ClauseSingle:
		if c.Value == Wildcard {
			return p.any
		}
		return strings.ReplaceAll(p.single, "{v}", c.Value)
	case ClauseRange:
		return strings.NewReplacer("{s}", itoa(c.Start), "{e}", itoa(c.End)).Replace(p.span)
	case ClauseSteppedRange, ClauseStepped:
		return strings.NewReplacer(
			"{n}", itoa(c.Step),
			"{s}", c.StartLiteral(),
			"{e}", itoa(c.End),
		).Replace(p.stepped)
	default:
		return ""
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
