package cronexpr

import (
	"fmt"
	"slices"
	"strings"
)

// Entry is a validated expression: one FieldValue per field, in expression
// order. An Entry is immutable; accessors hand out copies.
type Entry struct {
	fields [len(fieldOrder)]FieldValue
}

// Parse validates expression and builds an Entry.
//
// The expression must have exactly five whitespace-separated fields. Fields
// are parsed left to right and the first failure is returned as a
// *ParseError; later fields are not looked at.
func Parse(expression string) (Entry, error) {
	tokens := strings.Fields(expression)
	if len(tokens) != len(fieldOrder) {
		return Entry{}, &ParseError{
			Kind:   KindFieldCount,
			Token:  expression,
			Detail: fmt.Sprintf("got %d", len(tokens)),
		}
	}

	var e Entry
	for i, f := range fieldOrder {
		v, err := ParseField(f, tokens[i])
		if err != nil {
			return Entry{}, err
		}
		e.fields[i] = v
	}
	return e, nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// tests.
func MustParse(expression string) Entry {
	e, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return e
}

// IsZero reports whether e was never built by Parse.
func (e Entry) IsZero() bool {
	return e.fields[0] == nil
}

// Field returns a copy of the clauses of f. It returns nil for an invalid
// field.
func (e Entry) Field(f Field) FieldValue {
	if !f.Valid() {
		return nil
	}
	return slices.Clone(e.fields[f-Minute])
}

// Expression returns the canonical text of the entry, with clauses
// normalized ("05" becomes "5").
func (e Entry) Expression() string {
	parts := make([]string, len(e.fields))
	for i, v := range e.fields {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// String renders the entry as an English sentence.
func (e Entry) String() string {
	return Render(e)
}
