package cronexpr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors. A *ParseError unwraps to exactly one of these, so callers can
// branch with errors.Is.
var (
	ErrFieldCount       = errors.New("cronexpr: " + KindFieldCount.message())
	ErrMalformedInteger = errors.New("cronexpr: " + KindMalformedInteger.message())
	ErrOutOfRange       = errors.New("cronexpr: " + KindOutOfRange.message())
	ErrUnknownSymbol    = errors.New("cronexpr: " + KindUnknownSymbol.message())
	ErrWildcardMisuse   = errors.New("cronexpr: " + KindWildcardMisuse.message())
	ErrEndBeforeStart   = errors.New("cronexpr: " + KindEndBeforeStart.message())
)

// ErrorKind tells which rule a rejected expression broke.
type ErrorKind int

const (
	_ ErrorKind = iota

	KindFieldCount
	KindMalformedInteger
	KindOutOfRange
	KindUnknownSymbol
	KindWildcardMisuse
	KindEndBeforeStart
)

// ErrorClass groups error kinds: a wrong token count is structural, bad
// number text is syntactic, and everything that parses but breaks a field
// rule is semantic.
type ErrorClass int

const (
	_ ErrorClass = iota

	ClassStructural
	ClassSyntactic
	ClassSemantic
)

func (c ErrorClass) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassSyntactic:
		return "syntactic"
	case ClassSemantic:
		return "semantic"
	default:
		return "ErrorClass(" + strconv.Itoa(int(c)) + ")"
	}
}

// String returns a stable kebab-case code, suitable for machine output.
func (k ErrorKind) String() string {
	switch k {
	case KindFieldCount:
		return "field-count"
	case KindMalformedInteger:
		return "malformed-integer"
	case KindOutOfRange:
		return "out-of-range"
	case KindUnknownSymbol:
		return "unknown-symbol"
	case KindWildcardMisuse:
		return "wildcard-misuse"
	case KindEndBeforeStart:
		return "end-before-start"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ErrorKind) Class() ErrorClass {
	switch k {
	case KindFieldCount:
		return ClassStructural
	case KindMalformedInteger:
		return ClassSyntactic
	case KindOutOfRange, KindUnknownSymbol, KindWildcardMisuse, KindEndBeforeStart:
		return ClassSemantic
	default:
		return 0
	}
}

func (k ErrorKind) message() string {
	switch k {
	case KindFieldCount:
		return "expected exactly 5 fields"
	case KindMalformedInteger:
		return "malformed integer"
	case KindOutOfRange:
		return "value out of range"
	case KindUnknownSymbol:
		return "unrecognized name"
	case KindWildcardMisuse:
		return "wildcard not allowed here"
	case KindEndBeforeStart:
		return "range ends before it starts"
	default:
		return "invalid expression"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFieldCount:
		return ErrFieldCount
	case KindMalformedInteger:
		return ErrMalformedInteger
	case KindOutOfRange:
		return ErrOutOfRange
	case KindUnknownSymbol:
		return ErrUnknownSymbol
	case KindWildcardMisuse:
		return ErrWildcardMisuse
	case KindEndBeforeStart:
		return ErrEndBeforeStart
	default:
		return nil
	}
}

// ParseError describes why an expression was rejected.
type ParseError struct {
	Kind ErrorKind
	// Field is zero for structural errors.
	Field Field
	// Token is the clause being parsed, or the whole expression for
	// structural errors.
	Token string
	// Literal is the offending part of Token, when narrower than Token.
	Literal string
	// Detail is a short human-readable explanation.
	Detail string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("cronexpr: ")
	if e.Field.Valid() {
		b.WriteString(e.Field.String())
		b.WriteString(" field: ")
	}
	b.WriteString(e.Kind.message())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Field.Valid() && e.Token != "" && e.Token != e.Literal {
		fmt.Fprintf(&b, " in clause %q", e.Token)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
