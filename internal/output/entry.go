package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"crontab/pkg/cronexpr"
)

// Description is the structured form of a parsed expression.
type Description struct {
	Expression  string      `json:"expression" yaml:"expression"`
	Canonical   string      `json:"canonical" yaml:"canonical"`
	Description string      `json:"description" yaml:"description"`
	Fields      []FieldView `json:"fields" yaml:"fields"`
}

type FieldView struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
	// Any is set when the field only holds wildcards.
	Any     bool         `json:"any" yaml:"any"`
	Clauses []ClauseView `json:"clauses" yaml:"clauses"`
}

// ClauseView holds only the parts meaningful for its kind.
type ClauseView struct {
	Kind     string `json:"kind" yaml:"kind"`
	Raw      string `json:"raw" yaml:"raw"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	Start    *uint8 `json:"start,omitempty" yaml:"start,omitempty"`
	End      *uint8 `json:"end,omitempty" yaml:"end,omitempty"`
	Step     *uint8 `json:"step,omitempty" yaml:"step,omitempty"`
	Wildcard bool   `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
}

// Describe builds the structured view of e. expression is the input as
// the user wrote it.
func Describe(expression string, e cronexpr.Entry) Description {
	d := Description{
		Expression:  strings.TrimSpace(expression),
		Canonical:   e.Expression(),
		Description: e.String(),
	}
	for _, f := range cronexpr.Fields() {
		v := e.Field(f)
		fv := FieldView{Field: f.String(), Value: v.String(), Any: v.IsAny(), Clauses: make([]ClauseView, 0, len(v))}
		for _, c := range v {
			fv.Clauses = append(fv.Clauses, clauseView(c))
		}
		d.Fields = append(d.Fields, fv)
	}
	return d
}

func clauseView(c cronexpr.Clause) ClauseView {
	cv := ClauseView{Kind: c.Kind.String(), Raw: c.Raw}
	switch c.Kind {
	case cronexpr.ClauseSingle:
		cv.Value = c.Value
	case cronexpr.ClauseRange:
		cv.Start, cv.End = ptr(c.Start), ptr(c.End)
	case cronexpr.ClauseSteppedRange, cronexpr.ClauseStepped:
		cv.Start, cv.End, cv.Step = ptr(c.Start), ptr(c.End), ptr(c.Step)
		cv.Wildcard = c.Wildcard
	}
	return cv
}

func ptr(v uint8) *uint8 { return &v }

// WriteText prints just the sentence.
func (d Description) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, d.Description)
	return err
}

// RuleView describes one field's accepted values.
type RuleView struct {
	Field string   `json:"field" yaml:"field"`
	Min   uint8    `json:"min" yaml:"min"`
	Max   uint8    `json:"max" yaml:"max"`
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`
}

type RuleTable []RuleView

// Rules lists every field in expression order.
func Rules() RuleTable {
	var t RuleTable
	for _, f := range cronexpr.Fields() {
		r := f.Rules()
		t = append(t, RuleView{Field: f.String(), Min: r.Min(), Max: r.Max(), Names: r.Names()})
	}
	return t
}

func (t RuleTable) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tRANGE\tNAMES")
	for _, r := range t {
		names := strings.Join(r.Names, ",")
		if names == "" {
			names = "-"
		}
		fmt.Fprintf(tw, "%s\t%d-%d\t%s\n", r.Field, r.Min, r.Max, names)
	}
	return tw.Flush()
}
