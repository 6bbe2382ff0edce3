package output

import (
	"fmt"
	"io"

	"crontab/internal/lint"
)

// WriteReport prints a lint report. verbose adds every entry to the text
// form; JSON and YAML always carry the full report.
func WriteReport(w io.Writer, format string, rep *lint.Report, verbose bool) error {
	if format == Text || format == "" {
		return reportText{rep: rep, verbose: verbose}.WriteText(w)
	}
	return Write(w, format, rep)
}

type reportText struct {
	rep     *lint.Report
	verbose bool
}

func (r reportText) WriteText(w io.Writer) error {
	if r.verbose {
		for _, e := range r.rep.Entries {
			what := e.Description
			if e.Descriptor != "" {
				what = e.Descriptor
			}
			if _, err := fmt.Fprintf(w, "line %d: %s: %s\n", e.Line, what, e.Command); err != nil {
				return err
			}
		}
	}
	for _, d := range r.rep.Diagnostics {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, r.rep.Summary())
	return err
}
