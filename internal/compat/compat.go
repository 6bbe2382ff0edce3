// Package compat cross-checks expressions against the robfig/cron standard
// five-field parser.
package compat

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"crontab/pkg/cronexpr"
	logx "crontab/pkg/logx"
)

// standardFields matches the cronexpr field set: no seconds, no descriptors.
const standardFields = cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow

// Verdict is the outcome of parsing one expression with both parsers.
type Verdict struct {
	Expression string
	// Ours is the cronexpr parse error, nil when accepted.
	Ours error
	// Standard is the robfig/cron parse error, nil when accepted.
	Standard error
}

// Agree reports whether both parsers accepted, or both rejected.
func (v Verdict) Agree() bool { return (v.Ours == nil) == (v.Standard == nil) }

// String describes a disagreement; agreeing verdicts yield "".
func (v Verdict) String() string {
	switch {
	case v.Agree():
		return ""
	case v.Ours == nil:
		return fmt.Sprintf("accepted here but rejected by the standard parser: %v", v.Standard)
	default:
		return fmt.Sprintf("rejected here but accepted by the standard parser: %v", v.Ours)
	}
}

// Checker wraps a robfig/cron parser. The zero value is not usable; call New.
type Checker struct {
	parser cron.Parser
	log    logx.Logger
}

func New(log logx.Logger) *Checker {
	return &Checker{
		parser: cron.NewParser(standardFields),
		log:    log.With(logx.String("comp", "compat")),
	}
}

// Check parses expression with both parsers.
func (c *Checker) Check(expression string) Verdict {
	v := Verdict{Expression: expression}
	_, v.Ours = cronexpr.Parse(expression)
	_, v.Standard = c.parser.Parse(strings.TrimSpace(expression))
	if !v.Agree() {
		c.log.Debug("parsers disagree",
			logx.String("expr", expression),
			logx.Err(v.Ours),
			logx.Any("standard", errString(v.Standard)),
		)
	}
	return v
}

// CheckEntry verifies a parsed entry's canonical form against the standard
// parser.
func (c *Checker) CheckEntry(e cronexpr.Entry) error {
	expr := e.Expression()
	if _, err := c.parser.Parse(expr); err != nil {
		return fmt.Errorf("standard parser rejects %q: %w", expr, err)
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
