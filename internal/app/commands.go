package app

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"crontab/internal/cli"
	"crontab/internal/compat"
	"crontab/internal/output"
	"crontab/internal/watch"
	"crontab/pkg/cronexpr"
	logx "crontab/pkg/logx"
)

const parseFailure = "This error happened while parsing the expression: %v\n"

// Root builds the command tree.
func (a *App) Root() *cli.Command {
	return &cli.Command{
		Name:    "crontab",
		Summary: "A simple crontab to make humans life easier",
		Usage:   "crontab [--config FILE] [--log-level LEVEL] <command> [flags]",
		Out:     a.stderr,
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("crontab", pflag.ContinueOnError)
			fs.StringVar(&a.cfgPath, "config", "", "config file (JSON or YAML)")
			fs.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
			return fs
		},
		Before: a.setup,
		Subcommands: []*cli.Command{
			a.validateCommand(),
			a.astextCommand(),
			a.fieldsCommand(),
			a.lintCommand(),
		},
	}
}

func (a *App) validateCommand() *cli.Command {
	var withCompat bool
	return &cli.Command{
		Name:    "validate",
		Summary: "Check if the given cron expr is valid",
		Usage:   "crontab validate [--compat] EXPR",
		Examples: []cli.Example{
			{Command: `crontab validate "*/15 9-17 * * 1-5"`},
			{Description: "also require the standard cron parser to accept it", Command: `crontab validate --compat "0 0 1 JAN *"`},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
			fs.BoolVar(&withCompat, "compat", false, "cross-check with the standard cron parser")
			return fs
		},
		Run: func(_ context.Context, args []string) error {
			expr, err := oneExpression("validate", args)
			if err != nil {
				return err
			}
			e, err := cronexpr.Parse(expr)
			if err != nil {
				a.log.Debug("rejected", logx.String("expr", expr), logx.Err(err))
				fmt.Fprintf(a.stdout, parseFailure, err)
				return &cli.ExitError{Code: 1}
			}
			if withCompat || a.cfg.Lint.Compat {
				if err := compat.New(a.log).CheckEntry(e); err != nil {
					fmt.Fprintf(a.stdout, "warning: %v\n", err)
					return &cli.ExitError{Code: 1}
				}
			}
			fmt.Fprintf(a.stdout, "The expression %s is valid\n", expr)
			return nil
		},
	}
}

func (a *App) astextCommand() *cli.Command {
	var format string
	return &cli.Command{
		Name:        "astext",
		Summary:     "Displays a potential text representation of the cron expression",
		Usage:       "crontab astext [--format text|json|yaml] EXPR",
		Description: "Describe a cron expression in English, or print its parsed structure as JSON or YAML.",
		Examples: []cli.Example{
			{Command: `crontab astext "23 0-20/2 * * *"`},
			{Command: `crontab astext --format yaml "5 4 * * SUN"`},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("astext", pflag.ContinueOnError)
			fs.StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
			return fs
		},
		Run: func(_ context.Context, args []string) error {
			expr, err := oneExpression("astext", args)
			if err != nil {
				return err
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}
			e, err := cronexpr.Parse(expr)
			if err != nil {
				fmt.Fprintf(a.stdout, parseFailure, err)
				return &cli.ExitError{Code: 1}
			}
			return output.Write(a.stdout, f, output.Describe(expr, e))
		},
	}
}

func (a *App) fieldsCommand() *cli.Command {
	var format string
	return &cli.Command{
		Name:    "fields",
		Summary: "List the five fields with their ranges and names",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("fields", pflag.ContinueOnError)
			fs.StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
			return fs
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("fields: unexpected argument %q", args[0])
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}
			return output.Write(a.stdout, f, output.Rules())
		},
	}
}

func (a *App) lintCommand() *cli.Command {
	var (
		format      string
		withCompat  bool
		descriptors bool
		verbose     bool
		follow      bool
	)
	return &cli.Command{
		Name:    "lint",
		Summary: "Check every schedule line of a crontab file",
		Usage:   "crontab lint [flags] FILE",
		Examples: []cli.Example{
			{Command: "crontab lint -v /etc/crontab"},
			{Description: "re-check on every save", Command: "crontab lint --watch ./crontab"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("lint", pflag.ContinueOnError)
			fs.StringVarP(&format, "format", "f", "", "output format: text, json or yaml (default from config)")
			fs.BoolVar(&withCompat, "compat", false, "cross-check with the standard cron parser")
			fs.BoolVar(&descriptors, "allow-descriptors", false, "accept @daily-style lines without a warning")
			fs.BoolVarP(&verbose, "verbose", "v", false, "list every entry with its description")
			fs.BoolVarP(&follow, "watch", "w", false, "re-lint whenever the file changes")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("lint: expected exactly one FILE argument, got %d", len(args))
			}
			path := args[0]
			f, err := a.format(format)
			if err != nil {
				return err
			}
			l := a.linter(withCompat, descriptors)

			if !follow {
				rep, err := l.File(path)
				if err != nil {
					return err
				}
				if err := output.WriteReport(a.stdout, f, rep, verbose); err != nil {
					return err
				}
				if err := rep.Err(); err != nil {
					a.log.Debug("lint found errors", logx.String("path", path), logx.Err(err))
					return &cli.ExitError{Code: 1}
				}
				return nil
			}

			debounce, err := a.cfg.WatchDebounce()
			if err != nil {
				return err
			}
			w := &watch.Watcher{
				Path:     path,
				Debounce: debounce,
				MaxRate:  a.cfg.Watch.MaxRate,
				Logger:   a.log,
				OnChange: func(_ context.Context, content []byte) error {
					rep, err := l.Lint(path, bytes.NewReader(content))
					if err != nil {
						return err
					}
					return output.WriteReport(a.stdout, f, rep, verbose)
				},
			}
			a.log.Info("watching", logx.String("path", path), logx.Duration("debounce", debounce))
			return w.Run(ctx)
		},
	}
}
