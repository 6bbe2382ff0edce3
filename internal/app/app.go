// Package app wires config, logging and the crontab commands together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"crontab/internal/cli"
	"crontab/internal/compat"
	"crontab/internal/config"
	"crontab/internal/lint"
	"crontab/internal/output"
	logx "crontab/pkg/logx"
)

// App holds process-wide state shared by the commands.
type App struct {
	stdout io.Writer
	stderr io.Writer

	// global flags
	cfgPath  string
	logLevel string

	cfg  *config.Config
	logs *logx.Service
	log  logx.Logger
}

func New(stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		log:    logx.NewConsole("warn"),
	}
}

// Run executes one command line and releases resources. Help output is not
// an error.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.Close()
	err := a.Root().Execute(ctx, args)
	if errors.Is(err, cli.ErrHelp) {
		return nil
	}
	return err
}

func (a *App) Close() error {
	if a.logs == nil {
		return nil
	}
	return a.logs.Close()
}

// setup loads the config file and starts logging. It runs after the global
// flags are parsed.
func (a *App) setup(context.Context) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if lvl := strings.TrimSpace(a.logLevel); lvl != "" {
		cfg.Logging.Level = strings.ToLower(lvl)
	}
	a.cfg = cfg

	logs, log := logx.NewService(cfg.LogConfig())
	a.logs = logs
	a.log = log.With(logx.String("comp", "app"))
	a.log.Debug("config loaded",
		logx.String("path", a.cfgPath),
		logx.String("format", cfg.Output.Format),
		logx.Bool("compat", cfg.Lint.Compat),
	)
	return nil
}

// format resolves a --format flag against the configured default.
func (a *App) format(flag string) (string, error) {
	if strings.TrimSpace(flag) == "" {
		return a.cfg.Output.Format, nil
	}
	return output.ParseFormat(flag)
}

func (a *App) linter(compatFlag, allowFlag bool) *lint.Linter {
	opts := lint.Options{
		AllowDescriptors: allowFlag || a.cfg.Lint.AllowDescriptors,
		Logger:           a.log,
	}
	if compatFlag || a.cfg.Lint.Compat {
		opts.Compat = compat.New(a.log)
	}
	return lint.New(opts)
}

// oneExpression checks that exactly one EXPR argument was given.
func oneExpression(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected exactly one EXPR argument, got %d (quote the expression)", cmd, len(args))
	}
	return args[0], nil
}
