// Package cli is a small pflag-based command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// ErrHelp is returned when help was requested and printed.
var ErrHelp = errors.New("help requested")

// Command is a CLI command or a group of subcommands.
type Command struct {
	// Name as typed by the user, e.g. "validate".
	Name string
	// Summary is the one-liner shown in the parent's command list.
	Summary string
	// Description is shown in the command's own help; Summary if empty.
	Description string
	// Usage overrides the synthesized usage line.
	Usage    string
	Examples []Example

	// Flags returns a fresh flag set. It is called once per parse and again
	// for help output. Nil means no flags.
	Flags func() *pflag.FlagSet

	// Before runs after this command's own flags are parsed and before a
	// subcommand is dispatched.
	Before func(ctx context.Context) error

	Subcommands []*Command

	// Run gets the positional args left after flag parsing.
	Run func(ctx context.Context, args []string) error

	// Out receives help output. Inherited from the parent; stderr by default.
	Out io.Writer

	parent *Command
}

type Example struct {
	Description string
	Command     string
}

// Execute parses args and dispatches to a subcommand or Run.
func (c *Command) Execute(ctx context.Context, args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.out())
		return ErrHelp
	}

	if c.Flags != nil {
		fs := c.Flags()
		fs.SetOutput(io.Discard)
		// flags of a group end at the first subcommand name
		fs.SetInterspersed(len(c.Subcommands) == 0)
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.PrintHelp(c.out())
				return ErrHelp
			}
			return c.flagError(err, args)
		}
		args = fs.Args()
	}

	if c.Before != nil {
		if err := c.Before(ctx); err != nil {
			return err
		}
	}

	if len(c.Subcommands) > 0 && len(args) > 0 {
		name := args[0]
		if isHelpFlag(name) {
			c.PrintHelp(c.out())
			return ErrHelp
		}
		for _, sub := range c.Subcommands {
			if sub.Name == name {
				sub.parent = c
				return sub.Execute(ctx, args[1:])
			}
		}
		if c.Run == nil {
			if s := suggestCommand(name, c.Subcommands); s != "" {
				return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.", name, s, c.fullName())
			}
			return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
		}
	}

	if c.Run != nil {
		return c.Run(ctx, args)
	}

	c.PrintHelp(c.out())
	return fmt.Errorf("%s: subcommand required", c.fullName())
}

func (c *Command) flagError(err error, args []string) error {
	msg := err.Error()
	if strings.Contains(msg, "unknown flag") || strings.Contains(msg, "unknown shorthand flag") {
		if s := suggestFlag(args, c.Flags()); s != "" {
			return fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.", msg, s, c.fullName())
		}
	}
	return fmt.Errorf("%s\n\nRun '%s --help' for usage.", msg, c.fullName())
}

// PrintHelp writes the command's help text to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s [flags] <command>\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		if defaults := c.Flags().FlagUsages(); defaults != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, ex := range c.Examples {
			if ex.Description != "" {
				fmt.Fprintf(w, "  # %s\n", ex.Description)
			}
			fmt.Fprintf(w, "  %s\n", ex.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func (c *Command) out() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.Out != nil {
			return cmd.Out
		}
	}
	return os.Stderr
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
