// Package console is a line-oriented command shell over one universe.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/pkg/sequence"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	errQuit           = errors.New("quit")
)

// ScriptRunner runs a script file for the run command.
type ScriptRunner interface {
	DoFile(path string) error
}

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(c *Console, args []string) error
}

type Option func(*Console)

func WithPrompt(prompt string) Option {
	return func(c *Console) { c.prompt = prompt }
}

// WithHistory keeps the last n lines; 0 disables history.
func WithHistory(n int) Option {
	return func(c *Console) {
		if n >= 0 {
			c.historySize = n
		}
	}
}

func WithScripts(r ScriptRunner) Option {
	return func(c *Console) { c.scripts = r }
}

func WithLogger(l log.Log) Option {
	return func(c *Console) {
		if l != nil {
			c.log = l
		}
	}
}

type Console struct {
	factory     *factory.Factory
	out         io.Writer
	prompt      string
	history     *sequence.Queue[string]
	historySize int
	scripts     ScriptRunner
	commands    map[string]command
	log         log.Log
}

func New(f *factory.Factory, out io.Writer, opts ...Option) *Console {
	c := &Console{
		factory:     f,
		out:         out,
		prompt:      "> ",
		historySize: 100,
		log:         log.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = sequence.NewQueue[string](c.historySize)
	c.commands = builtinCommands()
	return c
}

// Run reads commands from in until EOF, quit or ctx is done. Command errors
// are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, c.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		err := c.Exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			c.log.Debug("command failed", log.Error(err))
		}
	}
}

// Exec runs a single command line. Blank lines and # comments do nothing.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil
	}
	c.remember(line)

	name, args := args[0], args[1:]
	cmd, ok := c.commands[name]
	if !ok {
		if s := suggest(name, c.commandNames()); s != "" {
			return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownCommand, name, s)
		}
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}
	return cmd.run(c, args)
}

// History returns remembered lines, oldest first.
func (c *Console) History() []string {
	return c.history.ToSlice()
}

func (c *Console) remember(line string) {
	if c.historySize == 0 {
		return
	}
	c.history.Enqueue(line)
	for c.history.Len() > c.historySize {
		c.history.Dequeue()
	}
}

func (c *Console) commandNames() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
