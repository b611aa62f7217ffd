// pyinit resolves an interpreter startup configuration the way a Python
// launcher does and then echoes the selected input.
//
// Usage:
//
//	pyinit [option] ... [-c cmd | -m mod | file | -] [arg] ...
//
// Configuration is merged from compiled-in defaults, PYTHON* environment
// variables and the command line, in that order. -X showconfig prints the
// result as YAML. Input is read through the interactive line reader: the
// -c text, a script file, redirected stdin, or an interactive session
// when stdin is a terminal or -i is given.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/dkoosis/pyinit/internal/config"
	"github.com/dkoosis/pyinit/internal/design"
	"github.com/dkoosis/pyinit/internal/lineedit"
	"github.com/dkoosis/pyinit/internal/readline"
	"github.com/dkoosis/pyinit/internal/repl"
	"github.com/dkoosis/pyinit/internal/version"
)

const prog = "pyinit"

// exitInterrupted is the status reported after an unhandled interrupt.
const exitInterrupted = 130

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.LookupEnv))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, lookupEnv config.LookupFunc) int {
	theme := design.SelectTheme(lookupEnv, stderr)
	logger := log.NewWithOptions(stderr, log.Options{Prefix: prog, Level: log.WarnLevel})

	cfg, st := config.NewBuilder(config.WithLookupEnv(lookupEnv), config.WithLogger(logger)).Build(args)
	switch {
	case st.IsExit():
		if cfg.HelpTopic != config.HelpNone {
			fmt.Fprint(stdout, design.Help(cfg.HelpTopic, prog, theme))
		} else {
			fmt.Fprintln(stdout, version.String(prog, cfg.VersionVerbosity))
		}
		return st.ExitCode()
	case st.IsError():
		fmt.Fprint(stderr, design.ErrorLine(prog, st.Message, theme))
		return st.ExitCode()
	}
	if cfg.Verbose > 0 {
		logger.SetLevel(log.DebugLevel)
	}
	logger.Debug("configuration resolved", "argv", cfg.Argv, "use_environment", cfg.UseEnvironment)

	if _, ok := cfg.XOption("showconfig"); ok {
		out, err := cfg.YAML()
		if err != nil {
			fmt.Fprintf(stderr, "%s: rendering configuration: %v\n", prog, err)
			return 1
		}
		_, _ = stdout.Write(out)
		return 0
	}

	stdinTTY, stdoutTTY := isTerminal(stdin), isTerminal(stdout)

	var out io.Writer = stdout
	if cfg.BufferedStdio.IsTrue() && !stdoutTTY {
		bw := bufio.NewWriter(stdout)
		defer bw.Flush()
		out = bw
	}

	intr := readline.NewInterrupts()
	stopNotify := intr.Notify()
	defer stopNotify()

	in := readline.NewInput(intr.Wrap(stdin))
	a := &app{
		cfg:    cfg,
		out:    out,
		stderr: stderr,
		stdin:  in,
		reader: newReader(stdin, in, stdinTTY && stdoutTTY, intr, stderr, theme, logger),
		theme:  theme,
		logger: logger,
	}
	return a.run(context.Background(), stdinTTY)
}

type app struct {
	cfg    config.RuntimeConfig
	out    io.Writer
	stderr io.Writer
	stdin  *readline.Input
	reader *readline.Reader
	theme  design.Theme
	logger *log.Logger
}

func (a *app) run(ctx context.Context, stdinTTY bool) int {
	echo := repl.Echo{Out: a.out}
	var err error
	switch {
	case a.cfg.RunCommand != "":
		_, err = echo.Eval(ctx, a.cfg.RunCommand)
	case a.cfg.RunModule != "":
		_, err = fmt.Fprintln(a.out, strings.Join(append([]string{"-m", a.cfg.RunModule}, a.cfg.Argv[1:]...), " "))
	case a.cfg.RunFilename != "":
		f, openErr := os.Open(a.cfg.RunFilename)
		if openErr != nil {
			fmt.Fprintf(a.stderr, "%s: can't open file %q: %v\n", prog, a.cfg.RunFilename, openErr)
			return 2
		}
		defer f.Close()
		err = a.copyLines(ctx, readline.NewInput(f))
	case !stdinTTY:
		err = a.copyLines(ctx, a.stdin)
	}
	if code, done := a.report(err); done {
		return code
	}

	if !a.cfg.Interactive(stdinTTY) {
		return 0
	}
	s := &repl.Session{
		Reader: a.reader,
		Eval:   echo,
		In:     a.stdin,
		Out:    a.out,
		Errors: a.stderr,
		Banner: design.Banner(version.String(prog, 1), a.theme),
		Quiet:  a.cfg.Quiet > 0,
		Logger: a.logger,
	}
	code, _ := a.report(s.Run(ctx))
	return code
}

// copyLines echoes in to the output one line at a time, without prompts.
func (a *app) copyLines(ctx context.Context, in *readline.Input) error {
	id := readline.NewThreadID()
	skip := a.cfg.SkipFirstLine > 0
	for {
		line, err := a.reader.ReadLine(ctx, id, in, a.out, "")
		if err != nil || line == "" {
			return err
		}
		if skip {
			skip = false
			continue
		}
		if _, err := io.WriteString(a.out, line); err != nil {
			return err
		}
	}
}

// report prints err and returns the exit code. done is false when there
// was nothing to report.
func (a *app) report(err error) (code int, done bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, readline.ErrInterrupted):
		fmt.Fprintln(a.stderr, "KeyboardInterrupt")
		return exitInterrupted, true
	default:
		fmt.Fprintf(a.stderr, "%s: %v\n", prog, err)
		return 1, true
	}
}

// newReader returns a reader that edits stdin lines in the terminal when
// both stdin and stdout are terminals and reads plain lines otherwise.
func newReader(stdin io.Reader, stdinInput *readline.Input, terminal bool, intr *readline.Interrupts, stderr io.Writer, theme design.Theme, logger *log.Logger) *readline.Reader {
	editorOpts := []lineedit.Option{lineedit.WithPromptStyle(theme.Prompt), lineedit.WithLogger(logger)}
	if f, ok := stdin.(*os.File); ok && terminal {
		editorOpts = append(editorOpts, lineedit.WithTTY(f))
	}
	return readline.New(
		readline.WithBackend(lineedit.New(editorOpts...)),
		readline.WithInterruptChecker(intr),
		readline.WithPromptWriter(stderr),
		readline.WithLogger(logger),
		readline.WithTerminalCheck(func(in *readline.Input, _ io.Writer) bool {
			return terminal && in == stdinInput
		}),
	)
}

// isTerminal reports whether v is a file attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
