package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tebeka/atexit"

	"github.com/jcorbin/gowhitespace/internal/fileinput"
	"github.com/jcorbin/gowhitespace/internal/logio"
	"github.com/jcorbin/gowhitespace/internal/panicerr"
)

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	atexit.Register(func() { log.Close() })

	cmd, err := parseCommand(newFlagSet(os.Args[0]), os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		atexit.Exit(0)
	} else if err != nil {
		log.Errorf("%v", err)
		atexit.Exit(2)
	}
	cmd.stdin = os.Stdin
	cmd.stdout = os.Stdout
	cmd.stderr = os.Stderr
	cmd.log = &log

	reportError(&log, cmd.run(context.Background()))
	atexit.Exit(log.ExitCode())
}

// newFlagSet returns a flag set that reports parse errors, rather than
// exiting, so that main can exit through atexit.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

// reportError logs any non-nil err; a recovered panic also logs its stack.
func reportError(log *logio.Logger, err error) {
	log.ErrorIf(err)
	if stack := panicerr.PanicStack(err); stack != "" {
		log.Printf("STACK", "%s", stack)
	}
}

type command struct {
	Config
	mode string
	path string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logio.Logger
}

var errUsage = errors.New("usage: gowhitespace [flags] [run|list] <file>")

// parseCommand parses flags and positional arguments; settings from any
// -config file apply first, then any flags explicitly given.
func parseCommand(fs *flag.FlagSet, args []string) (cmd command, err error) {
	var (
		configPath string
		flags      Config
	)
	fs.StringVar(&configPath, "config", "", "read settings from a YAML file")
	flags.bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cmd, err
	}

	if configPath != "" {
		if cmd.Config, err = LoadConfig(configPath); err != nil {
			return cmd, err
		}
		cmd.Config.override(fs, flags)
	} else {
		cmd.Config = flags
	}

	switch args := fs.Args(); len(args) {
	case 1:
		cmd.mode, cmd.path = "run", args[0]
	case 2:
		cmd.mode, cmd.path = args[0], args[1]
	default:
		return cmd, errUsage
	}
	switch cmd.mode {
	case "run", "list":
	default:
		return cmd, fmt.Errorf("unknown command %q; %w", cmd.mode, errUsage)
	}
	return cmd, nil
}

func (cmd command) run(ctx context.Context) error {
	src, err := os.ReadFile(cmd.path)
	if err != nil {
		return err
	}

	if cmd.mode == "list" {
		prog, err := Parse(string(src))
		if err != nil {
			return fmt.Errorf("%v: %w", cmd.path, err)
		}
		return listProgram(cmd.stdout, prog)
	}

	prog, err := Compile(string(src), cmd.Strict)
	if err != nil {
		return fmt.Errorf("%v: %w", cmd.path, err)
	}

	opts := append(cmd.options(), WithOutput(cmd.stdout))
	if cmd.stdin != nil {
		opts = append(opts, WithInput(fileinput.Named("stdin", cmd.stdin)))
	}
	if cmd.Trace && cmd.log != nil {
		opts = append(opts, WithLogf(cmd.log.Leveledf("TRACE")))
	}
	vm := New(prog, opts...)
	defer vm.Close()

	if cmd.Timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	err = vm.Run(ctx)
	if err != nil && cmd.Dump && cmd.stderr != nil {
		vmDumper{vm: vm, out: cmd.stderr}.dump()
	}
	return err
}
