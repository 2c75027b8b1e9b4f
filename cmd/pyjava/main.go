package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/agenthands/pyjava/internal/config"
	"github.com/agenthands/pyjava/internal/di"
	"github.com/agenthands/pyjava/internal/diag"
	"github.com/agenthands/pyjava/pkg/compiler/python"
)

const usageText = `Usage: pyjava <command> [flags] [file]

Commands:
  build   translate file to <out>/<Class>.java (-o - prints to stdout)
  run     translate, compile with javac and run with java
  tokens  print the token dump of file
  check   validate file as Python and list unsupported constructs
  repl    translate statements interactively

Flags:
`

type cliFlags struct {
	configPath  string
	outDir      string
	className   string
	strict      bool
	spacedPrint bool
	indent      int
	timeout     time.Duration
	logLevel    string
	printConfig bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newFlagSet(name string, f *cliFlags, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to pyjava.toml")
	fs.StringVar(&f.outDir, "o", "", "output directory, or - for stdout")
	fs.StringVar(&f.className, "class", "", "generated Java class name")
	fs.BoolVar(&f.strict, "strict", false, "fail on constructs outside the supported subset")
	fs.BoolVar(&f.spacedPrint, "spaced-print", false, "separate print arguments with a space")
	fs.IntVar(&f.indent, "indent", 4, "spaces per block level in generated code")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "limit for each javac/java invocation")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var f cliFlags
	if len(args) == 0 {
		newFlagSet("pyjava", &f, stderr).Usage()
		return 2
	}
	cmd, rest := args[0], args[1:]
	fs := newFlagSet(cmd, &f, stderr)
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}

	file, err := parseArgs(fs, rest)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(fs, &f)
	if err != nil {
		fmt.Fprintln(stderr, "pyjava:", err)
		return diag.ExitCode(err)
	}
	if f.printConfig {
		if err := config.Encode(stdout, cfg); err != nil {
			fmt.Fprintln(stderr, "pyjava:", err)
			return 1
		}
		return 0
	}

	c := di.NewContainer(cfg, stderr)
	defer c.Shutdown()

	err = dispatch(ctx, c, cmd, file, f.outDir == "-", stdout, stderr)
	if err != nil {
		if log, lerr := c.Logger(); lerr == nil {
			log.Error(cmd, err)
		}
		fmt.Fprintln(stderr, "pyjava:", err)
	}
	return diag.ExitCode(err)
}

// parseArgs accepts flags before or after the file argument.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() == 0 {
		return "", nil
	}
	file := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return "", fmt.Errorf("%w: unexpected arguments", diag.ErrUsage)
	}
	return file, nil
}

// loadConfig layers the file, the environment and explicitly set flags.
func loadConfig(fs *flag.FlagSet, f *cliFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg, os.Environ()); err != nil {
		return cfg, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "o":
			if f.outDir != "-" {
				cfg.Output.Dir = f.outDir
			}
		case "class":
			cfg.Output.ClassName = f.className
		case "strict":
			cfg.Compiler.Strict = f.strict
		case "spaced-print":
			cfg.Compiler.SpacedPrint = f.spacedPrint
		case "indent":
			cfg.Output.Indent = f.indent
		case "timeout":
			cfg.Java.Timeout = f.timeout.String()
		case "log-level":
			cfg.Logging.Level = f.logLevel
		}
	})
	return cfg, cfg.Validate()
}

func dispatch(ctx context.Context, c *di.Container, cmd, file string, toStdout bool, stdout, stderr io.Writer) error {
	if cmd == "repl" {
		log, err := c.Logger()
		if err != nil {
			return err
		}
		return runRepl(c.Config(), log, stdout, stderr)
	}

	switch cmd {
	case "build", "run", "tokens", "check":
	default:
		return fmt.Errorf("%w: unknown command %q", diag.ErrUsage, cmd)
	}
	if file == "" {
		return fmt.Errorf("%w: %s needs a source file", diag.ErrUsage, cmd)
	}
	sh, err := c.Shell()
	if err != nil {
		return err
	}

	switch cmd {
	case "build":
		if toStdout {
			res, err := sh.Translate(file)
			if err != nil {
				return err
			}
			printDiagnostics(stderr, file, res)
			_, err = io.WriteString(stdout, python.Wrap(c.Config().Output.ClassName, res.Code))
			return err
		}
		art, err := sh.Build(ctx, file)
		if err != nil {
			return err
		}
		printDiagnostics(stderr, file, &python.Result{Diagnostics: art.Diagnostics})
		fmt.Fprintln(stdout, art.JavaPath)
		return nil
	case "run":
		_, err := sh.Run(ctx, file, stdout, stderr)
		return err
	case "tokens":
		return sh.Tokens(file, stdout)
	default:
		if err := sh.Check(file, stdout); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: ok\n", file)
		return nil
	}
}

func printDiagnostics(w io.Writer, file string, res *python.Result) {
	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "%s:%d: warning: %s\n", file, d.Line, d.Msg)
	}
}
