// Package shell is the execution shell around the translator: it reads a
// source file, converts it, writes the Java class and optionally compiles
// and runs it.
package shell

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/agenthands/pyjava/internal/diag"
	"github.com/agenthands/pyjava/pkg/compiler/emitter"
	"github.com/agenthands/pyjava/pkg/compiler/lexer"
	"github.com/agenthands/pyjava/pkg/compiler/python"
)

// Translator converts source text to a Java method body.
type Translator interface {
	Compile(src string) (*python.Result, error)
}

// Storage reads sources and writes generated files.
type Storage interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) (string, error)
}

// Toolchain compiles and runs generated classes.
type Toolchain interface {
	Compile(ctx context.Context, classDir, source string) error
	Execute(ctx context.Context, classDir, class string, stdout, stderr io.Writer) error
}

type Options struct {
	ClassName string
	OutDir    string
}

// Artifact describes one generated Java file.
type Artifact struct {
	Source      string
	JavaPath    string
	ClassDir    string
	Class       string
	Code        string
	Diagnostics []emitter.Diagnostic
}

type Shell struct {
	translator Translator
	storage    Storage
	toolchain  Toolchain
	log        *diag.Logger
	opts       Options
}

func New(t Translator, s Storage, tc Toolchain, log *diag.Logger, opts Options) *Shell {
	if log == nil {
		log = diag.Nop()
	}
	if opts.ClassName == "" {
		opts.ClassName = "Main"
	}
	if opts.OutDir == "" {
		opts.OutDir = "out"
	}
	return &Shell{translator: t, storage: s, toolchain: tc, log: log, opts: opts}
}

func (s *Shell) read(path string) (string, error) {
	tm := s.log.Start("read", "read source", "path", path)
	data, err := s.storage.ReadFile(path)
	if err != nil {
		tm.Fail(err)
		return "", err
	}
	tm.Finish("source read", len(data))
	return string(data), nil
}

// Translate reads path and converts it. A read failure stops before the
// translator sees any input.
func (s *Shell) Translate(path string) (*python.Result, error) {
	src, err := s.read(path)
	if err != nil {
		return nil, err
	}
	tm := s.log.Start("compile", "translate source", "path", path)
	res, err := s.translator.Compile(src)
	if err != nil {
		tm.Fail(err)
		return nil, err
	}
	for _, d := range res.Diagnostics {
		s.log.Warn("compile", d.Msg, "path", path, "line", d.Line, "indent", d.Indent, "kind", d.Kind.String())
	}
	tm.Finish("translated", len(res.Lines), "diagnostics", len(res.Diagnostics))
	return res, nil
}

// Build translates path and writes <OutDir>/<Class>.java.
func (s *Shell) Build(ctx context.Context, path string) (*Artifact, error) {
	return s.build(ctx, path, s.opts.OutDir)
}

func (s *Shell) build(ctx context.Context, path, dir string) (*Artifact, error) {
	res, err := s.Translate(path)
	if err != nil {
		return nil, err
	}
	code := python.Wrap(s.opts.ClassName, res.Code)
	target := filepath.Join(dir, s.opts.ClassName+".java")

	tm := s.log.Start("write", "write java source", "path", target)
	written, err := s.storage.WriteFile(ctx, target, []byte(code))
	if err != nil {
		tm.Fail(err)
		return nil, err
	}
	tm.Finish("java source written", len(code))

	return &Artifact{
		Source:      path,
		JavaPath:    written,
		ClassDir:    filepath.Dir(written),
		Class:       s.opts.ClassName,
		Code:        code,
		Diagnostics: res.Diagnostics,
	}, nil
}

// Run builds path into a directory private to this run, compiles it and
// executes the class, streaming its output to stdout and stderr.
func (s *Shell) Run(ctx context.Context, path string, stdout, stderr io.Writer) (*Artifact, error) {
	art, err := s.build(ctx, path, filepath.Join(s.opts.OutDir, s.log.RunID()))
	if err != nil {
		return nil, err
	}

	tm := s.log.Start("javac", "compile java", "path", art.JavaPath)
	if err := s.toolchain.Compile(ctx, art.ClassDir, art.JavaPath); err != nil {
		tm.Fail(err)
		return art, err
	}
	tm.Finish("java compiled", 1)

	tm = s.log.Start("java", "execute class", "class", art.Class)
	if err := s.toolchain.Execute(ctx, art.ClassDir, art.Class, stdout, stderr); err != nil {
		tm.Fail(err)
		return art, err
	}
	tm.Finish("class executed", 1)
	return art, nil
}

// Tokens writes the token dump of path, one source line per output line.
func (s *Shell) Tokens(path string, w io.Writer) error {
	src, err := s.read(path)
	if err != nil {
		return err
	}
	for _, line := range lexer.Tokenize(src) {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

// Check validates path as Python and lists every construct the translator
// handles only on a best-effort basis. It fails with python.ErrUnsupported
// when anything is listed.
func (s *Shell) Check(path string, w io.Writer) error {
	src, err := s.read(path)
	if err != nil {
		return err
	}
	findings, err := python.Audit(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for _, f := range findings {
		fmt.Fprintf(w, "%s:%d: %s\n", path, f.Line, f.Construct)
	}
	res, err := s.translator.Compile(src)
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(w, "%s:%d: %s\n", path, d.Line, d.Msg)
	}
	if n := len(findings) + len(res.Diagnostics); n > 0 {
		return fmt.Errorf("%w: %d issue(s) in %s", python.ErrUnsupported, n, path)
	}
	return nil
}
