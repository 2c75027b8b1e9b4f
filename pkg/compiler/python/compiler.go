// Package python is the front door of the translator: it takes source text,
// runs it through the lexer, parser and emitter, and returns Java code
// together with the diagnostics collected on the way.
package python

import (
	"errors"
	"fmt"

	"github.com/agenthands/pyjava/pkg/compiler/emitter"
	"github.com/agenthands/pyjava/pkg/compiler/lexer"
	"github.com/agenthands/pyjava/pkg/compiler/parser"
	"github.com/agenthands/pyjava/pkg/compiler/symtab"
)

var (
	ErrSyntax      = errors.New("python syntax error")
	ErrUnsupported = errors.New("unsupported construct")
)

// Options control a Compiler.
// Strict rejects input that does not parse as Python, and fails on any
// construct translated only on a best-effort basis. SpacedPrint separates
// print arguments with a space, as Python does, instead of concatenating.
type Options struct {
	Strict      bool
	Indent      int
	SpacedPrint bool
}

type Result struct {
	Code        string
	Lines       []lexer.Line
	Diagnostics []emitter.Diagnostic
	Symbols     *symtab.Table
}

type Compiler struct {
	opts Options
}

func NewCompiler(opts Options) *Compiler {
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	return &Compiler{opts: opts}
}

// Compile translates src to the body of a Java main method.
// In default mode it only fails on internal errors; malformed lines are
// reported in Result.Diagnostics. In strict mode the partial result is
// returned along with the error.
func (c *Compiler) Compile(src string) (*Result, error) {
	if c.opts.Strict {
		findings, err := Audit(src)
		if err != nil {
			return nil, err
		}
		if len(findings) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, findings[0])
		}
	}

	lines := lexer.Tokenize(src)
	opts := []emitter.Option{emitter.WithIndent(c.opts.Indent)}
	if c.opts.SpacedPrint {
		opts = append(opts, emitter.WithPrintSeparator(emitter.SpacedSeparator))
	}
	e := emitter.New(opts...)
	out, err := e.Emit(parser.Parse(lines))
	if err != nil {
		return nil, err
	}

	res := &Result{
		Code:        out.Code,
		Lines:       lines,
		Diagnostics: out.Diagnostics,
		Symbols:     e.Symbols(),
	}
	if c.opts.Strict && len(out.Diagnostics) > 0 {
		return res, fmt.Errorf("%w: %s", ErrUnsupported, out.Diagnostics[0])
	}
	return res, nil
}
