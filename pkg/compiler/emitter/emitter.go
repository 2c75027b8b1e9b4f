// Package emitter is the block converter: it walks decoded statements in
// source order, keeps a stack of open blocks keyed by indentation, and
// writes the equivalent brace-delimited Java statements.
package emitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/pyjava/pkg/compiler/ast"
	"github.com/agenthands/pyjava/pkg/compiler/lexer"
	"github.com/agenthands/pyjava/pkg/compiler/parser"
	"github.com/agenthands/pyjava/pkg/compiler/rewrite"
	"github.com/agenthands/pyjava/pkg/compiler/symtab"
)

var ErrNilProgram = errors.New("emitter: nil program")

// FrameKind tags what opened a block.
type FrameKind uint8

const (
	FrameConditional FrameKind = iota
	FrameCountedLoop
	FrameConditionalLoop
)

func (k FrameKind) String() string {
	switch k {
	case FrameCountedLoop:
		return "counted-loop"
	case FrameConditionalLoop:
		return "conditional-loop"
	default:
		return "conditional"
	}
}

// Frame is one open block and the indentation of the line that opened it.
type Frame struct {
	Indent int
	Kind   FrameKind
}

// Diagnostic reports a line that was translated on a best-effort basis.
type Diagnostic struct {
	Line   int
	Indent int
	Kind   ast.Kind
	Msg    string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d (indent %d): %s", d.Line, d.Indent, d.Msg)
}

// Output is the result of one Emit call.
type Output struct {
	Code        string
	Diagnostics []Diagnostic
}

// Separators placed between print arguments. ConcatSeparator is plain
// string concatenation; SpacedSeparator matches Python's output.
const (
	ConcatSeparator = " + "
	SpacedSeparator = ` + " " + `
)

type Option func(*Emitter)

// WithIndent sets how many spaces each open block adds to emitted lines.
// Zero emits flat code.
func WithIndent(n int) Option {
	return func(e *Emitter) {
		if n >= 0 {
			e.indent = n
		}
	}
}

// WithPrintSeparator sets the text joining rewritten print arguments.
func WithPrintSeparator(sep string) Option {
	return func(e *Emitter) {
		if sep != "" {
			e.printSep = sep
		}
	}
}

// WithSymbols makes the emitter record variable types in t instead of a
// private table. Sessions use it to keep declarations across snippets.
func WithSymbols(t *symtab.Table) Option {
	return func(e *Emitter) {
		if t != nil {
			e.symbols = t
		}
	}
}

// Emitter holds the state of one conversion run. It is not safe for
// concurrent use.
type Emitter struct {
	frames   []Frame
	symbols  *symtab.Table
	indent   int
	printSep string
	out      strings.Builder
	diags    []Diagnostic
}

func New(opts ...Option) *Emitter {
	e := &Emitter{symbols: symtab.New(), printSep: ConcatSeparator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Convert tokenized lines straight to flat Java code.
func Convert(lines []lexer.Line) string {
	out, _ := New().Emit(parser.Parse(lines))
	return out.Code
}

// Emit translates prog and closes every block left open at the end.
// Frames, output and diagnostics are reset first; the symbol table is kept.
func (e *Emitter) Emit(prog *ast.Program) (*Output, error) {
	if prog == nil {
		return nil, ErrNilProgram
	}
	e.frames = e.frames[:0]
	e.out.Reset()
	e.diags = nil

	for _, stmt := range prog.Statements {
		e.Step(stmt)
	}
	e.Finish()

	return &Output{Code: e.out.String(), Diagnostics: e.diags}, nil
}

// Frames returns a copy of the open block stack, bottom first.
func (e *Emitter) Frames() []Frame {
	out := make([]Frame, len(e.frames))
	copy(out, e.frames)
	return out
}

func (e *Emitter) Symbols() *symtab.Table { return e.symbols }

// Step translates a single statement.
func (e *Emitter) Step(stmt ast.Statement) {
	ind := stmt.Line().Indent

	switch s := stmt.(type) {
	case *ast.CommentStmt:
		e.line("// " + s.Text)
		return
	case *ast.ElifStmt:
		e.chain(stmt, "else if ("+rewrite.Rewrite(s.Condition)+") {")
		return
	case *ast.ElseStmt:
		e.chain(stmt, "else {")
		return
	}

	e.closeFrom(ind)

	switch s := stmt.(type) {
	case *ast.IfStmt:
		e.line("if (" + rewrite.Rewrite(s.Condition) + ") {")
		e.push(ind, FrameConditional)
	case *ast.ForStmt:
		e.forLoop(s)
	case *ast.WhileStmt:
		e.whileLoop(s)
	case *ast.PrintStmt:
		e.print(s)
	case *ast.AssignStmt:
		e.assign(s)
	case *ast.BranchStmt:
		e.line(s.Keyword + ";")
	case *ast.PassStmt:
		e.line(";")
	case *ast.UnsupportedStmt:
		e.report(stmt, "unsupported construct: "+s.Keyword)
		e.line(terminate(s.Text))
	case *ast.ExprStmt:
		e.line(terminate(rewrite.Rewrite(s.Text)))
	default:
		e.report(stmt, "unhandled statement kind "+stmt.Kind().String())
	}
}

// Finish closes every remaining frame, innermost first.
func (e *Emitter) Finish() {
	for len(e.frames) > 0 {
		e.pop()
		e.line("}")
	}
}

// closeFrom closes frames opened at indent ind or deeper.
func (e *Emitter) closeFrom(ind int) {
	for len(e.frames) > 0 && e.frames[len(e.frames)-1].Indent >= ind {
		e.pop()
		e.line("}")
	}
}

// chain continues a conditional with elif/else. Deeper frames are closed;
// a Conditional at the same indent is closed on the header line itself.
func (e *Emitter) chain(stmt ast.Statement, header string) {
	ind := stmt.Line().Indent
	for len(e.frames) > 0 && e.frames[len(e.frames)-1].Indent > ind {
		e.pop()
		e.line("}")
	}

	top, ok := e.top()
	switch {
	case ok && top.Indent == ind && top.Kind == FrameConditional:
		e.pop()
		e.line("} " + header)
	case ok && top.Indent == ind:
		e.pop()
		e.line("}")
		e.report(stmt, stmt.Kind().String()+" follows a "+top.Kind.String()+", not a conditional")
		e.line(header)
	default:
		e.report(stmt, stmt.Kind().String()+" without an open conditional")
		e.line(header)
	}
	e.push(ind, FrameConditional)
}

func (e *Emitter) forLoop(s *ast.ForStmt) {
	if s.Malformed != "" {
		e.report(s, s.Malformed)
	}

	start, step := "0", "1"
	end, hasEnd := "", false
	switch len(s.Args) {
	case 1:
		end, hasEnd = s.Args[0], true
	case 2:
		start, end, hasEnd = s.Args[0], s.Args[1], true
	case 3:
		start, end, step, hasEnd = s.Args[0], s.Args[1], s.Args[2], true
	}
	start = rewrite.Rewrite(start)
	end = rewrite.Optional(end, hasEnd)
	step = rewrite.Rewrite(step)

	v := s.Var
	if e.symbols.Declare(v, symtab.TypeInt) {
		e.line("int " + v + ";")
	}
	e.line(v + " = " + start + ";")
	switch {
	case step == "1":
		e.line(fmt.Sprintf("for (; %s < %s; %s++) {", v, end, v))
	case isNegativeLiteral(step):
		e.line(fmt.Sprintf("for (; %s > %s; %s += %s) {", v, end, v, step))
	default:
		e.line(fmt.Sprintf("for (; %s < %s; %s += %s) {", v, end, v, step))
	}
	e.push(s.Indent(), FrameCountedLoop)
}

func (e *Emitter) whileLoop(s *ast.WhileStmt) {
	cond := rewrite.Rewrite(s.Condition)
	if s.Var != "" {
		switch {
		case cond == "true" || cond == "false":
		case e.isBoolean(s.Var):
			cond = s.Var
		default:
			cond = s.Var + " != 0"
		}
	}
	e.line("while (" + cond + ") {")
	e.push(s.Indent(), FrameConditionalLoop)
}

func (e *Emitter) print(s *ast.PrintStmt) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = rewrite.Rewrite(a)
	}
	e.line("System.out.println(" + strings.Join(args, e.printSep) + ");")
}

func (e *Emitter) assign(s *ast.AssignStmt) {
	value := rewrite.Rewrite(s.Value)
	typ := rewrite.GuessType(value, e.symbols)
	if e.symbols.Declare(s.Name, typ) {
		e.line(typ.String() + " " + s.Name + " = " + value + ";")
		return
	}
	e.line(s.Name + " = " + value + ";")
}

func (e *Emitter) isBoolean(name string) bool {
	typ, ok := e.symbols.Lookup(name)
	return ok && typ == symtab.TypeBoolean
}

func (e *Emitter) push(ind int, kind FrameKind) {
	e.frames = append(e.frames, Frame{Indent: ind, Kind: kind})
}

func (e *Emitter) pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

func (e *Emitter) top() (Frame, bool) {
	if len(e.frames) == 0 {
		return Frame{}, false
	}
	return e.frames[len(e.frames)-1], true
}

func (e *Emitter) line(s string) {
	e.out.WriteString(strings.Repeat(" ", len(e.frames)*e.indent))
	e.out.WriteString(s)
	e.out.WriteByte('\n')
}

func (e *Emitter) report(stmt ast.Statement, msg string) {
	line := stmt.Line()
	e.diags = append(e.diags, Diagnostic{
		Line:   line.Number,
		Indent: line.Indent,
		Kind:   stmt.Kind(),
		Msg:    msg,
	})
}

// terminate appends a statement terminator unless text already ends a
// statement or opens/closes a block.
func terminate(text string) string {
	if text == "" || strings.HasSuffix(text, ";") || strings.HasSuffix(text, "{") || strings.HasSuffix(text, "}") {
		return text
	}
	return text + ";"
}

func isNegativeLiteral(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '.' {
			return false
		}
	}
	return true
}
