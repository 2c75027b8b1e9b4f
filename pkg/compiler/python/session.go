package python

import (
	"strings"

	"github.com/agenthands/pyjava/pkg/compiler/emitter"
	"github.com/agenthands/pyjava/pkg/compiler/lexer"
	"github.com/agenthands/pyjava/pkg/compiler/parser"
	"github.com/agenthands/pyjava/pkg/compiler/symtab"
)

// Var is a variable known to a Session.
type Var struct {
	Name string
	Type symtab.Type
}

// Session converts snippets one at a time, as typed at a prompt. Every
// snippet closes its own blocks; variable types carry over between
// snippets so a later assignment does not redeclare.
type Session struct {
	indent  int
	symbols *symtab.Table
}

func NewSession(indent int) *Session {
	return &Session{indent: indent, symbols: symtab.New()}
}

// Eval converts one snippet.
func (s *Session) Eval(snippet string) (*Result, error) {
	lines := lexer.Tokenize(snippet)
	e := emitter.New(emitter.WithIndent(s.indent), emitter.WithSymbols(s.symbols))
	out, err := e.Emit(parser.Parse(lines))
	if err != nil {
		return nil, err
	}
	return &Result{
		Code:        out.Code,
		Lines:       lines,
		Diagnostics: out.Diagnostics,
		Symbols:     s.symbols,
	}, nil
}

// Reset forgets every variable.
func (s *Session) Reset() {
	s.symbols = symtab.New()
}

// Vars lists known variables by name.
func (s *Session) Vars() []Var {
	names := s.symbols.Names()
	vars := make([]Var, 0, len(names))
	for _, name := range names {
		typ, _ := s.symbols.Lookup(name)
		vars = append(vars, Var{Name: name, Type: typ})
	}
	return vars
}

// Continues reports whether line opens a block, so a prompt should keep
// reading until an empty line.
func Continues(line string) bool {
	line = strings.TrimSpace(line)
	if i := strings.Index(line, "#"); i >= 0 && !strings.ContainsAny(line[:i], `"'`) {
		line = strings.TrimSpace(line[:i])
	}
	return strings.HasSuffix(line, ":")
}
