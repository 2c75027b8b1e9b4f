package ast

import "github.com/agenthands/pyjava/pkg/compiler/lexer"

// Kind is the closed set of statement variants a source line decodes to.
type Kind uint8

const (
	KindExpr Kind = iota
	KindIf
	KindElif
	KindElse
	KindFor
	KindWhile
	KindPrint
	KindAssign
	KindBreak
	KindContinue
	KindPass
	KindComment
	KindUnsupported
)

var kindNames = [...]string{
	KindExpr:        "expr",
	KindIf:          "if",
	KindElif:        "elif",
	KindElse:        "else",
	KindFor:         "for",
	KindWhile:       "while",
	KindPrint:       "print",
	KindAssign:      "assign",
	KindBreak:       "break",
	KindContinue:    "continue",
	KindPass:        "pass",
	KindComment:     "comment",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node represents any decoded element.
type Node interface {
	Pos() lexer.Token
}

// Statement is one decoded source line.
type Statement interface {
	Node
	Kind() Kind
	Line() lexer.Line
}

// Program is the ordered list of statements, in source order.
type Program struct {
	Statements []Statement
}

// Base carries the source line a statement was decoded from.
type Base struct {
	Source lexer.Line
}

func (b Base) Pos() lexer.Token { return b.Source.First() }
func (b Base) Line() lexer.Line { return b.Source }
func (b Base) Indent() int { return b.Source.Indent }

// IfStmt: if <condition> :
type IfStmt struct {
	Base
	Condition string
}

func (*IfStmt) Kind() Kind { return KindIf }

// ElifStmt: elif <condition> :
type ElifStmt struct {
	Base
	Condition string
}

func (*ElifStmt) Kind() Kind { return KindElif }

// ElseStmt: else :
type ElseStmt struct {
	Base
}

func (*ElseStmt) Kind() Kind { return KindElse }

// ForStmt: for <var> in range(<args>) :
// Malformed is non-empty when the argument list could not be isolated
// cleanly; Args then holds the best-effort remainder.
type ForStmt struct {
	Base
	Var       string
	Args      []string
	Malformed string
}

func (*ForStmt) Kind() Kind { return KindFor }

// WhileStmt: while <condition> :
// Var is set when the condition is a single bare name.
type WhileStmt struct {
	Base
	Var       string
	Condition string
}

func (*WhileStmt) Kind() Kind { return KindWhile }

// PrintStmt: print(<args>)
type PrintStmt struct {
	Base
	Args []string
}

func (*PrintStmt) Kind() Kind { return KindPrint }

// AssignStmt: <name> = <value>
type AssignStmt struct {
	Base
	Name  string
	Value string
}

func (*AssignStmt) Kind() Kind { return KindAssign }

// BranchStmt: break | continue
type BranchStmt struct {
	Base
	Keyword string
}

func (b *BranchStmt) Kind() Kind {
	if b.Keyword == "continue" {
		return KindContinue
	}
	return KindBreak
}

// PassStmt: pass
type PassStmt struct {
	Base
}

func (*PassStmt) Kind() Kind { return KindPass }

// CommentStmt: # ...
type CommentStmt struct {
	Base
	Text string
}

func (*CommentStmt) Kind() Kind { return KindComment }

// ExprStmt is any other line; Text is the joined token text.
type ExprStmt struct {
	Base
	Text string
}

func (*ExprStmt) Kind() Kind { return KindExpr }

// UnsupportedStmt is a construct outside the translated statement set.
type UnsupportedStmt struct {
	Base
	Keyword string
	Text    string
}

func (*UnsupportedStmt) Kind() Kind { return KindUnsupported }
