package parser

import (
	"strings"

	"github.com/agenthands/pyjava/pkg/compiler/ast"
	"github.com/agenthands/pyjava/pkg/compiler/lexer"
)

// Unsupported lists leading words of constructs outside the translated
// statement set. They decode to ast.UnsupportedStmt.
var Unsupported = map[string]struct{}{
	"def": {}, "class": {}, "return": {}, "import": {}, "from": {},
	"try": {}, "except": {}, "finally": {}, "with": {}, "lambda": {},
	"global": {}, "nonlocal": {}, "raise": {}, "yield": {}, "del": {},
	"assert": {}, "async": {}, "await": {}, "match": {}, "case": {},
}

// wordOperators maps boolean word operators to their Java spelling.
var wordOperators = map[string]string{
	"and": "&&",
	"or":  "||",
	"not": "!",
}

// Parse decodes every line, preserving order.
func Parse(lines []lexer.Line) *ast.Program {
	prog := &ast.Program{Statements: make([]ast.Statement, 0, len(lines))}
	for _, line := range lines {
		if len(line.Tokens) == 0 {
			continue
		}
		prog.Statements = append(prog.Statements, Decode(line))
	}
	return prog
}

// HeadKind classifies the leading token of a line. Only the statement
// shapes recognisable from the first token are returned; everything else is
// ast.KindExpr and is refined by Decode.
func HeadKind(line lexer.Line) ast.Kind {
	first := line.First().Text
	if strings.HasPrefix(first, "#") {
		return ast.KindComment
	}
	switch first {
	case "if":
		return ast.KindIf
	case "elif":
		return ast.KindElif
	case "else":
		return ast.KindElse
	case "for":
		return ast.KindFor
	case "while":
		return ast.KindWhile
	case "pass":
		if len(line.Tokens) == 1 {
			return ast.KindPass
		}
	}
	if _, ok := Unsupported[first]; ok {
		return ast.KindUnsupported
	}
	return ast.KindExpr
}

// Decode turns one line into its statement variant. It never fails:
// anything unrecognised becomes an ast.ExprStmt carrying the joined text.
func Decode(line lexer.Line) ast.Statement {
	base := ast.Base{Source: line}
	toks := stripTrailingComment(line.Tokens)

	switch HeadKind(line) {
	case ast.KindComment:
		return &ast.CommentStmt{Base: base, Text: strings.TrimSpace(strings.TrimPrefix(line.Raw, "#"))}
	case ast.KindIf:
		return &ast.IfStmt{Base: base, Condition: Header(toks[1:])}
	case ast.KindElif:
		return &ast.ElifStmt{Base: base, Condition: Header(toks[1:])}
	case ast.KindElse:
		return &ast.ElseStmt{Base: base}
	case ast.KindFor:
		return decodeFor(base, toks)
	case ast.KindWhile:
		return decodeWhile(base, toks)
	case ast.KindPass:
		return &ast.PassStmt{Base: base}
	case ast.KindUnsupported:
		return &ast.UnsupportedStmt{Base: base, Keyword: toks[0].Text, Text: strings.TrimSpace(line.Raw)}
	default:
		return decodePlain(base, toks)
	}
}

// Header joins the tokens up to, not including, the first top-level colon.
func Header(toks []lexer.Token) string {
	depth := 0
	for i, t := range toks {
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ":":
			if depth == 0 {
				return Join(toks[:i])
			}
		}
	}
	return Join(toks)
}

// Join concatenates token texts without separators. The word operators
// and, or and not are respelled &&, || and !.
func Join(toks []lexer.Token) string {
	var sb strings.Builder
	for _, t := range toks {
		if t.Kind == lexer.KindSymbol {
			if op, ok := wordOperators[t.Text]; ok {
				sb.WriteString(op)
				continue
			}
		}
		sb.WriteString(t.Text)
	}
	return strings.TrimSpace(sb.String())
}

// stripTrailingComment cuts the tokens at the first # outside a string
// literal. A token holding code before the # is shortened and reclassified.
func stripTrailingComment(toks []lexer.Token) []lexer.Token {
	var quote byte
	for i, t := range toks {
		for j := 0; j < len(t.Text); j++ {
			ch := t.Text[j]
			switch {
			case quote != 0:
				if ch == quote {
					quote = 0
				}
			case ch == '"' || ch == '\'':
				quote = ch
			case ch == '#':
				if i == 0 && j == 0 {
					return toks
				}
				head := toks[:i:i]
				if j > 0 {
					t.Text = t.Text[:j]
					t.Kind = lexer.Classify(t.Text)
					head = append(head, t)
				}
				return head
			}
		}
	}
	return toks
}

func decodeFor(base ast.Base, toks []lexer.Token) ast.Statement {
	if len(toks) < 4 || !toks[2].Is("in") || !toks[3].Is("range") {
		return &ast.UnsupportedStmt{Base: base, Keyword: "for", Text: strings.TrimSpace(base.Source.Raw)}
	}
	stmt := &ast.ForStmt{Base: base, Var: toks[1].Text}

	open := -1
	for i := 4; i < len(toks); i++ {
		if toks[i].Is("(") {
			open = i
			break
		}
	}
	if open < 0 {
		stmt.Malformed = "range header has no argument list"
		return stmt
	}

	closeIdx := matchParen(toks, open)
	var inner []lexer.Token
	if closeIdx < 0 {
		stmt.Malformed = "unbalanced parentheses in range header"
		inner = toks[open+1:]
		if n := len(inner); n > 0 && inner[n-1].Is(":") {
			inner = inner[:n-1]
		}
	} else {
		inner = toks[open+1 : closeIdx]
	}
	stmt.Args = SplitTopLevel(Join(inner), ',')
	if n := len(stmt.Args); stmt.Malformed == "" && (n == 0 || n > 3) {
		stmt.Malformed = "range expects 1 to 3 arguments"
	}
	return stmt
}

func matchParen(toks []lexer.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func decodeWhile(base ast.Base, toks []lexer.Token) ast.Statement {
	stmt := &ast.WhileStmt{Base: base, Condition: Header(toks[1:])}
	if len(toks) == 3 && toks[2].Is(":") {
		stmt.Var = toks[1].Text
	}
	return stmt
}

func decodePlain(base ast.Base, toks []lexer.Token) ast.Statement {
	raw := Join(toks)

	if inner, ok := printArgs(raw); ok {
		return &ast.PrintStmt{Base: base, Args: SplitTopLevel(inner, ',')}
	}
	if name, value, ok := splitAssignment(raw); ok {
		return &ast.AssignStmt{Base: base, Name: name, Value: value}
	}
	if raw == "break" || raw == "continue" {
		return &ast.BranchStmt{Base: base, Keyword: raw}
	}
	return &ast.ExprStmt{Base: base, Text: raw}
}

// printArgs returns the argument text of a call-shaped print(...) whose
// opening parenthesis is closed by the final character.
func printArgs(raw string) (string, bool) {
	const prefix = "print("
	if !strings.HasPrefix(raw, prefix) || !strings.HasSuffix(raw, ")") {
		return "", false
	}
	if closeAt(raw, len(prefix)-1) != len(raw)-1 {
		return "", false
	}
	return raw[len(prefix) : len(raw)-1], true
}

// splitAssignment finds exactly one top-level '=' that is not part of a
// comparison or augmented operator, with an identifier on its left.
func splitAssignment(raw string) (name, value string, ok bool) {
	at := -1
	depth := 0
	var quote byte
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '=':
			if depth != 0 || (i > 0 && strings.IndexByte("!<>+-*/%&|^=:", raw[i-1]) >= 0) {
				continue
			}
			if i+1 < len(raw) && raw[i+1] == '=' {
				continue
			}
			if at >= 0 {
				return "", "", false
			}
			at = i
		}
	}
	if at < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(raw[:at])
	if !isIdentifier(name) {
		return "", "", false
	}
	return name, strings.TrimSpace(raw[at+1:]), true
}

func isIdentifier(s string) bool {
	if s == "" || lexer.IsKeyword(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		letter := ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		if !letter && (i == 0 || ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}
