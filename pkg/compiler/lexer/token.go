package lexer

import "strings"

// Kind represents the class of a token identified by Classify.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindString
	KindSymbol
	KindNumber
	KindOperator
	KindKeyword
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Keywords is the fixed statement keyword set of the source language.
var Keywords = map[string]struct{}{
	"if":       {},
	"elif":     {},
	"else":     {},
	"for":      {},
	"while":    {},
	"break":    {},
	"continue": {},
	"print":    {},
}

// IsKeyword reports whether text is an exact member of the keyword set.
func IsKeyword(text string) bool {
	_, ok := Keywords[text]
	return ok
}

// Token is one classified lexical unit of a source line.
// Indent is copied from the owning line; it is only meaningful on the
// first token.
type Token struct {
	Text   string
	Kind   Kind
	Indent int
}

// String renders the token as "kind: text".
func (t Token) String() string {
	return t.Kind.String() + ": " + t.Text
}

// Is reports whether the token text equals s.
func (t Token) Is(s string) bool { return t.Text == s }

// Line is the non-empty token sequence produced from one non-blank
// physical source line.
type Line struct {
	Number int    // 1-based physical line number
	Indent int
	Raw    string // source text after the indentation
	Tokens []Token
}

// First returns the leading token of the line.
func (l Line) First() Token {
	if len(l.Tokens) == 0 {
		return Token{Indent: l.Indent}
	}
	return l.Tokens[0]
}

// Text concatenates the token texts without separators.
func (l Line) Text() string {
	var sb strings.Builder
	for _, t := range l.Tokens {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// String renders the line as its tokens joined by ", ".
func (l Line) String() string {
	parts := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
