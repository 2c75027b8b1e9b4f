package lexer

import "strings"

// separators end the current token and are emitted as tokens themselves.
const separators = "(),:{}[]"

// Tokenize splits text into physical lines and tokenizes each of them.
// Blank lines are dropped; the relative order of the remaining lines is
// preserved.
func Tokenize(text string) []Line {
	raw := strings.Split(text, "\n")
	lines := make([]Line, 0, len(raw))
	for i, l := range raw {
		line, ok := TokenizeLine(strings.TrimSuffix(l, "\r"))
		if !ok {
			continue
		}
		line.Number = i + 1
		lines = append(lines, line)
	}
	return lines
}

// CountIndent returns the number of leading space or tab characters.
// Both count as one unit.
func CountIndent(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

// TokenizeLine tokenizes a single physical line. ok is false when the line
// is blank after its indentation is stripped.
//
// Quote characters (both ' and ") are counted; while the count is odd the
// scanner is inside a string literal and accumulates every character.
// This is a parity heuristic: escaped quotes are not recognised and an
// unterminated quote swallows the rest of the line.
func TokenizeLine(s string) (line Line, ok bool) {
	indent := CountIndent(s)
	rest := s[indent:]
	if rest == "" {
		return Line{}, false
	}

	var (
		tokens     []Token
		buf        strings.Builder
		quoteCount int
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		tokens = append(tokens, newToken(buf.String(), indent))
		buf.Reset()
	}

	for i := 0; i < len(rest); i++ {
		ch := rest[i]
		if isQuote(ch) {
			quoteCount++
		}
		if quoteCount%2 == 1 {
			buf.WriteByte(ch)
			continue
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			flush()
		case containsByte(separators, ch):
			flush()
			tokens = append(tokens, newToken(string(ch), indent))
		default:
			buf.WriteByte(ch)
		}
	}
	flush()

	if len(tokens) == 0 {
		return Line{}, false
	}
	return Line{Indent: indent, Raw: rest, Tokens: tokens}, true
}

func newToken(text string, indent int) Token {
	return Token{Text: text, Kind: Classify(text), Indent: indent}
}
