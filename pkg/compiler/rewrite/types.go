package rewrite

import (
	"regexp"
	"strings"

	"github.com/agenthands/pyjava/pkg/compiler/symtab"
)

var (
	intLiteral    = regexp.MustCompile(`^-?\d+$`)
	doubleLiteral = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Lookup resolves the recorded type of a known variable.
type Lookup interface {
	Lookup(name string) (symtab.Type, bool)
}

// GuessType infers a declaration type from rewritten expression text.
// It is a syntactic heuristic and defaults to int.
func GuessType(expr string, known Lookup) symtab.Type {
	switch {
	case expr == "true" || expr == "false":
		return symtab.TypeBoolean
	case len(expr) >= 2 && isQuote(expr[0]) && isQuote(expr[len(expr)-1]):
		return symtab.TypeString
	case isComparison(expr):
		return symtab.TypeBoolean
	case concatenatesString(expr):
		return symtab.TypeString
	case intLiteral.MatchString(expr):
		return symtab.TypeInt
	case doubleLiteral.MatchString(expr):
		return symtab.TypeDouble
	case strings.Contains(expr, "Math.pow"):
		return symtab.TypeDouble
	}
	if known != nil {
		if typ, ok := known.Lookup(expr); ok {
			return typ
		}
	}
	return symtab.TypeInt
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

// concatenatesString reports whether a string literal is an operand of a
// top-level +, as in "n="+n.
func concatenatesString(expr string) bool {
	depth := 0
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch {
		case ch == '(' || ch == '[':
			depth++
		case ch == ')' || ch == ']':
			depth--
		case isQuote(ch):
			end := strings.IndexByte(expr[i+1:], ch)
			if end < 0 {
				return false
			}
			before := strings.TrimRight(expr[:i], " ")
			after := strings.TrimLeft(expr[i+end+2:], " ")
			if depth == 0 && (strings.HasSuffix(before, "+") || strings.HasPrefix(after, "+")) {
				return true
			}
			i += end + 1
		}
	}
	return false
}

// isComparison reports whether expr contains a relational or logical
// operator outside string literals, or starts with a negation. Shifts
// (<<, >>, >>>) are not comparisons.
func isComparison(expr string) bool {
	if strings.HasPrefix(expr, "!") && !strings.HasPrefix(expr, "!=") {
		return true
	}
	var quote byte
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '<', '>':
			j := i
			for j < len(expr) && expr[j] == ch {
				j++
			}
			if j-i > 1 {
				i = j - 1
				continue
			}
			return true
		case '=', '!':
			if i+1 < len(expr) && expr[i+1] == '=' {
				return true
			}
		case '&', '|':
			if i+1 < len(expr) && expr[i+1] == ch {
				return true
			}
		}
	}
	return false
}
