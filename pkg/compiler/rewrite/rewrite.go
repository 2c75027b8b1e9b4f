// Package rewrite turns flat source-language expression text into
// Java-compatible text. Each rule is an independent pure function; Rewrite
// applies them in a fixed order.
package rewrite

import (
	"regexp"
	"strings"
)

var intCall = regexp.MustCompile(`\bint\((.*?)\)`)

// Rewrite applies StringQuotes, BoolLiterals, IntCasts and Power in that
// order and trims the result. It never fails.
func Rewrite(expr string) string {
	expr = StringQuotes(expr)
	expr = BoolLiterals(expr)
	expr = IntCasts(expr)
	expr = Power(expr)
	return strings.TrimSpace(expr)
}

// Optional rewrites expr when present, and yields the literal 0 otherwise.
func Optional(expr string, present bool) string {
	if !present {
		return "0"
	}
	return Rewrite(expr)
}

// StringQuotes respells single-quoted literals with double quotes, since a
// single-quoted Java literal is a char. Double quotes inside them are
// escaped; an unterminated literal is left untouched.
func StringQuotes(expr string) string {
	if !strings.Contains(expr, "'") {
		return expr
	}
	var sb strings.Builder
	for i := 0; i < len(expr); i++ {
		ch := expr[i]
		switch ch {
		case '"':
			end := strings.IndexByte(expr[i+1:], '"')
			if end < 0 {
				sb.WriteString(expr[i:])
				return sb.String()
			}
			sb.WriteString(expr[i : i+end+2])
			i += end + 1
		case '\'':
			end := strings.IndexByte(expr[i+1:], '\'')
			if end < 0 {
				sb.WriteString(expr[i:])
				return sb.String()
			}
			inner := strings.ReplaceAll(expr[i+1:i+1+end], `"`, `\"`)
			sb.WriteString(`"` + inner + `"`)
			i += end + 1
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// BoolLiterals replaces the whole words True and False outside string
// literals with true and false.
func BoolLiterals(expr string) string {
	if !strings.Contains(expr, "True") && !strings.Contains(expr, "False") {
		return expr
	}
	var sb strings.Builder
	var quote byte
	for i := 0; i < len(expr); {
		ch := expr[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		}
		if quote == 0 && (i == 0 || !isIdentPart(expr[i-1])) {
			if w, ok := boolWord(expr[i:]); ok {
				sb.WriteString(strings.ToLower(w))
				i += len(w)
				continue
			}
		}
		sb.WriteByte(ch)
		i++
	}
	return sb.String()
}

func boolWord(s string) (string, bool) {
	for _, w := range []string{"True", "False"} {
		if strings.HasPrefix(s, w) && (len(s) == len(w) || !isIdentPart(s[len(w)])) {
			return w, true
		}
	}
	return "", false
}

// IntCasts rewrites int(<inner>) into (int)(<inner>). The inner match is
// non-greedy and stops at the first closing parenthesis, so only one level
// of nesting is handled.
func IntCasts(expr string) string {
	return intCall.ReplaceAllString(expr, "(int)(${1})")
}

// Power desugars base ** exponent into Math.pow(base,exponent), leftmost
// first, until no ** remains. The base is the identifier/number run
// immediately left of the operator and the exponent the
// identifier/number/dot run immediately right of it; there is no
// precedence handling and a parenthesized operand yields an empty run.
func Power(expr string) string {
	for {
		idx := strings.Index(expr, "**")
		if idx < 0 {
			return expr
		}

		left := idx
		for left > 0 && expr[left-1] == ' ' {
			left--
		}
		baseEnd := left
		for left > 0 && (isIdentPart(expr[left-1]) || expr[left-1] == '.') {
			left--
		}

		right := idx + 2
		for right < len(expr) && expr[right] == ' ' {
			right++
		}
		expStart := right
		for right < len(expr) && (isIdentPart(expr[right]) || expr[right] == '.') {
			right++
		}

		base := expr[left:baseEnd]
		exponent := expr[expStart:right]
		expr = expr[:left] + "Math.pow(" + base + "," + exponent + ")" + expr[right:]
	}
}

func isIdentPart(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
