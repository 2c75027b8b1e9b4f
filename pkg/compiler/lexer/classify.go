package lexer

// operators are the single-character punctuation/operator tokens.
const operators = "+-*/=,{}()[]:"

// Classify maps raw token text to its Kind. It never fails; text that
// matches no category is KindUnknown.
//
// The checks are ordered: string literal, symbol (keywords are the exact
// members of Keywords), single-character operator, number.
func Classify(text string) Kind {
	switch {
	case isQuoted(text):
		return KindString
	case isSymbol(text):
		if IsKeyword(text) {
			return KindKeyword
		}
		return KindSymbol
	case len(text) == 1 && containsByte(operators, text[0]):
		return KindOperator
	case isNumber(text):
		return KindNumber
	default:
		return KindUnknown
	}
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

func isQuoted(s string) bool {
	return len(s) >= 2 && isQuote(s[0]) && isQuote(s[len(s)-1])
}

func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) && s[i] != '.' {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) && s[i] != '.' {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func containsByte(set string, ch byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == ch {
			return true
		}
	}
	return false
}
