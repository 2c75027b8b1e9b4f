package lexer

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{`"hello"`, KindString},
		{`'a'`, KindString},
		{`"`, KindUnknown},
		{"x", KindSymbol},
		{"Math.pow", KindSymbol},
		{"True", KindSymbol},
		{"if", KindKeyword},
		{"print", KindKeyword},
		{"elif", KindKeyword},
		{"in", KindSymbol},
		{"=", KindOperator},
		{":", KindOperator},
		{"[", KindOperator},
		{"+-", KindUnknown},
		{"42", KindNumber},
		{"3.14", KindNumber},
		{".", KindSymbol},
		{"x1", KindUnknown},
		{"my_var", KindUnknown},
		{"==", KindUnknown},
		{"**", KindUnknown},
		{"", KindUnknown},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}
