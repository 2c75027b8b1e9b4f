package python

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/agenthands/pyjava/pkg/compiler/symtab"
)

func TestCompilerComprehensive(t *testing.T) {
	c := NewCompiler(Options{Indent: 4})

	t.Run("Factorial", func(t *testing.T) {
		src := `
n = 5
res = 1
while n > 0:
    res = res * n
    n = n - 1
print(res)
`
		want := `int n = 5;
int res = 1;
while (n>0) {
    res = res*n;
    n = n-1;
}
System.out.println(res);
`
		res, err := c.Compile(src)
		if err != nil {
			t.Fatal(err)
		}
		if res.Code != want {
			t.Errorf("expected:\n%s\ngot:\n%s", want, res.Code)
		}
		if res.Symbols.Len() != 2 {
			t.Errorf("expected 2 variables, got %v", res.Symbols.Names())
		}
	})

	t.Run("NestedIfElse", func(t *testing.T) {
		src := `
val = 50
if val > 10:
    if val > 40:
        res = 2
    else:
        res = 1
else:
    res = 0
`
		want := `int val = 50;
if (val>10) {
    if (val>40) {
        int res = 2;
    } else {
        res = 1;
    }
} else {
    res = 0;
}
`
		res, err := c.Compile(src)
		if err != nil {
			t.Fatal(err)
		}
		if res.Code != want {
			t.Errorf("expected:\n%s\ngot:\n%s", want, res.Code)
		}
	})

	t.Run("SumWithRange", func(t *testing.T) {
		src := "total = 0\nfor i in range(1, 11):\n    total = total + i\nprint('sum', total)\n"
		want := "int total = 0;\nint i;\ni = 1;\nfor (; i < 11; i++) {\n    total = total+i;\n}\nSystem.out.println(\"sum\" + total);\n"
		res, err := c.Compile(src)
		if err != nil {
			t.Fatal(err)
		}
		if res.Code != want {
			t.Errorf("expected:\n%s\ngot:\n%s", want, res.Code)
		}
	})

	t.Run("SpacedPrint", func(t *testing.T) {
		spaced := NewCompiler(Options{SpacedPrint: true})
		res, err := spaced.Compile("print('sum', total)\n")
		if err != nil {
			t.Fatal(err)
		}
		if want := "System.out.println(\"sum\" + \" \" + total);\n"; res.Code != want {
			t.Errorf("expected %q, got %q", want, res.Code)
		}
	})

	t.Run("BestEffort", func(t *testing.T) {
		res, err := c.Compile("def f(a):\n    return a\n")
		if err != nil {
			t.Fatalf("default mode must not fail: %v", err)
		}
		if len(res.Diagnostics) != 2 {
			t.Errorf("expected 2 diagnostics, got %v", res.Diagnostics)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		res, err := c.Compile("")
		if err != nil {
			t.Fatal(err)
		}
		if res.Code != "" || len(res.Lines) != 0 {
			t.Errorf("expected no output, got %q", res.Code)
		}
	})
}

func TestCompileStrict(t *testing.T) {
	c := NewCompiler(Options{Strict: true})
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"valid", "x = 1\nif x > 0:\n    print(x)\n", nil},
		{"syntax", "x = (\n", ErrSyntax},
		{"function", "def f():\n    return 1\n", ErrUnsupported},
		{"iterable", "for x in items:\n    pass\n", ErrUnsupported},
		{"list", "xs = [1, 2]\n", ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Compile(tt.src)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAudit(t *testing.T) {
	src := "xs = [1, 2]\ny = 1\ndef f():\n    pass\nfor a in xs:\n    pass\n"
	findings, err := Audit(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Finding{
		{Line: 1, Construct: "list"},
		{Line: 3, Construct: "functiondef"},
		{Line: 5, Construct: "iteration over name"},
	}
	if !reflect.DeepEqual(findings, want) {
		t.Errorf("expected %v, got %v", want, findings)
	}
	if err := Validate("if x:\n    y = 1"); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("Main", "int x = 1;\nif (x>0) {\n}\n")
	want := `public class Main {
    public static void main(String[] args) {
        int x = 1;
        if (x>0) {
        }
    }
}
`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestValidClassName(t *testing.T) {
	for name, want := range map[string]bool{
		"Main": true, "_App2": true, "$x": true,
		"": false, "2Main": false, "my-class": false, "class": false,
	} {
		if got := ValidClassName(name); got != want {
			t.Errorf("ValidClassName(%q): expected %v, got %v", name, want, got)
		}
	}
}

func TestSession(t *testing.T) {
	s := NewSession(0)
	eval := func(src string) string {
		t.Helper()
		res, err := s.Eval(src)
		if err != nil {
			t.Fatal(err)
		}
		return res.Code
	}

	if got := eval("x = 1"); got != "int x = 1;\n" {
		t.Errorf("first: got %q", got)
	}
	if got := eval("x = 2"); got != "x = 2;\n" {
		t.Errorf("reassign: got %q", got)
	}
	if got := eval("if x:\n    y = 'a'"); !strings.HasSuffix(got, "}\n") {
		t.Errorf("snippet blocks must close: got %q", got)
	}
	want := []Var{{Name: "x", Type: symtab.TypeInt}, {Name: "y", Type: symtab.TypeString}}
	if got := s.Vars(); !reflect.DeepEqual(got, want) {
		t.Errorf("vars: expected %v, got %v", want, got)
	}

	s.Reset()
	if got := eval("x = 3"); got != "int x = 3;\n" {
		t.Errorf("after reset: got %q", got)
	}
}

func TestContinues(t *testing.T) {
	tests := map[string]bool{
		"if x:":                      true,
		"  while n > 0 :":            true,
		"for i in range(3):  # loop": true,
		"x = 1":                      false,
		`print("a:")`:                false,
		"":                           false,
	}
	for line, want := range tests {
		if got := Continues(line); got != want {
			t.Errorf("Continues(%q): expected %v, got %v", line, want, got)
		}
	}
}
