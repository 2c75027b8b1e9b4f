package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agenthands/pyjava/internal/diag"
	"github.com/agenthands/pyjava/internal/shell"
	"github.com/agenthands/pyjava/pkg/compiler/python"
	"github.com/agenthands/pyjava/pkg/jvm"
	"github.com/agenthands/pyjava/pkg/workspace"
)

type fakeToolchain struct {
	compiled []string
	executed []string
	failWith error
}

func (f *fakeToolchain) Compile(_ context.Context, classDir, source string) error {
	f.compiled = append(f.compiled, source)
	return f.failWith
}

func (f *fakeToolchain) Execute(_ context.Context, classDir, class string, stdout, _ io.Writer) error {
	f.executed = append(f.executed, filepath.Join(classDir, class))
	_, err := io.WriteString(stdout, "ran "+class+"\n")
	return err
}

func setup(t *testing.T, src string, strict bool) (*shell.Shell, *fakeToolchain, string) {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "prog.py"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	sb, err := workspace.NewSandbox(root, 1<<16)
	if err != nil {
		t.Fatal(err)
	}
	tc := &fakeToolchain{}
	sh := shell.New(python.NewCompiler(python.Options{Strict: strict, Indent: 4}), sb, tc, diag.Nop(),
		shell.Options{ClassName: "Prog", OutDir: "build"})
	return sh, tc, root
}

func TestBuild(t *testing.T) {
	sh, _, root := setup(t, "x = 2 ** 3\nprint(x)\n", false)
	art, err := sh.Build(context.Background(), "prog.py")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if art.JavaPath != filepath.Join(root, "build", "Prog.java") {
		t.Errorf("unexpected path %s", art.JavaPath)
	}
	data, err := os.ReadFile(art.JavaPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"public class Prog {", "        double x = Math.pow(2,3);", "System.out.println(x);"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("missing %q in\n%s", want, data)
		}
	}
}

func TestBuildMissingSource(t *testing.T) {
	sh, _, root := setup(t, "", false)
	if _, err := sh.Build(context.Background(), "nope.py"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "build")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("nothing may be written on read failure")
	}
}

func TestBuildEscape(t *testing.T) {
	sh, _, _ := setup(t, "", false)
	if _, err := sh.Build(context.Background(), "../etc/passwd"); !errors.Is(err, workspace.ErrPathEscape) {
		t.Errorf("expected ErrPathEscape, got %v", err)
	}
}

func TestBuildStrict(t *testing.T) {
	sh, _, _ := setup(t, "def f():\n    return 1\n", true)
	if _, err := sh.Build(context.Background(), "prog.py"); !errors.Is(err, python.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestRun(t *testing.T) {
	sh, tc, root := setup(t, "print('hi')\n", false)
	var out bytes.Buffer
	art, err := sh.Run(context.Background(), "prog.py", &out, io.Discard)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if filepath.Dir(art.ClassDir) != filepath.Join(root, "build") {
		t.Errorf("expected a per-run directory under build, got %s", art.ClassDir)
	}
	if len(tc.compiled) != 1 || tc.compiled[0] != art.JavaPath {
		t.Errorf("unexpected compile calls %v", tc.compiled)
	}
	if len(tc.executed) != 1 || out.String() != "ran Prog\n" {
		t.Errorf("unexpected execution %v %q", tc.executed, out.String())
	}
}

func TestRunCompileFailure(t *testing.T) {
	sh, tc, _ := setup(t, "x = 1\n", false)
	tc.failWith = jvm.ErrCompile
	if _, err := sh.Run(context.Background(), "prog.py", io.Discard, io.Discard); !errors.Is(err, jvm.ErrCompile) {
		t.Errorf("expected ErrCompile, got %v", err)
	}
	if len(tc.executed) != 0 {
		t.Errorf("must not execute after compile failure")
	}
}

func TestTokens(t *testing.T) {
	sh, _, _ := setup(t, "x = 1\n\nif x :\n", false)
	var out bytes.Buffer
	if err := sh.Tokens("prog.py", &out); err != nil {
		t.Fatal(err)
	}
	want := "symbol: x, operator: =, number: 1\nkeyword: if, symbol: x, operator: :\n"
	if out.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestCheck(t *testing.T) {
	sh, _, _ := setup(t, "x = 1\ndef f():\n    pass\n", false)
	var out bytes.Buffer
	err := sh.Check("prog.py", &out)
	if !errors.Is(err, python.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !strings.Contains(out.String(), "prog.py:2: functiondef") {
		t.Errorf("unexpected report:\n%s", out.String())
	}

	clean, _, _ := setup(t, "x = 1\n", false)
	if err := clean.Check("prog.py", io.Discard); err != nil {
		t.Errorf("clean source: %v", err)
	}
}
