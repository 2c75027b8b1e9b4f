package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/agenthands/pyjava/internal/config"
	"github.com/agenthands/pyjava/pkg/compiler/python"
	"github.com/agenthands/pyjava/pkg/jvm"
	"github.com/agenthands/pyjava/pkg/workspace"
)

func TestClassify(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	tests := []struct {
		err  error
		want Code
	}{
		{nil, CodeUnknown},
		{errors.New("boom"), CodeUnknown},
		{context.Canceled, CodeCancel},
		{fmt.Errorf("run: %w", context.DeadlineExceeded), CodeCancel},
		{fmt.Errorf("%w: no file", ErrUsage), CodeUsage},
		{config.ErrInvalid, CodeConfig},
		{fmt.Errorf("wrap: %w", python.ErrSyntax), CodeSyntax},
		{python.ErrUnsupported, CodeUnsupported},
		{jvm.ErrToolchainMissing, CodeToolchain},
		{jvm.ErrCompile, CodeCompile},
		{jvm.ErrExecute, CodeExecute},
		{workspace.ErrPathEscape, CodeIO},
		{statErr, CodeIO},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v): expected %s, got %s", tt.err, tt.want, got)
		}
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("nil must exit 0")
	}
	if ExitCode(fmt.Errorf("%w: bad flag", ErrUsage)) != 2 {
		t.Error("usage must exit 2")
	}
	if ExitCode(jvm.ErrCompile) != 1 {
		t.Error("failures must exit 1")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "info", "json")
	tm := l.Start("build", "compile source", "path", "a.py")
	tm.Finish("compiled", 3)
	l.Error("build", fmt.Errorf("x: %w", python.ErrSyntax))
	l.Debug("build", "hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got %d:\n%s", len(lines), buf.String())
	}
	var events []map[string]any
	for _, line := range lines {
		var ev map[string]any
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid json %q: %v", line, err)
		}
		if ev["run_id"] != l.RunID() || ev["comp"] != "build" {
			t.Errorf("missing common fields: %v", ev)
		}
		events = append(events, ev)
	}
	if events[0]["stage"] != "start" || events[0]["path"] != "a.py" {
		t.Errorf("unexpected start event %v", events[0])
	}
	if events[1]["stage"] != "finish" || events[1]["count"] != float64(3) {
		t.Errorf("unexpected finish event %v", events[1])
	}
	if events[2]["stage"] != "error" || events[2]["code"] != string(CodeSyntax) {
		t.Errorf("unexpected error event %v", events[2])
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "debug", "text")
	l.Debug("repl", "shown")
	if !strings.Contains(buf.String(), "comp=repl") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}
