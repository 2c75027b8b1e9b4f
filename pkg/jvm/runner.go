// Package jvm compiles and runs generated Java sources with the JDK tools
// found on PATH.
package jvm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

var (
	ErrToolchainMissing = errors.New("jvm: toolchain not found")
	ErrCompile          = errors.New("jvm: compilation failed")
	ErrExecute          = errors.New("jvm: execution failed")
)

// Runner invokes javac and java. Timeout bounds each tool invocation;
// zero means no limit beyond the caller's context.
type Runner struct {
	Javac   string
	Java    string
	Timeout time.Duration
}

func NewRunner(javac, java string, timeout time.Duration) *Runner {
	if javac == "" {
		javac = "javac"
	}
	if java == "" {
		java = "java"
	}
	return &Runner{Javac: javac, Java: java, Timeout: timeout}
}

// Available checks that both tools resolve on PATH.
func (r *Runner) Available() error {
	for _, tool := range []string{r.Javac, r.Java} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrToolchainMissing, tool)
		}
	}
	return nil
}

// Compile writes class files for source into classDir.
func (r *Runner) Compile(ctx context.Context, classDir, source string) error {
	return r.run(ctx, r.Javac, []string{"-d", classDir, source}, io.Discard, io.Discard, ErrCompile)
}

// Execute runs the main method of class from classDir with no arguments.
func (r *Runner) Execute(ctx context.Context, classDir, class string, stdout, stderr io.Writer) error {
	return r.run(ctx, r.Java, []string{"-cp", classDir, class}, stdout, stderr, ErrExecute)
}

func (r *Runner) run(ctx context.Context, tool string, args []string, stdout, stderr io.Writer, failure error) error {
	path, err := exec.LookPath(tool)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolchainMissing, tool)
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}

	var errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(&errBuf, stderr)

	err = cmd.Run()
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %s: %w", failure, tool, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(errBuf.String())
		return fmt.Errorf("%w: %s exited with status %d: %s", failure, tool, exitErr.ExitCode(), msg)
	}
	return fmt.Errorf("%w: %s: %v", failure, tool, err)
}
