package diag

import (
	"context"
	"errors"
	"io/fs"

	"github.com/agenthands/pyjava/internal/config"
	"github.com/agenthands/pyjava/pkg/compiler/python"
	"github.com/agenthands/pyjava/pkg/jvm"
	"github.com/agenthands/pyjava/pkg/workspace"
)

// Code is the error class recorded in logs.
type Code string

const (
	CodeUnknown     Code = "unknown"
	CodeUsage       Code = "usage"
	CodeConfig      Code = "config"
	CodeIO          Code = "io"
	CodeSyntax      Code = "syntax"
	CodeUnsupported Code = "unsupported"
	CodeToolchain   Code = "toolchain"
	CodeCompile     Code = "compile"
	CodeExecute     Code = "execute"
	CodeCancel      Code = "cancel"
)

// ErrUsage marks command-line misuse.
var ErrUsage = errors.New("usage")

// Classify maps err to a Code using sentinel errors only.
func Classify(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeCancel
	case errors.Is(err, ErrUsage):
		return CodeUsage
	case errors.Is(err, config.ErrInvalid):
		return CodeConfig
	case errors.Is(err, python.ErrSyntax):
		return CodeSyntax
	case errors.Is(err, python.ErrUnsupported):
		return CodeUnsupported
	case errors.Is(err, jvm.ErrToolchainMissing):
		return CodeToolchain
	case errors.Is(err, jvm.ErrCompile):
		return CodeCompile
	case errors.Is(err, jvm.ErrExecute):
		return CodeExecute
	case errors.Is(err, workspace.ErrPathEscape),
		errors.Is(err, workspace.ErrFileTooLarge),
		errors.Is(err, workspace.ErrEmptyPath):
		return CodeIO
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// ExitCode maps err to a process status: 0 success, 2 usage, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}
