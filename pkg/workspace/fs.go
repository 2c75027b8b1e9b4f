// Package workspace confines the shell's file access to one root
// directory: sources are read through it and emitted Java is written
// through it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrPathEscape   = errors.New("workspace: path escape violation")
	ErrFileTooLarge = errors.New("workspace: file size limit exceeded")
	ErrEmptyPath    = errors.New("workspace: empty path")
)

// Sandbox is rooted at Root. MaxFileSize caps reads and writes in bytes;
// zero or less disables the cap.
type Sandbox struct {
	Root        string
	MaxFileSize int64
}

func NewSandbox(root string, maxFileSize int64) (*Sandbox, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("workspace: resolve root: %w", err)
	}
	return &Sandbox{Root: abs, MaxFileSize: maxFileSize}, nil
}

// Resolve maps path, relative to Root or absolute, to a cleaned absolute
// path inside Root.
func (s *Sandbox) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		clean = filepath.Join(s.Root, clean)
	}
	rel, err := filepath.Rel(s.Root, clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, path)
	}
	return clean, nil
}

// ReadFile reads a whole file. Directories and oversized files are refused.
func (s *Sandbox) ReadFile(path string) ([]byte, error) {
	abs, err := s.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: read %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("workspace: read %s: is a directory", path)
	}
	if s.MaxFileSize > 0 && info.Size() > s.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile atomically replaces path with data, creating parent
// directories. It returns the absolute path written.
func (s *Sandbox) WriteFile(ctx context.Context, path string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := s.Resolve(path)
	if err != nil {
		return "", err
	}
	if s.MaxFileSize > 0 && int64(len(data)) > s.MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes for %s", ErrFileTooLarge, len(data), path)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("workspace: mkdir %s: %w", dir, err)
	}
	if err := writeAtomic(abs, data); err != nil {
		return "", fmt.Errorf("workspace: write %s: %w", path, err)
	}
	return abs, nil
}

// MkdirAll creates a directory inside Root and returns its absolute path.
func (s *Sandbox) MkdirAll(path string) (string, error) {
	abs, err := s.Resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("workspace: mkdir %s: %w", path, err)
	}
	return abs, nil
}

func writeAtomic(dest string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0o644)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
