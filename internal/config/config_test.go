package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout())
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Defaults()
	src := `
[output]
class_name = "Program"
indent = 0

[java]
timeout = "5s"

[compiler]
strict = true
`
	if err := Decode(strings.NewReader(src), &cfg); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.Output.ClassName != "Program" || cfg.Output.Indent != 0 || !cfg.Compiler.Strict {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Output.Dir != "out" || cfg.Java.Javac != "javac" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Timeout())
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Defaults()
	err := Decode(strings.NewReader("[output]\nclassname = \"X\"\n"), &cfg)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Logging.Level)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("explicit missing file: expected ErrNotExist, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	env := []string{
		"HOME=/root",
		"PYJAVA_CLASS_NAME=App",
		"PYJAVA_INDENT=2",
		"PYJAVA_STRICT=true",
		"PYJAVA_SPACED_PRINT=1",
		"PYJAVA_TIMEOUT=1m",
		"PYJAVA_UNKNOWN=x",
		"PYJAVA_=empty",
	}
	if err := ApplyEnv(&cfg, env); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Output.ClassName != "App" || cfg.Output.Indent != 2 || !cfg.Compiler.Strict || !cfg.Compiler.SpacedPrint || cfg.Java.Timeout != "1m" {
		t.Errorf("env not applied: %+v", cfg)
	}

	if err := ApplyEnv(&cfg, []string{"PYJAVA_INDENT=wide"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"class name", func(c *Config) { c.Output.ClassName = "9lives" }},
		{"reserved class name", func(c *Config) { c.Output.ClassName = "class" }},
		{"empty dir", func(c *Config) { c.Output.Dir = " " }},
		{"negative indent", func(c *Config) { c.Output.Indent = -1 }},
		{"timeout", func(c *Config) { c.Java.Timeout = "soon" }},
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Defaults()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "class_name = 'Main'") && !strings.Contains(buf.String(), `class_name = "Main"`) {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}
	var cfg Config
	if err := Decode(&buf, &cfg); err != nil {
		t.Fatalf("Decode of encoded config failed: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("expected defaults back, got %+v", cfg)
	}
}
