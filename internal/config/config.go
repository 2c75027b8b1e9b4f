// Package config loads pyjava settings. Sources apply in order: built-in
// defaults, the TOML file, PYJAVA_* environment variables; command-line
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/pyjava/pkg/compiler/python"
)

const (
	FileName  = "pyjava.toml"
	EnvPrefix = "PYJAVA_"
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Output    Output    `toml:"output"`
	Java      Java      `toml:"java"`
	Compiler  Compiler  `toml:"compiler"`
	Workspace Workspace `toml:"workspace"`
	Logging   Logging   `toml:"logging"`
}

type Output struct {
	ClassName string `toml:"class_name"`
	Dir       string `toml:"dir"`
	Indent    int    `toml:"indent"`
}

type Java struct {
	Javac   string `toml:"javac"`
	Java    string `toml:"java"`
	Timeout string `toml:"timeout"`
}

type Compiler struct {
	Strict      bool `toml:"strict"`
	SpacedPrint bool `toml:"spaced_print"`
}

type Workspace struct {
	Root           string `toml:"root"`
	MaxSourceBytes int64  `toml:"max_source_bytes"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func Defaults() Config {
	return Config{
		Output:    Output{ClassName: "Main", Dir: "out", Indent: 4},
		Java:      Java{Javac: "javac", Java: "java", Timeout: "30s"},
		Workspace: Workspace{Root: ".", MaxSourceBytes: 1 << 20},
		Logging:   Logging{Level: "info", Format: "json"},
	}
}

// Load returns the defaults overlaid with the file at path. An empty path
// looks for FileName in the working directory and tolerates its absence.
func Load(path string) (Config, error) {
	cfg := Defaults()
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML from r onto cfg. Keys absent from r keep their
// current values; unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// ApplyEnv overlays PYJAVA_* variables from environ onto cfg. Unknown
// names are ignored; malformed values are an error.
func ApplyEnv(cfg *Config, environ []string) error {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}
		eq := strings.IndexByte(kv, '=')
		if eq <= len(EnvPrefix) {
			continue
		}
		key, val := strings.TrimPrefix(kv[:eq], EnvPrefix), strings.TrimSpace(kv[eq+1:])
		switch key {
		case "CLASS_NAME":
			cfg.Output.ClassName = val
		case "OUTPUT_DIR":
			cfg.Output.Dir = val
		case "INDENT":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, kv[:eq], err)
			}
			cfg.Output.Indent = n
		case "JAVAC":
			cfg.Java.Javac = val
		case "JAVA":
			cfg.Java.Java = val
		case "TIMEOUT":
			cfg.Java.Timeout = val
		case "STRICT":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, kv[:eq], err)
			}
			cfg.Compiler.Strict = b
		case "SPACED_PRINT":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, kv[:eq], err)
			}
			cfg.Compiler.SpacedPrint = b
		case "ROOT":
			cfg.Workspace.Root = val
		case "MAX_SOURCE_BYTES":
			n, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, kv[:eq], err)
			}
			cfg.Workspace.MaxSourceBytes = n
		case "LOG_LEVEL":
			cfg.Logging.Level = val
		case "LOG_FORMAT":
			cfg.Logging.Format = val
		}
	}
	return nil
}

// Validate checks every field the shell depends on.
func (c Config) Validate() error {
	var errs []error
	if !python.ValidClassName(c.Output.ClassName) {
		errs = append(errs, fmt.Errorf("output.class_name %q is not a Java identifier", c.Output.ClassName))
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, errors.New("output.dir is empty"))
	}
	if c.Output.Indent < 0 {
		errs = append(errs, fmt.Errorf("output.indent %d is negative", c.Output.Indent))
	}
	if d, err := time.ParseDuration(c.Java.Timeout); err != nil || d < 0 {
		errs = append(errs, fmt.Errorf("java.timeout %q is not a duration", c.Java.Timeout))
	}
	if c.Workspace.MaxSourceBytes < 0 {
		errs = append(errs, errors.New("workspace.max_source_bytes is negative"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is unknown", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is unknown", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Timeout returns java.timeout parsed, or zero when it does not parse.
func (c Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.Java.Timeout)
	return d
}
