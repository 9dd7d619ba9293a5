// Package config loads hmlc settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/ast"
)

// FileName is looked up in the working directory.
const FileName = ".hmlc.yaml"

// Error codes used by config:
const (
	// ReadError indicates a file that exists but cannot be read.
	ReadError = pocket.ConfigErrors + iota

	// FormatError indicates malformed YAML or unknown keys.
	FormatError

	// ValueError indicates a setting with a bad value.
	ValueError
)

type Config struct {
	RootType   string   `yaml:"root_type"`
	Extensions []string `yaml:"extensions"`
	Jobs       int      `yaml:"jobs"`
	LogLevel   string   `yaml:"log_level"`
	Color      bool     `yaml:"color"`
	Gen        Gen      `yaml:"gen"`
}

// Gen configures Go code generation.
type Gen struct {
	Package string `yaml:"package"`
	Output  string `yaml:"output"`
}

func Default() *Config {
	return &Config{
		RootType:   ast.DefaultRootType,
		Extensions: []string{".hml"},
		Jobs:       4,
		LogLevel:   "warn",
		Color:      true,
		Gen:        Gen{Package: "templates"},
	}
}

// Load reads file at path, a missing file yields defaults.
func Load(path string) (*Config, error) {
	content, e := os.ReadFile(path)
	if errors.Is(e, os.ErrNotExist) {
		return Default(), nil
	}
	if e != nil {
		return nil, pocket.FormatError(ReadError, "cannot read %s: %s", path, e.Error())
	}
	return Parse(path, content)
}

// Parse decodes content over defaults, unknown keys are rejected.
func Parse(name string, content []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if e := dec.Decode(c); e != nil && !errors.Is(e, io.EOF) {
		return nil, pocket.FormatError(FormatError, "%s: %s", name, e.Error())
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.RootType == "" {
		return pocket.FormatError(ValueError, "root_type must not be empty")
	}
	if c.Jobs < 1 {
		return pocket.FormatError(ValueError, "jobs must be positive, got %d", c.Jobs)
	}
	if len(c.Extensions) == 0 {
		return pocket.FormatError(ValueError, "extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return pocket.FormatError(ValueError, "extension %q must start with a dot", ext)
		}
	}
	if _, e := ParseLevel(c.LogLevel); e != nil {
		return e
	}
	return nil
}

// Level returns configured log level, Validate makes sure it is valid.
func (c *Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// HasExtension reports whether path ends with one of configured extensions.
func (c *Config) HasExtension(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ParseLevel accepts debug, info, warn, and error.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if e := l.UnmarshalText([]byte(name)); e != nil {
		return slog.LevelWarn, pocket.FormatError(ValueError, "unknown log level %q", name)
	}
	return l, nil
}
