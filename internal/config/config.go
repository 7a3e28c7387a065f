// Package config provides configuration management for btngen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grindlemire/btngen/internal/compgen"
)

// DefaultFileName is the config file looked up in the working directory when
// no --config flag is given.
const DefaultFileName = "btngen.yaml"

// DefaultOutputSuffix replaces the .dcx extension of generated files.
const DefaultOutputSuffix = "_dcx.go"

// Config holds the btngen configuration.
type Config struct {
	Target         compgen.Target `yaml:"target"`
	StrictRows     *bool          `yaml:"strict_rows,omitempty"`
	LineDirectives bool           `yaml:"line_directives,omitempty"`
	OutputSuffix   string         `yaml:"output_suffix,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	strict := true
	return &Config{
		Target:       compgen.DefaultTarget(),
		StrictRows:   &strict,
		OutputSuffix: DefaultOutputSuffix,
	}
}

// applyDefaults fills every unset field.
func (c *Config) applyDefaults() {
	c.Target = c.Target.WithDefaults()
	if c.StrictRows == nil {
		strict := true
		c.StrictRows = &strict
	}
	if c.OutputSuffix == "" {
		c.OutputSuffix = DefaultOutputSuffix
	}
}

// Validate checks that the target is usable and the output suffix produces
// Go files.
func (c *Config) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if !strings.HasSuffix(c.OutputSuffix, ".go") {
		return errors.New("output_suffix must end in .go")
	}
	if strings.ContainsRune(c.OutputSuffix, filepath.Separator) {
		return errors.New("output_suffix must not contain a path separator")
	}
	return nil
}

// Strict reports whether mixed url/btn rows are errors.
func (c *Config) Strict() bool {
	return c.StrictRows == nil || *c.StrictRows
}

// Options converts the configuration into compiler options.
func (c *Config) Options() compgen.Options {
	return compgen.Options{
		Target:         c.Target,
		LenientRows:    !c.Strict(),
		LineDirectives: c.LineDirectives,
	}
}

// OutputPath returns the generated file path for a .dcx source.
// Hyphens in the base name become underscores so the result is a valid Go
// file name in every build tool.
func (c *Config) OutputPath(src string) string {
	dir := filepath.Dir(src)
	base := strings.TrimSuffix(filepath.Base(src), ".dcx")
	base = strings.ReplaceAll(base, "-", "_")
	return filepath.Join(dir, base+c.OutputSuffix)
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve loads path if given. Otherwise it loads DefaultFileName from the
// working directory when present and falls back to Default. The returned
// string is the file actually read, or "" for defaults.
func Resolve(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		cfg, err := Load(DefaultFileName)
		return cfg, DefaultFileName, err
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat %s: %w", DefaultFileName, err)
	}

	return Default(), "", nil
}
