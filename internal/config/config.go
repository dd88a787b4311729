// Package config loads optional YAML-backed interpreter settings:
// default date format, the environment-stack depth safety net (DESIGN.md
// "Environment stack backing storage"), and print's trailing newline.
// None of this exists in the original interpreter, which compiled these
// as fixed constants; exposing them as config is an ambient addition so
// the CLI and embedders can tune the interpreter without a rebuild.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/apptap/tap/internal/ast"
)

// Config is the interpreter's tunable settings.
type Config struct {
	// DefaultDateFormat is used by `date.str` with no explicit format
	// argument. Defaults to ast.DefaultDateFormat.
	DefaultDateFormat string `yaml:"default_date_format"`
	// MaxEnvironmentCount bounds environment-stack depth; 0 means
	// unbounded. Defaults to 8 * 1024 — see Default().
	MaxEnvironmentCount int `yaml:"max_environment_count"`
	// PrintTrailingNewline controls whether the `print` primitive appends
	// a newline after each call, matching the CLI's conventional
	// behaviour but overridable for embedders that want raw output.
	PrintTrailingNewline bool `yaml:"print_trailing_newline"`
}

// Default returns the configuration used when no YAML file is supplied.
func Default() Config {
	return Config{
		DefaultDateFormat:    ast.DefaultDateFormat,
		MaxEnvironmentCount:  8 * 1024,
		PrintTrailingNewline: true,
	}
}

// Load reads and parses a YAML config file, starting from Default() and
// overriding only the fields present in the file.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DefaultDateFormat == "" {
		cfg.DefaultDateFormat = ast.DefaultDateFormat
	}
	return cfg, nil
}
