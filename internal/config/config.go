// Package config loads tool configuration from a .sift.toml file. The file
// is optional; defaults apply when no config is found.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"sift/internal/diag"
	"sift/internal/rules"
)

// FileName is the config file looked up next to (or above) the lint target.
const FileName = ".sift.toml"

// DefaultMaxDiagnostics bounds diagnostics kept per run.
const DefaultMaxDiagnostics = 256

// Config mirrors the .sift.toml layout.
type Config struct {
	MaxDiagnostics uint16                `toml:"max-diagnostics"`
	Rules          map[string]RuleConfig `toml:"rules"`
}

// RuleConfig is the per-rule section:
//
//	[rules.prefer-type-check]
//	enabled = true
//	severity = "error"
type RuleConfig struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{MaxDiagnostics: DefaultMaxDiagnostics}
}

// Load reads and decodes one config file.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.MaxDiagnostics == 0 {
		cfg.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return cfg, nil
}

// Discover walks from dir upward looking for FileName and loads the first
// hit. A missing file is not an error: the defaults come back with ok=false.
func Discover(dir string) (*Config, string, error) {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}
	for {
		path := filepath.Join(cur, FileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := Load(path)
			if err != nil {
				return nil, "", err
			}
			return cfg, path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("config %s: %w", path, err)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return Default(), "", nil
		}
		cur = parent
	}
}

// RuleSettings converts the rules sections into registry overrides.
func (c *Config) RuleSettings() (map[string]rules.Settings, error) {
	if len(c.Rules) == 0 {
		return nil, nil
	}
	out := make(map[string]rules.Settings, len(c.Rules))
	for name, rc := range c.Rules {
		s := rules.Settings{Enabled: rc.Enabled}
		if rc.Severity != "" {
			sev, ok := diag.ParseSeverity(rc.Severity)
			if !ok {
				return nil, fmt.Errorf("rule %s: unknown severity %q", name, rc.Severity)
			}
			s.Severity = &sev
		}
		out[name] = s
	}
	return out, nil
}
