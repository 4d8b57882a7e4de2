package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the project-level lint configuration file, looked up
// from the linted file's directory upwards.
const ConfigFileName = ".verilsp.toml"

const defaultLineLimit = 100

// Config selects and tunes the lint rules.
type Config struct {
	// Disable lists rule names that should not run.
	Disable []string `toml:"disable"`
	// LineLimit is the maximum line length enforced by the line-length
	// rule.
	LineLimit int `toml:"line_limit"`
	// TopModules names the design roots, enabling the rules that only
	// apply to top-level modules. The language server can also supply
	// this set at runtime through its initialization options.
	TopModules []string `toml:"top_modules"`
}

// DefaultConfig returns the configuration used when no config file is
// found.
func DefaultConfig() Config {
	return Config{LineLimit: defaultLineLimit}
}

// LoadConfig reads a TOML config file. Unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("loading %s: %w", path, err)
	}
	if cfg.LineLimit <= 0 {
		cfg.LineLimit = defaultLineLimit
	}
	return cfg, nil
}

// FindConfig walks from dir to the filesystem root looking for a config
// file. Missing or unreadable configs fall back to the defaults.
func FindConfig(dir string) Config {
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			if err == nil {
				return cfg
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return DefaultConfig()
		}
		dir = parent
	}
}
