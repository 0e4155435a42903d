// Package config loads the settings shared by the flashlibc command.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MaxPrecision is the largest accepted formatting precision, the number of
// significant decimal digits a double can carry.
const MaxPrecision = 17

// Config holds the command settings.
type Config struct {
	// Precision is the default number of fractional digits for formatting.
	Precision int

	// HeapPages is the initial size of the linear heap in 64 KiB pages and
	// HeapLimitPages the most it may grow to.
	HeapPages      uint32
	HeapLimitPages uint32

	// LogLevel is a zap level name. Development switches to the zap
	// development encoder.
	LogLevel    string
	Development bool
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		Precision:      6,
		HeapPages:      1,
		HeapLimitPages: 16,
		LogLevel:       "info",
	}
}

type fileConfig struct {
	Precision      *int    `toml:"precision" yaml:"precision"`
	HeapPages      *uint32 `toml:"heap_pages" yaml:"heap_pages"`
	HeapLimitPages *uint32 `toml:"heap_limit_pages" yaml:"heap_limit_pages"`
	LogLevel       *string `toml:"log_level" yaml:"log_level"`
	Development    *bool   `toml:"development" yaml:"development"`
}

// Load reads path over the defaults. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (cfg Config, err error) {
	defer Error.WrapP(&err)

	var raw fileConfig

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, err
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}

		err = yaml.Unmarshal(data, &raw)
		if err != nil {
			return Config{}, err
		}
	default:
		return Config{}, Error.New("unsupported config format: %q", ext)
	}

	cfg = Default()
	raw.apply(&cfg)

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (raw fileConfig) apply(cfg *Config) {
	if raw.Precision != nil {
		cfg.Precision = *raw.Precision
	}

	if raw.HeapPages != nil {
		cfg.HeapPages = *raw.HeapPages
	}

	if raw.HeapLimitPages != nil {
		cfg.HeapLimitPages = *raw.HeapLimitPages
	}

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*raw.LogLevel)
	}

	if raw.Development != nil {
		cfg.Development = *raw.Development
	}
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return Error.New("precision out of range: %d", c.Precision)
	}

	if c.HeapPages == 0 {
		return Error.New("heap_pages must be positive")
	}

	if c.HeapLimitPages < c.HeapPages {
		return Error.New(
			"heap_limit_pages below heap_pages: pages=%d limit=%d",
			c.HeapPages,
			c.HeapLimitPages,
		)
	}

	return nil
}
