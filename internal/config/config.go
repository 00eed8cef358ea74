package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rotanim/internal/render"
	"github.com/san-kum/rotanim/internal/session"
)

const (
	DefaultIntervalMs = 1000
	DefaultScale      = 16
	DefaultOutput     = "frames"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Rows       int     `yaml:"rows" toml:"rows"`
	Cols       int     `yaml:"cols" toml:"cols"`
	Keys       int     `yaml:"keys" toml:"keys"`
	Seed       int64   `yaml:"seed" toml:"seed"`
	IntervalMs int     `yaml:"interval_ms" toml:"interval_ms"`
	Gradient   string  `yaml:"gradient" toml:"gradient"`
	Scale      int     `yaml:"scale" toml:"scale"`
	Input      string  `yaml:"input,omitempty" toml:"input,omitempty"`
	InputScale float64 `yaml:"input_scale" toml:"input_scale"`
	Output     string  `yaml:"output" toml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:       session.DefaultRows,
		Cols:       session.DefaultCols,
		Keys:       session.DefaultKeys,
		IntervalMs: DefaultIntervalMs,
		Gradient:   render.DefaultGradient,
		Scale:      DefaultScale,
		InputScale: 1,
		Output:     DefaultOutput,
	}
}

// Load decodes path over the defaults. The extension picks the format:
// .toml for TOML, anything else for YAML.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes path over a copy of base, so fields the file leaves out
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cp := *base
	cfg := &cp
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" && c.Rows < 2 {
		errs = append(errs, fmt.Errorf("rows must be at least 2, got %d", c.Rows))
	}
	if c.Input == "" && c.Cols < 1 {
		errs = append(errs, fmt.Errorf("cols must be at least 1, got %d", c.Cols))
	}
	if c.Keys < 0 {
		errs = append(errs, fmt.Errorf("keys must not be negative, got %d", c.Keys))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %d", c.Scale))
	}
	if c.IntervalMs < 0 {
		errs = append(errs, fmt.Errorf("interval_ms must not be negative, got %d", c.IntervalMs))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Interval converts IntervalMs. Zero means the playback default.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
