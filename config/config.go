// Package config handles nativecall.toml bridge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file.
const FileName = "nativecall.toml"

// Config represents a nativecall.toml configuration.
type Config struct {
	Bridge Bridge `toml:"bridge"`
	Log    Log    `toml:"log"`
	Trace  Trace  `toml:"trace"`

	// Dir is the directory containing the nativecall.toml file (set at load
	// time). Empty for the default configuration.
	Dir string `toml:"-"`
}

// Bridge configures the native-call bridge itself.
type Bridge struct {
	SmallIntMin int64 `toml:"small-int-min"`
	SmallIntMax int64 `toml:"small-int-max"`
}

// Log configures commonlog output.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Trace configures recording of boundary crossings.
type Trace struct {
	Enabled bool   `toml:"enabled"`
	Journal string `toml:"journal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bridge: Bridge{SmallIntMin: -5, SmallIntMax: 256},
		Log:    Log{Verbosity: 0},
		Trace:  Trace{Journal: ".nativecall/trace.db"},
	}
}

// Load parses a nativecall.toml file from the given directory. Keys the
// file leaves out keep their default values.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find a nativecall.toml file, then
// loads and returns it. Returns the default configuration if none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks the configuration for values the bridge cannot run with.
func (c *Config) Validate() error {
	if c.Bridge.SmallIntMin > 0 || c.Bridge.SmallIntMax < 0 {
		return fmt.Errorf("small int range [%d, %d] must contain 0", c.Bridge.SmallIntMin, c.Bridge.SmallIntMax)
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > 2 {
		return fmt.Errorf("log verbosity %d out of range [-4, 2]", c.Log.Verbosity)
	}
	if c.Trace.Enabled && c.Trace.Journal == "" {
		return fmt.Errorf("trace enabled without a journal path")
	}
	return nil
}

// JournalPath returns the trace journal path, resolved against Dir when it
// is relative.
func (c *Config) JournalPath() string {
	if c.Trace.Journal == "" || filepath.IsAbs(c.Trace.Journal) || c.Dir == "" {
		return c.Trace.Journal
	}
	return filepath.Join(c.Dir, c.Trace.Journal)
}

// LogPath returns the log file path resolved like JournalPath. Empty means
// stderr.
func (c *Config) LogPath() string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) || c.Dir == "" {
		return c.Log.File
	}
	return filepath.Join(c.Dir, c.Log.File)
}
