package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/adptarray/array"
	"github.com/joshuapare/adptarray/internal/script"
)

// Config is the adptctl configuration file.
//
// Example:
//
//	format = "plain"
//	max_len = 4096
//	max_bytes = 67108864
//	kind = "record"
//	encoding = "latin1"
//	strict = true
//
//	[log]
//	enabled = true
//	dir = "/var/log/adptctl"
//	level = "debug"
//	stderr = false
type Config struct {
	Format   string    `toml:"format"`
	MaxLen   int       `toml:"max_len"`
	MaxBytes int       `toml:"max_bytes"`
	Kind     string    `toml:"kind"`
	Encoding string    `toml:"encoding"`
	Strict   bool      `toml:"strict"`
	Log      LogConfig `toml:"log"`
}

// LogConfig is the [log] table.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Level   string `toml:"level"`
	Stderr  bool   `toml:"stderr"`
}

// LoadConfig reads path. An empty path returns the zero Config.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undec[0].String())
	}
	return c, nil
}

// Validate checks values that flags and files can both set.
func (c Config) Validate() error {
	if _, err := array.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.MaxLen <= 0 {
		return fmt.Errorf("max_len must be positive, got %d", c.MaxLen)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must not be negative, got %d", c.MaxBytes)
	}
	switch script.Kind(c.Kind) {
	case "", script.KindInt, script.KindText, script.KindRecord:
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}
