// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads pollcat configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. POLLCAT_LOG_LEVEL=debug.
const EnvPrefix = "POLLCAT"

// Config is the pollcat configuration.
type Config struct {
	// Copy controls the data path.
	Copy CopyConfig `mapstructure:"copy"`

	// Log holds logging configuration.
	Log LogConfig `mapstructure:"log"`
}

// CopyConfig controls how stdin is copied to stdout.
type CopyConfig struct {
	// BufferSize is the Copier buffer in bytes.
	BufferSize int `mapstructure:"buffer_size"`
	// ZeroRead: immediate or forward.
	ZeroRead string `mapstructure:"zero_read"`
	// ViaAIO routes the output through the aio adapter.
	ViaAIO bool `mapstructure:"via_aio"`
	// MaxEvents is the epoll_wait batch size.
	MaxEvents int `mapstructure:"max_events"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console, json, or auto (console on a terminal)
	Format string `mapstructure:"format"`
	// Outputs: stderr or file paths. stdout is reserved for data.
	Outputs []string `mapstructure:"outputs"`

	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig controls rotation of file outputs.
type RotationConfig struct {
	Enable     bool `mapstructure:"enable"`
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	Compress   bool `mapstructure:"compress"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Copy: CopyConfig{
			BufferSize: 32 * 1024,
			ZeroRead:   "immediate",
			MaxEvents:  128,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "auto",
			Outputs: []string{"stderr"},
			Rotation: RotationConfig{
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// Load reads configuration from path if non-empty, otherwise from
// $POLLCAT_CONFIG or pollcat.yaml in the working directory and
// ~/.config/pollcat. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults so env-only configs work
	v.SetDefault("copy.buffer_size", cfg.Copy.BufferSize)
	v.SetDefault("copy.zero_read", cfg.Copy.ZeroRead)
	v.SetDefault("copy.via_aio", cfg.Copy.ViaAIO)
	v.SetDefault("copy.max_events", cfg.Copy.MaxEvents)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pollcat")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "pollcat"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes fields in place and rejects invalid values.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	case "warning":
		c.Log.Level = "warn"
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}

	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch c.Log.Format {
	case "":
		c.Log.Format = "auto"
	case "auto", "console", "json":
	default:
		return fmt.Errorf("invalid log.format: %q", c.Log.Format)
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	for _, out := range c.Log.Outputs {
		if strings.EqualFold(out, "stdout") {
			return errors.New("invalid log.outputs: stdout carries data")
		}
	}

	if c.Copy.BufferSize <= 0 {
		return fmt.Errorf("invalid copy.buffer_size: %d", c.Copy.BufferSize)
	}
	if c.Copy.MaxEvents <= 0 {
		return fmt.Errorf("invalid copy.max_events: %d", c.Copy.MaxEvents)
	}
	c.Copy.ZeroRead = strings.ToLower(strings.TrimSpace(c.Copy.ZeroRead))
	switch c.Copy.ZeroRead {
	case "":
		c.Copy.ZeroRead = "immediate"
	case "immediate", "forward":
	default:
		return fmt.Errorf("invalid copy.zero_read: %q", c.Copy.ZeroRead)
	}
	return nil
}

// ZeroReadForward reports whether zero-length reads are forwarded.
func (c CopyConfig) ZeroReadForward() bool { return c.ZeroRead == "forward" }
