package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ylikuutio/ylikuutio/internal/core/memory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
)

// Environment variables read by ApplyEnv. EnvConfigPath is read by the CLI.
const (
	EnvConfigPath = "YLIKUUTIO_CONFIG"
	EnvLogLevel   = "YLIKUUTIO_LOG_LEVEL"
	EnvLogFormat  = "YLIKUUTIO_LOG_FORMAT"
	EnvSlabSize   = "YLIKUUTIO_SLAB_SIZE"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Memory  MemoryConfig  `toml:"memory"`
	Console ConsoleConfig `toml:"console"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error, silent
	Format string `toml:"format"` // json or console
}

type MemoryConfig struct {
	SlabSize int `toml:"slab_size"` // objects per allocator slab
}

type ConsoleConfig struct {
	Prompt  string `toml:"prompt"`
	History int    `toml:"history"` // remembered lines, 0 disables history
}

// Load reads a TOML file over the defaults. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Memory: MemoryConfig{
			SlabSize: memory.DefaultSlabSize,
		},
		Console: ConsoleConfig{
			Prompt:  "ylikuutio> ",
			History: 100,
		},
	}
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from YLIKUUTIO_* variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		c.Logging.Format = v
	}
	if v, ok := os.LookupEnv(EnvSlabSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSlabSize, err)
		}
		c.Memory.SlabSize = n
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Memory.SlabSize <= 0 {
		return fmt.Errorf("memory.slab_size: must be positive, got %d", c.Memory.SlabSize)
	}
	if c.Console.History < 0 {
		return fmt.Errorf("console.history: must not be negative, got %d", c.Console.History)
	}
	return nil
}

// LogLevel is the parsed logging level; it assumes Validate passed.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

// LoggerOptions converts the logging section for log.NewWithOptions.
func (c *Config) LoggerOptions() log.Options {
	return log.Options{Level: c.LogLevel(), Format: c.Logging.Format}
}
