// Package config loads the server settings from defaults, an optional
// YAML or TOML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultPort      = 35000
	DefaultStaticDir = "public"
	DefaultLogLevel  = "info"
)

// Config holds every setting the server reads at start-up.
type Config struct {
	Host      string `yaml:"host" toml:"host"`
	Port      int    `yaml:"port" toml:"port" validate:"min=0,max=65535"`
	StaticDir string `yaml:"static_dir" toml:"static_dir" validate:"required"`

	// Workers is the size of the connection pool; 0 means one per CPU.
	Workers int `yaml:"workers" toml:"workers" validate:"min=0"`

	// ReadTimeout bounds how long a connection may take to send its
	// request. 0 disables it.
	ReadTimeout Duration `yaml:"read_timeout" toml:"read_timeout"`

	// ShutdownTimeout bounds how long shutdown waits for in-flight
	// connections. 0 waits for all of them.
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`

	MaxBodyBytes int64  `yaml:"max_body_bytes" toml:"max_body_bytes" validate:"min=0"`
	LogLevel     string `yaml:"log_level" toml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Host:         "",
		Port:         DefaultPort,
		StaticDir:    DefaultStaticDir,
		MaxBodyBytes: 10 << 20,
		LogLevel:     DefaultLogLevel,
	}
}

// Load is Read followed by Validate.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds the configuration without validating it: defaults, then the
// file at path if path is non-empty, then environment overrides. Callers
// that overlay more settings validate afterwards.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile overlays the settings found in a .yaml, .yml or .toml file.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from HTTP_HOST, HTTP_PORT, STATIC_DIR and
// LOG_LEVEL when they are set.
func (c *Config) ApplyEnv() {
	c.Host = getEnvOrDefault("HTTP_HOST", c.Host)
	c.Port = getEnvAsIntOrDefault("HTTP_PORT", c.Port)
	c.StaticDir = getEnvOrDefault("STATIC_DIR", c.StaticDir)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
}

var validate = validator.New()

// Validate lower-cases LogLevel, then checks the settings against their
// constraints.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.ReadTimeout < 0 || c.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid config: timeouts must not be negative")
	}
	return nil
}

// Addr returns the host:port the listener binds.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// WorkerCount resolves Workers, substituting the CPU count for 0.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Duration is a time.Duration written as "5s" or "1m30s" in config files.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalText is used by the TOML decoder.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML is used by the YAML decoder.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
