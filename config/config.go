package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerPort   string        `yaml:"server_port"`
	GinMode      string        `yaml:"gin_mode"`
	MaxFileSize  int64         `yaml:"max_file_size"`
	MaxPages     int           `yaml:"max_pages"`
	RemoveCommas bool          `yaml:"remove_commas"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	SweepEvery   time.Duration `yaml:"sweep_every"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ServerPort:   "8080",
		GinMode:      "release",
		MaxFileSize:  10 * 1024 * 1024, // 10 MB
		MaxPages:     2,
		RemoveCommas: true,
		SessionTTL:   30 * time.Minute,
		SweepEvery:   time.Minute,
		CORSOrigins:  []string{"*"},
	}
}

// LoadConfig layers defaults, an optional YAML file and environment overrides.
// An empty path falls back to CONFIG_FILE; no file at all is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)

	var errs []error
	if v, ok := os.LookupEnv("MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		errs = append(errs, envError("MAX_FILE_SIZE", err))
		c.MaxFileSize = n
	}
	if v, ok := os.LookupEnv("MAX_PAGES"); ok {
		n, err := strconv.Atoi(v)
		errs = append(errs, envError("MAX_PAGES", err))
		c.MaxPages = n
	}
	if v, ok := os.LookupEnv("REMOVE_COMMAS"); ok {
		b, err := strconv.ParseBool(v)
		errs = append(errs, envError("REMOVE_COMMAS", err))
		c.RemoveCommas = b
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		errs = append(errs, envError("SESSION_TTL", err))
		c.SessionTTL = d
	}
	if v, ok := os.LookupEnv("CORS_ORIGIN"); ok {
		c.CORSOrigins = splitList(v)
	}
	return errors.Join(errs...)
}

// Validate rejects limits that would make the service unusable
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("server_port must be set"))
	}
	if c.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("max_file_size must be positive, got %d", c.MaxFileSize))
	}
	if c.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("max_pages must be positive, got %d", c.MaxPages))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL))
	}
	if c.SweepEvery <= 0 {
		errs = append(errs, fmt.Errorf("sweep_every must be positive, got %s", c.SweepEvery))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envError(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("invalid %s: %w", key, err)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
