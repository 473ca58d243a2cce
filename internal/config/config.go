package config

import (
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	CORSOrigins string `yaml:"cors_origins"`
	BodyLimit   int    `yaml:"body_limit"`
}

type CatalogConfig struct {
	Source       string        `yaml:"source"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "3000",
			CORSOrigins: "*",
			BodyLimit:   4 * 1024,
		},
		Catalog: CatalogConfig{
			Source:       "expanded_pc_components.csv",
			FetchTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and the environment, in that order of precedence.
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
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

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.CORSOrigins = getEnv("CORS_ORIGINS", c.Server.CORSOrigins)
	c.Catalog.Source = getEnv("CATALOG_SOURCE", c.Catalog.Source)
	c.Logging.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Logging.Level))

	limit, err := getEnvAsInt("BODY_LIMIT", c.Server.BodyLimit)
	if err != nil {
		return err
	}
	c.Server.BodyLimit = limit

	timeout, err := getEnvAsDuration("CATALOG_FETCH_TIMEOUT", c.Catalog.FetchTimeout)
	if err != nil {
		return err
	}
	c.Catalog.FetchTimeout = timeout

	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT must be positive, got %d", c.Server.BodyLimit)
	}
	if c.Catalog.Source == "" {
		return fmt.Errorf("CATALOG_SOURCE is required")
	}
	if c.Catalog.FetchTimeout <= 0 {
		return fmt.Errorf("CATALOG_FETCH_TIMEOUT must be positive, got %s", c.Catalog.FetchTimeout)
	}
	if _, ok := logLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("unknown LOG_LEVEL %q", c.Logging.Level)
	}

	return nil
}

// LogLevel returns the fiber log level matching Logging.Level.
func (c *Config) LogLevel() log.Level {
	return logLevels[c.Logging.Level]
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
	}

	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}

	return value, nil
}
