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

// ConfigFileEnv names the environment variable holding an optional YAML
// config file. Values from the file are applied before environment
// overrides.
const ConfigFileEnv = "TASKMATE_CONFIG"

// Config holds the configuration for the task manager
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Recommend RecommendConfig `yaml:"recommend"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
}

// StorageConfig selects where the task list is kept
type StorageConfig struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir"`
}

// RecommendConfig holds the default result cap and score cutoff for
// similar-task requests. Callers may override both per request.
type RecommendConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"`
}

// APIConfig holds HTTP server configuration
type APIConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
			DataDir: "./data",
		},
		Recommend: RecommendConfig{
			TopK:     3,
			MinScore: 0.1,
		},
		API: APIConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by TASKMATE_CONFIG, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := GetStringEnv(ConfigFileEnv, ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Storage.Backend = GetStringEnv("TASKMATE_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.DataDir = GetStringEnv("TASKMATE_DATA_DIR", c.Storage.DataDir)

	c.Recommend.TopK = GetIntEnv("TASKMATE_TOP_K", c.Recommend.TopK)
	c.Recommend.MinScore = GetFloatEnv("TASKMATE_MIN_SCORE", c.Recommend.MinScore)

	c.API.Addr = GetStringEnv("TASKMATE_API_ADDR", c.API.Addr)
	c.API.AllowedOrigins = GetStringSliceEnv("TASKMATE_ALLOWED_ORIGINS", c.API.AllowedOrigins)
	c.API.ReadTimeout = GetDurationEnv("TASKMATE_API_READ_TIMEOUT", c.API.ReadTimeout)
	c.API.WriteTimeout = GetDurationEnv("TASKMATE_API_WRITE_TIMEOUT", c.API.WriteTimeout)
	c.API.ShutdownTimeout = GetDurationEnv("TASKMATE_API_SHUTDOWN_TIMEOUT", c.API.ShutdownTimeout)

	c.Log.Level = GetStringEnv("TASKMATE_LOG_LEVEL", c.Log.Level)
	c.Log.JSON = GetBoolEnv("TASKMATE_LOG_JSON", c.Log.JSON)
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir must not be empty"))
	}
	if c.Recommend.TopK < 0 {
		errs = append(errs, fmt.Errorf("recommend.top_k must be >= 0, got %d", c.Recommend.TopK))
	}
	if c.Recommend.MinScore < 0 || c.Recommend.MinScore > 1 {
		errs = append(errs, fmt.Errorf("recommend.min_score must be within [0, 1], got %g", c.Recommend.MinScore))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetStringSliceEnv splits a comma-separated value, dropping blank items.
func GetStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
