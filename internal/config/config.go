package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends the cart can persist to.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the storefront's runtime configuration. Values come from an
// optional YAML file and can be overridden per-field by environment
// variables.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	BackendURL string `yaml:"backend_url"`
	LogLevel   string `yaml:"log_level"`

	Storage StorageConfig `yaml:"storage"`
	Listing ListingConfig `yaml:"listing"`

	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	// Backend selects where the cart blob lives: "file" or "redis".
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir"`
	RedisAddr string `yaml:"redis_addr"`
}

type ListingConfig struct {
	PageSize int `yaml:"page_size"`
	// AppendPaging switches the listing from discrete pages to a
	// load-more flow that accumulates results.
	AppendPaging       bool          `yaml:"append_paging"`
	PreloadConcurrency int           `yaml:"preload_concurrency"`
	PreloadTimeout     time.Duration `yaml:"preload_timeout"`
}

func defaults() Config {
	return Config{
		ListenAddr: ":8080",
		BackendURL: "http://localhost:5000/api",
		LogLevel:   "info",
		Storage: StorageConfig{
			Backend:   BackendFile,
			DataDir:   "./data",
			RedisAddr: "localhost:6379",
		},
		Listing: ListingConfig{
			PageSize:           10,
			PreloadConcurrency: 4,
			PreloadTimeout:     10 * time.Second,
		},
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is non-empty) and finally environment variables, later sources
// winning.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.BackendURL = getEnv("BACKEND_URL", cfg.BackendURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Storage.Backend = getEnv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.DataDir = getEnv("DATA_DIR", cfg.Storage.DataDir)
	cfg.Storage.RedisAddr = getEnv("REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Listing.PageSize = getEnvInt("PAGE_SIZE", cfg.Listing.PageSize)
	cfg.Listing.AppendPaging = getEnvBool("APPEND_PAGING", cfg.Listing.AppendPaging)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", c.Listing.PageSize)
	}
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
