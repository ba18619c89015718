package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file location.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	LogLevel           string      `yaml:"logLevel"`
	SearchURL          string      `yaml:"searchURL"`
	PricesURL          string      `yaml:"pricesURL"`
	APIBaseURL         string      `yaml:"apiBaseURL"`
	UpdateURL          string      `yaml:"updateURL"`
	DebounceMillis     int         `yaml:"debounceMillis"`
	NotificationMillis int         `yaml:"notificationMillis"`
	HTTPTimeoutSeconds int         `yaml:"httpTimeoutSeconds"`
	Store              StoreConfig `yaml:"store"`
}

// StoreConfig selects the durable key/value backend.
type StoreConfig struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"dataDir"`
	RedisAddr      string `yaml:"redisAddr"`
	RedisPassword  string `yaml:"redisPassword"`
	RedisPrefix    string `yaml:"redisPrefix"`
	DatabaseURL    string `yaml:"databaseURL"`
	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioBucket    string `yaml:"minioBucket"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
}

// Load reads config from path (defaults to config.yaml), applies SMARTSHOP_*
// env overrides and defaults, then validates.
func Load(path string) (FileConfig, error) {
	cfg := FileConfig{}
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig) {
	if v := os.Getenv("SMARTSHOP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_SEARCH_URL"); v != "" {
		cfg.SearchURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_PRICES_URL"); v != "" {
		cfg.PricesURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_UPDATE_URL"); v != "" {
		cfg.UpdateURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_DEBOUNCE_MILLIS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.DebounceMillis = n
		}
	}
	if v := os.Getenv("SMARTSHOP_NOTIFICATION_MILLIS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.NotificationMillis = n
		}
	}
	if v := os.Getenv("SMARTSHOP_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.HTTPTimeoutSeconds = n
		}
	}
	if v := os.Getenv("SMARTSHOP_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = strings.TrimSpace(v)
	}
	if v := os.Getenv("SMARTSHOP_DATA_DIR"); v != "" {
		cfg.Store.DataDir = strings.TrimSpace(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Store.RedisPassword = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Store.DatabaseURL = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Store.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.Store.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.Store.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.Store.MinioBucket = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Store.MinioUseSSL = b
		}
	}
}

func applyDefaults(cfg *FileConfig) {
	if cfg.DebounceMillis == 0 {
		cfg.DebounceMillis = 300
	}
	if cfg.NotificationMillis == 0 {
		cfg.NotificationMillis = 5000
	}
	if cfg.HTTPTimeoutSeconds == 0 {
		cfg.HTTPTimeoutSeconds = 10
	}
	if strings.TrimSpace(cfg.Store.Backend) == "" {
		cfg.Store.Backend = "file"
	}
	if strings.TrimSpace(cfg.Store.DataDir) == "" {
		cfg.Store.DataDir = ".smartshop"
	}
}

func validateConfig(cfg FileConfig) error {
	if err := requireURL("searchURL", cfg.SearchURL); err != nil {
		return err
	}
	if err := requireURL("pricesURL", cfg.PricesURL); err != nil {
		return err
	}
	if err := requireURL("apiBaseURL", cfg.APIBaseURL); err != nil {
		return err
	}
	if cfg.DebounceMillis < 0 || cfg.NotificationMillis < 0 || cfg.HTTPTimeoutSeconds < 0 {
		return errors.New("config: durations must be >= 0")
	}
	switch strings.ToLower(cfg.Store.Backend) {
	case "file", "memory":
	case "redis":
		if strings.TrimSpace(cfg.Store.RedisAddr) == "" {
			return errors.New("config: store.redisAddr is required for the redis backend")
		}
	case "postgres":
		if strings.TrimSpace(cfg.Store.DatabaseURL) == "" {
			return errors.New("config: store.databaseURL is required for the postgres backend")
		}
	case "minio":
		if strings.TrimSpace(cfg.Store.MinioEndpoint) == "" || strings.TrimSpace(cfg.Store.MinioBucket) == "" {
			return errors.New("config: store.minioEndpoint and store.minioBucket are required for the minio backend")
		}
	default:
		return fmt.Errorf("config: unknown store.backend %q", cfg.Store.Backend)
	}
	return nil
}

func requireURL(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("config: %s is required (set in config.yaml)", name)
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: %s must be an absolute URL, got %q", name, value)
	}
	return nil
}

// Debounce returns the configured debounce delay.
func (c FileConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// NotificationDuration returns how long notifications stay visible.
func (c FileConfig) NotificationDuration() time.Duration {
	return time.Duration(c.NotificationMillis) * time.Millisecond
}

// HTTPTimeout returns the per-request client timeout.
func (c FileConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
