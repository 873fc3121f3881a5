// Package config provides application configuration from environment
// variables, with defaults and validation.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration.
type Config struct {
	Environment string
	Port        string
	Host        string
	Variant     string
	StaticDir   string
	StateDir    string
	Catalog     CatalogConfig
	Cache       CacheConfig
	Logging     *LoggingConfig
	Server      *ServerConfig
}

// Gallery page variants. "archive" is the plain gallery page (newest first),
// "showcase" is the thesis landing variant (oldest first, shuffled on load,
// stacked mode and video cards enabled).
const (
	VariantArchive  = "archive"
	VariantShowcase = "showcase"
)

// Catalog source kinds.
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMinIO = "minio"
)

// CatalogConfig describes where the item catalog document is fetched from.
type CatalogConfig struct {
	Kind    string
	Path    string
	URL     string
	Storage StorageConfig
}

// StorageConfig holds object storage configuration for the MinIO source.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	ObjectName      string
	UseSSL          bool
	Region          string
}

// CacheConfig holds the Redis-backed preference store configuration. When
// disabled, preferences fall back to the file store.
type CacheConfig struct {
	Enabled      bool
	Address      string
	Password     string
	Database     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DefaultTTL   time.Duration
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load creates a new configuration from environment variables with validation.
func Load() (*Config, error) {
	useSSL, _ := strconv.ParseBool(getEnv("STORAGE_USE_SSL", "false"))
	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	cacheDB, _ := strconv.Atoi(getEnv("CACHE_DATABASE", "0"))

	readTimeout, _ := time.ParseDuration(getEnv("READ_TIMEOUT", "10s"))
	writeTimeout, _ := time.ParseDuration(getEnv("WRITE_TIMEOUT", "10s"))
	idleTimeout, _ := time.ParseDuration(getEnv("SERVER_TIMEOUT", "30s"))

	config := &Config{
		Environment: getEnv("GO_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		Host:        getEnv("HOST", "localhost"),
		Variant:     strings.ToLower(getEnv("GALLERY_VARIANT", VariantArchive)),
		StaticDir:   getEnv("STATIC_DIR", "web/static"),
		StateDir:    getEnv("STATE_DIR", "data"),
		Catalog: CatalogConfig{
			Kind: strings.ToLower(getEnv("CATALOG_SOURCE", SourceFile)),
			Path: getEnv("CATALOG_PATH", "data/images.json"),
			URL:  getEnv("CATALOG_URL", ""),
			Storage: StorageConfig{
				Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
				AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
				SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
				BucketName:      getEnv("STORAGE_BUCKET", "gallery"),
				ObjectName:      getEnv("STORAGE_CATALOG_OBJECT", "images.json"),
				UseSSL:          useSSL,
				Region:          getEnv("STORAGE_REGION", "us-east-1"),
			},
		},
		Cache: CacheConfig{
			Enabled:      cacheEnabled,
			Address:      getEnv("CACHE_ADDRESS", "localhost:6379"),
			Password:     getEnv("CACHE_PASSWORD", ""),
			Database:     cacheDB,
			DialTimeout:  getDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("CACHE_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
			DefaultTTL:   getDuration("CACHE_DEFAULT_TTL", 0),
		},
		Logging: &LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
		Server: &ServerConfig{
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad loads configuration and panics on error.
func MustLoad() *Config {
	config, err := Load()
	if err != nil {
		panic(err)
	}
	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
