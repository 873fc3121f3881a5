package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, VariantArchive, cfg.Variant)
	assert.Equal(t, SourceFile, cfg.Catalog.Kind)
	assert.Equal(t, "data/images.json", cfg.Catalog.Path)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GALLERY_VARIANT", "showcase")
	t.Setenv("CATALOG_SOURCE", "http")
	t.Setenv("CATALOG_URL", "https://example.org/data/images.json")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_ADDRESS", "redis:6379")
	t.Setenv("CACHE_DIAL_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, VariantShowcase, cfg.Variant)
	assert.Equal(t, SourceHTTP, cfg.Catalog.Kind)
	assert.Equal(t, "https://example.org/data/images.json", cfg.Catalog.URL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.Address)
	assert.Equal(t, 2*time.Second, cfg.Cache.DialTimeout)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty port",
			mutate:      func(c *Config) { c.Port = "" },
			expectError: "port cannot be empty",
		},
		{
			name:        "non-numeric port",
			mutate:      func(c *Config) { c.Port = "eighty" },
			expectError: "port must be a valid integer",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			expectError: "port must be between 1 and 65535",
		},
		{
			name:        "unknown environment",
			mutate:      func(c *Config) { c.Environment = "weird" },
			expectError: "environment must be one of",
		},
		{
			name:        "unknown variant",
			mutate:      func(c *Config) { c.Variant = "mosaic" },
			expectError: "variant must be either",
		},
		{
			name:        "file source without path",
			mutate:      func(c *Config) { c.Catalog.Path = "" },
			expectError: "catalog path is required",
		},
		{
			name: "http source without url",
			mutate: func(c *Config) {
				c.Catalog.Kind = SourceHTTP
				c.Catalog.URL = ""
			},
			expectError: "catalog URL is required",
		},
		{
			name: "http source with bad url",
			mutate: func(c *Config) {
				c.Catalog.Kind = SourceHTTP
				c.Catalog.URL = "ftp://example.org/catalog"
			},
			expectError: "must be a valid http(s) URL",
		},
		{
			name: "minio source with bad bucket",
			mutate: func(c *Config) {
				c.Catalog.Kind = SourceMinIO
				c.Catalog.Storage.BucketName = "NO"
			},
			expectError: "bucket name must be",
		},
		{
			name: "enabled cache without address",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.Address = ""
			},
			expectError: "cache address cannot be empty",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Logging.Level = "verbose" },
			expectError: "logging level must be one of",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.Logging.Format = "xml" },
			expectError: "logging format must be",
		},
		{
			name:        "zero read timeout",
			mutate:      func(c *Config) { c.Server.ReadTimeout = 0 },
			expectError: "read timeout must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}

func TestIsValidBucketName(t *testing.T) {
	assert.True(t, isValidBucketName("gallery"))
	assert.True(t, isValidBucketName("my-gallery-01"))
	assert.False(t, isValidBucketName("ab"))
	assert.False(t, isValidBucketName("Gallery"))
	assert.False(t, isValidBucketName("double--hyphen"))
	assert.False(t, isValidBucketName("-edge"))
}
