package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "thesis-gallery", cfg.ServiceName)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.TracesEnabled)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, SamplerParentBasedAlwaysOn, cfg.TracesSampler)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "gallery-test")
	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_TRACES_SAMPLER", SamplerTraceIDRatio)
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.25")
	t.Setenv("LOG_FORMAT", "console")

	cfg := LoadConfig()
	assert.Equal(t, "gallery-test", cfg.ServiceName)
	assert.True(t, cfg.TracesEnabled)
	assert.Equal(t, SamplerTraceIDRatio, cfg.TracesSampler)
	assert.Equal(t, "0.25", cfg.TracesSamplerArg)
	assert.Equal(t, "console", cfg.LogFormat)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	base := LoadConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: "service name is required",
		},
		{
			name: "traces enabled without endpoint",
			mutate: func(c *Config) {
				c.TracesEnabled = true
				c.TracesEndpoint = ""
			},
			wantErr: "traces endpoint is required",
		},
		{
			name: "metrics enabled without endpoint",
			mutate: func(c *Config) {
				c.MetricsEnabled = true
				c.MetricsEndpoint = ""
			},
			wantErr: "metrics endpoint is required",
		},
		{
			name:    "unknown sampler",
			mutate:  func(c *Config) { c.TracesSampler = "coinflip" },
			wantErr: "unknown sampler type",
		},
		{
			name: "ratio sampler with bad arg",
			mutate: func(c *Config) {
				c.TracesSampler = SamplerTraceIDRatio
				c.TracesSamplerArg = "2.5"
			},
			wantErr: "sampler arg must be a ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLogLevel("debug").String())
	assert.Equal(t, "warn", parseLogLevel("warning").String())
	assert.Equal(t, "info", parseLogLevel("bogus").String())
}
