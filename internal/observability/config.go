package observability

import (
	"fmt"
	"os"
	"strconv"
)

// Supported trace samplers.
const (
	SamplerAlwaysOn            = "always_on"
	SamplerAlwaysOff           = "always_off"
	SamplerTraceIDRatio        = "traceidratio"
	SamplerParentBasedAlwaysOn = "parentbased_always_on"
)

// Config holds OpenTelemetry and logging configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	TracesEndpoint   string
	TracesEnabled    bool
	TracesSampler    string
	TracesSamplerArg string

	MetricsEndpoint string
	MetricsEnabled  bool

	LogLevel  string
	LogFormat string // json or console
}

// LoadConfig reads observability configuration from environment variables.
func LoadConfig() Config {
	return Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "thesis-gallery"),
		ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
		Environment:    getEnv("OTEL_DEPLOYMENT_ENVIRONMENT", "development"),

		TracesEndpoint:   getEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "http://localhost:4318/v1/traces"),
		TracesEnabled:    getEnvBool("OTEL_TRACES_ENABLED", false),
		TracesSampler:    getEnv("OTEL_TRACES_SAMPLER", SamplerParentBasedAlwaysOn),
		TracesSamplerArg: getEnv("OTEL_TRACES_SAMPLER_ARG", "1.0"),

		MetricsEndpoint: getEnv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "http://localhost:4318/v1/metrics"),
		MetricsEnabled:  getEnvBool("OTEL_METRICS_ENABLED", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	if c.TracesEnabled && c.TracesEndpoint == "" {
		return fmt.Errorf("traces endpoint is required when traces are enabled")
	}
	if c.MetricsEnabled && c.MetricsEndpoint == "" {
		return fmt.Errorf("metrics endpoint is required when metrics are enabled")
	}
	switch c.TracesSampler {
	case SamplerAlwaysOn, SamplerAlwaysOff, SamplerParentBasedAlwaysOn:
	case SamplerTraceIDRatio:
		ratio, err := strconv.ParseFloat(c.TracesSamplerArg, 64)
		if err != nil || ratio < 0 || ratio > 1 {
			return fmt.Errorf("sampler arg must be a ratio in [0,1], got %q", c.TracesSamplerArg)
		}
	default:
		return fmt.Errorf("unknown sampler type: %s", c.TracesSampler)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
