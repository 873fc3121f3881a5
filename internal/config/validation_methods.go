package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("configuration validation failed: %s", strings.Join(messages, "; "))
}

// Has checks if ValidationErrors contains any errors
func (ve ValidationErrors) Has() bool {
	return len(ve) > 0
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var validationErrors ValidationErrors

	if err := c.validateServer(); err != nil {
		validationErrors = append(validationErrors, err...)
	}

	if err := c.validateCatalog(); err != nil {
		validationErrors = append(validationErrors, err...)
	}

	if err := c.validateCache(); err != nil {
		validationErrors = append(validationErrors, err...)
	}

	if c.Logging != nil {
		if err := c.validateLogging(); err != nil {
			validationErrors = append(validationErrors, err...)
		}
	}

	if c.Server != nil {
		if err := c.validateServerTimeouts(); err != nil {
			validationErrors = append(validationErrors, err...)
		}
	}

	if validationErrors.Has() {
		return validationErrors
	}

	return nil
}

func (c *Config) validateServer() ValidationErrors {
	var errors ValidationErrors

	if c.Port == "" {
		errors = append(errors, ValidationError{
			Field:   "port",
			Value:   c.Port,
			Message: "port cannot be empty",
		})
	} else {
		if port, err := strconv.Atoi(c.Port); err != nil {
			errors = append(errors, ValidationError{
				Field:   "port",
				Value:   c.Port,
				Message: "port must be a valid integer",
			})
		} else if port < 1 || port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "port",
				Value:   c.Port,
				Message: "port must be between 1 and 65535",
			})
		}
	}

	if c.Environment != "" {
		validEnvs := []string{"development", "production", "test", "staging"}
		isValid := false
		for _, validEnv := range validEnvs {
			if c.Environment == validEnv {
				isValid = true
				break
			}
		}

		if !isValid {
			errors = append(errors, ValidationError{
				Field:   "environment",
				Value:   c.Environment,
				Message: "environment must be one of: development, production, test, staging",
			})
		}
	}

	if c.Variant != VariantArchive && c.Variant != VariantShowcase {
		errors = append(errors, ValidationError{
			Field:   "variant",
			Value:   c.Variant,
			Message: "variant must be either 'archive' or 'showcase'",
		})
	}

	return errors
}

func (c *Config) validateCatalog() ValidationErrors {
	var errors ValidationErrors

	switch c.Catalog.Kind {
	case SourceFile:
		if c.Catalog.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "catalog.path",
				Value:   c.Catalog.Path,
				Message: "catalog path is required for the file source",
			})
		}
	case SourceHTTP:
		if c.Catalog.URL == "" {
			errors = append(errors, ValidationError{
				Field:   "catalog.url",
				Value:   c.Catalog.URL,
				Message: "catalog URL is required for the http source",
			})
		} else if parsed, err := url.Parse(c.Catalog.URL); err != nil || parsed.Host == "" ||
			(parsed.Scheme != "http" && parsed.Scheme != "https") {
			errors = append(errors, ValidationError{
				Field:   "catalog.url",
				Value:   c.Catalog.URL,
				Message: "catalog URL must be a valid http(s) URL",
			})
		}
	case SourceMinIO:
		errors = append(errors, c.validateStorage()...)
	default:
		errors = append(errors, ValidationError{
			Field:   "catalog.source",
			Value:   c.Catalog.Kind,
			Message: "catalog source must be one of: file, http, minio",
		})
	}

	return errors
}

func (c *Config) validateStorage() ValidationErrors {
	var errors ValidationErrors

	if c.Catalog.Storage.Endpoint == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.endpoint",
			Value:   c.Catalog.Storage.Endpoint,
			Message: "storage endpoint cannot be empty",
		})
	}

	if c.Catalog.Storage.BucketName == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.bucket_name",
			Value:   c.Catalog.Storage.BucketName,
			Message: "storage bucket name cannot be empty",
		})
	} else if !isValidBucketName(c.Catalog.Storage.BucketName) {
		errors = append(errors, ValidationError{
			Field:   "storage.bucket_name",
			Value:   c.Catalog.Storage.BucketName,
			Message: "storage bucket name must be 3-63 characters, lowercase alphanumeric and hyphens only",
		})
	}

	if c.Catalog.Storage.ObjectName == "" {
		errors = append(errors, ValidationError{
			Field:   "storage.catalog_object",
			Value:   c.Catalog.Storage.ObjectName,
			Message: "storage catalog object name cannot be empty",
		})
	}

	if c.Environment == "production" {
		if c.Catalog.Storage.AccessKeyID == "" || c.Catalog.Storage.AccessKeyID == "minioadmin" {
			errors = append(errors, ValidationError{
				Field:   "storage.access_key_id",
				Value:   c.Catalog.Storage.AccessKeyID,
				Message: "storage access key ID must be set for production environment",
			})
		}

		if c.Catalog.Storage.SecretAccessKey == "" || c.Catalog.Storage.SecretAccessKey == "minioadmin" {
			errors = append(errors, ValidationError{
				Field:   "storage.secret_access_key",
				Value:   "[REDACTED]",
				Message: "storage secret access key must be set for production environment",
			})
		}
	}

	return errors
}

func (c *Config) validateCache() ValidationErrors {
	var errors ValidationErrors

	if !c.Cache.Enabled {
		return errors
	}

	if c.Cache.Address == "" {
		errors = append(errors, ValidationError{
			Field:   "cache.address",
			Value:   c.Cache.Address,
			Message: "cache address cannot be empty when cache is enabled",
		})
	}

	if c.Cache.Database < 0 || c.Cache.Database > 15 {
		errors = append(errors, ValidationError{
			Field:   "cache.database",
			Value:   c.Cache.Database,
			Message: "cache database must be between 0 and 15",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.Logging.Level, level) {
			isValidLevel = true
			break
		}
	}

	if !isValidLevel {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "logging level must be one of: debug, info, warn, error",
		})
	}

	validFormats := []string{"json", "console"}
	isValidFormat := false
	for _, format := range validFormats {
		if strings.EqualFold(c.Logging.Format, format) {
			isValidFormat = true
			break
		}
	}

	if !isValidFormat {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: "logging format must be either 'json' or 'console'",
		})
	}

	return errors
}

func (c *Config) validateServerTimeouts() ValidationErrors {
	var errors ValidationErrors

	if c.Server.ReadTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.read_timeout",
			Value:   c.Server.ReadTimeout,
			Message: "read timeout must be greater than 0",
		})
	} else if c.Server.ReadTimeout > 5*time.Minute {
		errors = append(errors, ValidationError{
			Field:   "server.read_timeout",
			Value:   c.Server.ReadTimeout,
			Message: "read timeout should not exceed 5 minutes",
		})
	}

	if c.Server.WriteTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.write_timeout",
			Value:   c.Server.WriteTimeout,
			Message: "write timeout must be greater than 0",
		})
	} else if c.Server.WriteTimeout > 5*time.Minute {
		errors = append(errors, ValidationError{
			Field:   "server.write_timeout",
			Value:   c.Server.WriteTimeout,
			Message: "write timeout should not exceed 5 minutes",
		})
	}

	if c.Server.IdleTimeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "server.idle_timeout",
			Value:   c.Server.IdleTimeout,
			Message: "idle timeout must be greater than 0",
		})
	}

	return errors
}

// isValidBucketName validates S3/MinIO bucket naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	if !isLowerAlphaNum(name[0]) || !isLowerAlphaNum(name[len(name)-1]) {
		return false
	}

	for i, r := range name {
		if !isLowerAlphaNum(byte(r)) && r != '-' {
			return false
		}

		if i > 0 && r == '-' && name[i-1] == '-' {
			return false
		}
	}

	return true
}

func isLowerAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// MustValidate validates the configuration and panics on error
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("configuration validation failed: %v", err))
	}
}
