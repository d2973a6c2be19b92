package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the
// current environment. Development and test tolerate missing credentials so
// local runs against defaults still work; production does not.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt secret is required (JWT_SECRET or jwt_secret secret)")
	}

	if IsProduction() {
		if cfg.DBUser == "" {
			errors = append(errors, "db user is required in production")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "db password is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "db ssl mode must not be disabled in production")
		}
		if cfg.RedisPassword == "" && cfg.RedisURL == "" {
			errors = append(errors, "redis password or url is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
