package config

import (
	"fmt"
	"sort"
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

// requiredFields lists what each environment cannot run without, keyed by
// the setting's environment/secret name.
func requiredFields(env Environment, cfg *Config) map[string]string {
	fields := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"JWT_SECRET":  cfg.JWTSecret,
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		fields["SQLITE_PATH"] = cfg.SQLitePath
	default:
		fields["DB_HOST"] = cfg.DBHost
		fields["DB_PORT"] = cfg.DBPort
		fields["DB_USER"] = cfg.DBUser
		fields["DB_PASSWORD"] = cfg.DBPassword
		fields["DB_NAME"] = cfg.DBName
	}

	if env == Production {
		redis := cfg.RedisURL
		if redis == "" {
			redis = cfg.RedisHost
		}
		fields["REDIS_URL"] = redis
		fields["S3_BUCKET_NAME"] = cfg.S3BucketName
	}
	return fields
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []string

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, ValidationError{Field: "DATABASE_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}
	if env == Production && cfg.DBDriver == DriverSQLite {
		errs = append(errs, ValidationError{Field: "DATABASE_DRIVER", Message: "sqlite is not allowed in production"}.Error())
	}

	for name, value := range requiredFields(env, cfg) {
		if value == "" {
			errs = append(errs, ValidationError{Field: name, Message: "is required"}.Error())
		}
	}

	if err := cfg.Pantry.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
