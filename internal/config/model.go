package config

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Config holds the settings an App runs with.
type Config struct {
	LogLevel     string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat    string `mapstructure:"log_format" validate:"oneof=text json"`
	QueryDialect string `mapstructure:"query_dialect" validate:"oneof=hcl expr jq"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		LogLevel:     "info",
		LogFormat:    "text",
		QueryDialect: "hcl",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate configuration")
	}
	msgs := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	})
	return errors.WithHint(
		errors.Newf("invalid configuration: %v", msgs),
		"check codeshape.yaml, CODESHAPE_* environment variables and command-line flags",
	)
}
