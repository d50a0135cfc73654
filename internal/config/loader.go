package config

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
)

// EnvPrefix prefixes the environment variables read by the loader, e.g.
// CODESHAPE_LOG_LEVEL.
const EnvPrefix = "CODESHAPE"

// Loader reads settings from a config file, the environment and any flags
// bound to its Viper instance.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader creates a loader. An empty file searches the working directory
// for an optional codeshape.yaml; an explicit file must exist.
func NewLoader(file string) *Loader {
	v := viper.New()
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("codeshape")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	return &Loader{v: v, file: file}
}

// Viper exposes the underlying instance so callers can bind flags.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load merges every source and returns the validated result.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	logger := ctxlog.FromContext(ctx)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
		logger.Debug("No config file found, using defaults and environment.")
	} else {
		logger.Debug("Config file loaded.", "path", l.v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.QueryDialect = strings.ToLower(cfg.QueryDialect)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "log_level", cfg.LogLevel, "log_format", cfg.LogFormat, "query_dialect", cfg.QueryDialect)
	return cfg, nil
}

func defaultValues() map[string]any {
	d := Defaults()
	return map[string]any{
		"log_level":     d.LogLevel,
		"log_format":    d.LogFormat,
		"query_dialect": d.QueryDialect,
	}
}
