// Package config loads service configuration from SERIES_ prefixed environment variables.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/logger"
	"github.com/dora-network/series-utils/metrics"
	"github.com/dora-network/series-utils/server"
)

const prefix = "SERIES_"

type Config struct {
	Log     logger.Config  `envPrefix:"LOG_"`
	HTTP    server.Config  `envPrefix:"HTTP_"`
	Metrics metrics.Config `envPrefix:"METRICS_"`
	// MaxOrder bounds the series order accepted from callers. Recursion depth grows linearly with it.
	MaxOrder uint   `env:"MAX_ORDER" envDefault:"100"`
	Version  string `env:"VERSION" envDefault:"dev"`
}

// Load parses the environment. Unset variables take their defaults.
func Load() (Config, error) {
	return parse(env.Options{Prefix: prefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	return parse(env.Options{Prefix: prefix, Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, err
	}
	if cfg.MaxOrder > evaluator.MaxOrderLimit {
		return Config{}, errors.Invalid("%sMAX_ORDER must be at most %d, got %d", prefix, evaluator.MaxOrderLimit, cfg.MaxOrder)
	}
	return cfg, nil
}
