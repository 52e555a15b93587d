package metrics

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Enabled           bool          `env:"ENABLED" envDefault:"true"`
	Path              string        `env:"PATH" envDefault:"/metrics"`
	Host              string        `env:"HOST"`
	Port              int           `env:"PORT" envDefault:"8081"`
	HttpTimeout       time.Duration `env:"HTTP_TIMEOUT" envDefault:"1m"`
	HttpHeaderTimeout time.Duration `env:"HTTP_HEADER_TIMEOUT" envDefault:"1m"`
}

// DefaultConfig returns the envDefault values of Config. It panics if a tag does not parse.
func DefaultConfig() Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		panic(err)
	}
	return cfg
}
