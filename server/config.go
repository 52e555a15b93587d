package server

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Host              string        `env:"HOST"`
	Port              int           `env:"PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig returns the envDefault values of Config.
func DefaultConfig() Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		panic(err)
	}
	return cfg
}
