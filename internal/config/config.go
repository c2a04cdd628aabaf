package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Provider Provider
	Fetch    Fetch
}

// Provider points at the open-data event feed. The default serves the
// published dataset straight from the repository raw endpoint.
type Provider struct {
	BaseURL    string        `envconfig:"PROVIDER_BASE_URL" default:"https://raw.githubusercontent.com/statsbomb/open-data/master/data"`
	Timeout    time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"30s"`
	MaxRetries int           `envconfig:"PROVIDER_MAX_RETRIES" default:"3"`
}

type Fetch struct {
	Workers  int           `envconfig:"FETCH_WORKERS" default:"4"`
	Interval time.Duration `envconfig:"WATCH_INTERVAL" default:"1h"`
}

func New() (*Config, error) {
	// A local .env is optional; the environment wins either way.
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}
