package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Optional: hand history recording is skipped when empty.
	PostgresDSN string `env:"POSTGRES_DSN"`

	SmallBlind      int64 `env:"SMALL_BLIND" envDefault:"10"`
	BigBlind        int64 `env:"BIG_BLIND" envDefault:"20"`
	DefaultBuyIn    int64 `env:"DEFAULT_BUYIN" envDefault:"1000"`
	ActionTimeoutMS int64 `env:"ACTION_TIMEOUT_MS" envDefault:"0"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
