package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Addr      string `env:"HTTP_ADDR" envDefault:":8083"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	// DBDriver selects the gorm dialect: sqlite (default) or mysql.
	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"DB_DSN" envDefault:"data/chat.db"`

	// UpstreamTimeout bounds a single completion call; image generation
	// can run for minutes.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}
