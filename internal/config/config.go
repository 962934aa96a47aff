package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"stayfront/internal/domain/shared/money"
)

// Config aggregates client configuration loaded from environment variables.
type Config struct {
	Env         string        `env:"APP_ENV" env-default:"dev"`
	APIBaseURL  string        `env:"API_BASE_URL" env-default:"http://localhost:8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`
	SessionFile string        `env:"SESSION_FILE" env-default:".stayfront/session.json"`
	Currency    string        `env:"CURRENCY" env-default:"INR"`
}

// Load reads configuration from the current environment. A malformed
// CURRENCY is rejected here so price construction further down never
// has to deal with one.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := money.New(0, cfg.Currency); err != nil {
		return Config{}, fmt.Errorf("config: CURRENCY %q: %w", cfg.Currency, err)
	}
	return cfg, nil
}
