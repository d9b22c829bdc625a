package main

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read once at startup and injected into each component; nothing
// reads the environment after this point. Secret is the JWT signing key and
// must never be logged.
type Config struct {
	Env                  string        `env:"APP_ENV" env-default:"local"`
	ServerPort           string        `env:"SERVER_PORT" env-default:"8080"`
	DatabaseDSN          string        `env:"DB_DSN"`
	Secret               string        `env:"SECRET_KEY"`
	JWTExpiration        time.Duration `env:"JWT_EXPIRATION" env-default:"1h"`
	JWTRefreshExpiration time.Duration `env:"JWT_REFRESH_EXPIRATION" env-default:"24h"`
}

// LoadConfig loads a local .env file if present, then reads the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
