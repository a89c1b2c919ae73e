package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"3001"`

	// Path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" envDefault:"database/brokerconnect.db"`

	// Secret used to sign session tokens
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// Session token lifetime in hours
	TokenExpiryHours int `env:"TOKEN_EXPIRY_HOURS" envDefault:"168"`

	// "development" exposes error detail in 500 responses
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
