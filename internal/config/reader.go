package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings cleanenv cannot express with tags.
func (cfg *Config) Validate() error {
	switch cfg.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", cfg.Env)
	}

	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Postgres.Username == "" || cfg.Postgres.Database == "" {
			return fmt.Errorf("postgres username and database are required")
		}
	case DriverMySQL:
		if cfg.MySQL.Username == "" || cfg.MySQL.Database == "" {
			return fmt.Errorf("mysql username and database are required")
		}
	default:
		return fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
	return nil
}
