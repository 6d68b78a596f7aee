package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load reads the service configuration and validates it.
//
// Values come from ENV, then the YAML file, then env-default tags. The file
// is CONFIG_PATH, or ./config.yaml when unset; only an explicitly named file
// is required to exist.
func Load() (*Config, error) {
	var cfg Config
	if err := read(&cfg); err != nil {
		return nil, fmt.Errorf("bookloan config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("bookloan config: %w", err)
	}
	return &cfg, nil
}

func read(cfg *Config) error {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path, explicit = defaultConfigPath, false
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return fmt.Errorf("read env: %w", err)
		}
	}
	return nil
}
