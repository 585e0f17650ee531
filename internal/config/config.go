package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	Token     string        `koanf:"tablecrm_token"`
	BaseURL   string        `koanf:"tablecrm_base_url"`
	TokenFile string        `koanf:"token_file"`
	Timeout   time.Duration `koanf:"timeout"`
	LogFile   string        `koanf:"log_file"`
	Debug     bool          `koanf:"debug"`
}

func New() (Config, error) {
	cfg := Config{
		TokenFile: "./.tablecrm_token",
		Timeout:   20 * time.Second,
		LogFile:   "./tablecrm-cashier.log",
		Debug:     false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
