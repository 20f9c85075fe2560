package client

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the terminal client's view of the server. Values come from
// startup.yaml (or the file passed in) and STARTUP_* environment variables.
type Config struct {
	BaseURL     string
	AnonKey     string
	AccessToken string
	Timeout     time.Duration
}

// LoadConfig reads configuration from path, or searches for startup.yaml in the
// working directory and $HOME/.config/microstartup when path is empty.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("startup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/microstartup")
	}

	v.SetEnvPrefix("STARTUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:     strings.TrimRight(v.GetString("base_url"), "/"),
		AnonKey:     v.GetString("anon_key"),
		AccessToken: v.GetString("access_token"),
		Timeout:     v.GetDuration("timeout"),
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("anon_key", "")
	v.SetDefault("access_token", "")
	v.SetDefault("timeout", 60*time.Second)
}

func validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if cfg.AnonKey == "" {
		return fmt.Errorf("anon_key is required")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
