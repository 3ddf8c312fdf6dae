package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved client configuration. Sources, highest precedence
// first: PETDEX_* environment variables, ~/.petdex/config.yaml, defaults.
type Config struct {
	// APIURL is the base URL of the pet backend.
	APIURL string `mapstructure:"api_url"`
	// LogoutOnDenied forces a logout when a protected call returns 401/403.
	// Off by default; access denial alone does not prove the session is dead.
	LogoutOnDenied bool `mapstructure:"logout_on_denied"`
	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`
	// LogFile is the rotated log file path. Empty disables file logging.
	LogFile string `mapstructure:"log_file"`
	// RequestTimeout bounds every backend call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// settingsKeys are the flat keys bound to PETDEX_* environment variables.
var settingsKeys = []string{
	"api_url",
	"logout_on_denied",
	"log_level",
	"log_file",
	"request_timeout",
}

// Load resolves configuration from the default ~/.petdex directory.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	return LoadFrom(filepath.Join(home, ".petdex"))
}

// LoadFrom resolves configuration using the given directory for the optional
// config.yaml and the default log file.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("logout_on_denied", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "petdex.log"))
	v.SetDefault("request_timeout", 15*time.Second)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("PETDEX")
	for _, key := range settingsKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is fine; env vars and defaults still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request_timeout must be positive, got %s", cfg.RequestTimeout)
	}
	return &cfg, nil
}
