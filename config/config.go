package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PRIMECTL_PRIME_ACCESS_TOKEN
const EnvPrefix = "PRIMECTL"

// Load loads the configuration from file and environment. Without an
// explicit path a missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".primectl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/primectl/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DefaultCredentialsFile returns $HOME/.primectl/credentials.toml, or a
// file in the working directory when there is no home directory
func DefaultCredentialsFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".primectl", "credentials.toml")
	}
	return "credentials.toml"
}

// setDefaults sets default configuration values. Every key that may be
// set from the environment needs a default so viper knows about it.
func setDefaults(v *viper.Viper) {
	// Prime defaults
	v.SetDefault("prime.server_instance", "")
	v.SetDefault("prime.credentials_file", DefaultCredentialsFile())
	v.SetDefault("prime.base_url", "")
	v.SetDefault("prime.timeout", 30*time.Second)
	v.SetDefault("prime.max_auth_retries", 1)
	v.SetDefault("prime.page_limit", 10)
	v.SetDefault("prime.application_id", "")
	v.SetDefault("prime.application_secret", "")
	v.SetDefault("prime.application_url", "")
	v.SetDefault("prime.application_scopes", "")
	v.SetDefault("prime.access_token", "")
	v.SetDefault("prime.refresh_token", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/primectl")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Prime.CredentialsFile == "" {
		return fmt.Errorf("prime.credentials_file is required")
	}

	if cfg.Prime.BaseURL != "" {
		u, err := url.Parse(cfg.Prime.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid prime.base_url: %s", cfg.Prime.BaseURL)
		}
	}

	if cfg.Prime.Timeout <= 0 {
		return fmt.Errorf("prime.timeout must be positive, got %s", cfg.Prime.Timeout)
	}

	if cfg.Prime.MaxAuthRetries < 0 {
		return fmt.Errorf("prime.max_auth_retries must not be negative, got %d", cfg.Prime.MaxAuthRetries)
	}

	if cfg.Prime.PageLimit < 0 {
		return fmt.Errorf("prime.page_limit must not be negative, got %d", cfg.Prime.PageLimit)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %s has an empty expression", name)
		}
	}

	return nil
}
