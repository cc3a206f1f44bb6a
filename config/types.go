package config

import (
	"time"

	"github.com/s0up4200/primectl/credentials"
)

// Config represents the complete configuration structure
type Config struct {
	Prime   PrimeConfig   `mapstructure:"prime"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// PrimeConfig holds Captivate Prime connection details. Application values
// set here override the credentials file on startup, tokens only seed an
// empty one.
type PrimeConfig struct {
	ServerInstance    string        `mapstructure:"server_instance"`
	CredentialsFile   string        `mapstructure:"credentials_file"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxAuthRetries    int           `mapstructure:"max_auth_retries"`
	PageLimit         int           `mapstructure:"page_limit"`
	ApplicationID     string        `mapstructure:"application_id"`
	ApplicationSecret string        `mapstructure:"application_secret"`
	ApplicationURL    string        `mapstructure:"application_url"`
	ApplicationScopes string        `mapstructure:"application_scopes"`
	AccessToken       string        `mapstructure:"access_token"`
	RefreshToken      string        `mapstructure:"refresh_token"`
}

// Overrides returns the values to merge over the credentials file
func (p PrimeConfig) Overrides() credentials.CredentialRecord {
	return credentials.CredentialRecord{
		ServerInstance:    p.ServerInstance,
		ApplicationID:     p.ApplicationID,
		ApplicationSecret: p.ApplicationSecret,
		ApplicationURL:    p.ApplicationURL,
		ApplicationScopes: p.ApplicationScopes,
		AccessToken:       p.AccessToken,
		RefreshToken:      p.RefreshToken,
	}
}

// FilterConfig contains named filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig controls self update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
