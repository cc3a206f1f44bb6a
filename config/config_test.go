package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Prime: PrimeConfig{
			CredentialsFile: "credentials.toml",
			Timeout:         30 * time.Second,
			MaxAuthRetries:  1,
			PageLimit:       10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing credentials file",
			modify:  func(c *Config) { c.Prime.CredentialsFile = "" },
			wantErr: "prime.credentials_file is required",
		},
		{
			name:   "valid base url",
			modify: func(c *Config) { c.Prime.BaseURL = "http://localhost:8080" },
		},
		{
			name:    "base url without scheme",
			modify:  func(c *Config) { c.Prime.BaseURL = "captivateprime.adobe.com" },
			wantErr: "invalid prime.base_url",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Prime.Timeout = 0 },
			wantErr: "prime.timeout must be positive",
		},
		{
			name:    "negative retries",
			modify:  func(c *Config) { c.Prime.MaxAuthRetries = -1 },
			wantErr: "prime.max_auth_retries must not be negative",
		},
		{
			name:   "zero retries",
			modify: func(c *Config) { c.Prime.MaxAuthRetries = 0 },
		},
		{
			name:    "negative page limit",
			modify:  func(c *Config) { c.Prime.PageLimit = -10 },
			wantErr: "prime.page_limit must not be negative",
		},
		{
			name:    "invalid logging level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid logging format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name:    "empty filter",
			modify:  func(c *Config) { c.Filter = FilterConfig{"stale": " "} },
			wantErr: "filter stale has an empty expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `prime:
  server_instance: learningmanager
  credentials_file: /tmp/prime/credentials.toml
  timeout: 10s
  max_auth_retries: 2
  application_id: app-from-file
logging:
  level: debug
filter:
  published: state == "Published"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("PRIMECTL_PRIME_APPLICATION_SECRET", "secret-from-env")
	t.Setenv("PRIMECTL_PRIME_APPLICATION_ID", "app-from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Prime.ServerInstance != "learningmanager" {
		t.Errorf("server_instance = %q", cfg.Prime.ServerInstance)
	}
	if cfg.Prime.CredentialsFile != "/tmp/prime/credentials.toml" {
		t.Errorf("credentials_file = %q", cfg.Prime.CredentialsFile)
	}
	if cfg.Prime.Timeout != 10*time.Second {
		t.Errorf("timeout = %s", cfg.Prime.Timeout)
	}
	if cfg.Prime.MaxAuthRetries != 2 {
		t.Errorf("max_auth_retries = %d", cfg.Prime.MaxAuthRetries)
	}
	if cfg.Prime.PageLimit != 10 {
		t.Errorf("page_limit default = %d", cfg.Prime.PageLimit)
	}
	if cfg.Prime.ApplicationID != "app-from-env" {
		t.Errorf("environment should override file, application_id = %q", cfg.Prime.ApplicationID)
	}
	if cfg.Prime.ApplicationSecret != "secret-from-env" {
		t.Errorf("application_secret = %q", cfg.Prime.ApplicationSecret)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Filter["published"] != `state == "Published"` {
		t.Errorf("filter presets = %v", cfg.Filter)
	}

	overrides := cfg.Prime.Overrides()
	if overrides.ApplicationID != "app-from-env" || overrides.ServerInstance != "learningmanager" {
		t.Errorf("overrides = %+v", overrides)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected invalid configuration error, got %v", err)
	}
}
