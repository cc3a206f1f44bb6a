package credentials

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// File section names
const (
	SectionCaptivate = "CAPTIVATE"
	SectionApp       = "APP"
)

// DefaultServerInstance is used when no server instance is configured
const DefaultServerInstance = "captivateprime"

// CredentialRecord holds the application credentials and the current token pair
type CredentialRecord struct {
	ServerInstance    string
	ApplicationID     string
	ApplicationSecret string
	ApplicationURL    string
	ApplicationScopes string
	AccessToken       string
	RefreshToken      string
}

// SessionRecord holds the last known facts about the authenticated session
type SessionRecord struct {
	AccountID   string
	UserID      string
	UserRole    string
	CheckedAt   time.Time
	RefreshedAt time.Time
	ExpiresOn   time.Time
}

// fileRecord is the on-disk shape. Every value is text.
type fileRecord struct {
	Captivate captivateSection `toml:"CAPTIVATE"`
	App       appSection       `toml:"APP"`
}

type captivateSection struct {
	ServerInstance    string `toml:"server_instance"`
	ApplicationID     string `toml:"application_id"`
	ApplicationSecret string `toml:"application_secret"`
	ApplicationURL    string `toml:"application_url"`
	ApplicationScopes string `toml:"application_scopes"`
	AccessToken       string `toml:"access_token"`
	RefreshToken      string `toml:"refresh_token"`
}

type appSection struct {
	AccountID   string `toml:"account_id"`
	UserID      string `toml:"user_id"`
	UserRole    string `toml:"user_role"`
	CheckedAt   string `toml:"checked_at"`
	RefreshedAt string `toml:"refreshed_at"`
	ExpiresOn   string `toml:"expires_on"`
}

// field returns a pointer to the text value stored under section/key
func (r *fileRecord) field(section, key string) (*string, bool) {
	switch section {
	case SectionCaptivate:
		c := &r.Captivate
		fields := map[string]*string{
			"server_instance":    &c.ServerInstance,
			"application_id":     &c.ApplicationID,
			"application_secret": &c.ApplicationSecret,
			"application_url":    &c.ApplicationURL,
			"application_scopes": &c.ApplicationScopes,
			"access_token":       &c.AccessToken,
			"refresh_token":      &c.RefreshToken,
		}
		p, ok := fields[key]
		return p, ok
	case SectionApp:
		a := &r.App
		fields := map[string]*string{
			"account_id":   &a.AccountID,
			"user_id":      &a.UserID,
			"user_role":    &a.UserRole,
			"checked_at":   &a.CheckedAt,
			"refreshed_at": &a.RefreshedAt,
			"expires_on":   &a.ExpiresOn,
		}
		p, ok := fields[key]
		return p, ok
	}
	return nil, false
}

func toFile(c CredentialRecord, s SessionRecord) fileRecord {
	return fileRecord{
		Captivate: captivateSection{
			ServerInstance:    c.ServerInstance,
			ApplicationID:     c.ApplicationID,
			ApplicationSecret: c.ApplicationSecret,
			ApplicationURL:    c.ApplicationURL,
			ApplicationScopes: c.ApplicationScopes,
			AccessToken:       c.AccessToken,
			RefreshToken:      c.RefreshToken,
		},
		App: appSection{
			AccountID:   s.AccountID,
			UserID:      s.UserID,
			UserRole:    s.UserRole,
			CheckedAt:   FormatTimestamp(s.CheckedAt),
			RefreshedAt: FormatTimestamp(s.RefreshedAt),
			ExpiresOn:   FormatTimestamp(s.ExpiresOn),
		},
	}
}

func fromFile(r fileRecord) (CredentialRecord, SessionRecord, error) {
	c := CredentialRecord{
		ServerInstance:    r.Captivate.ServerInstance,
		ApplicationID:     r.Captivate.ApplicationID,
		ApplicationSecret: r.Captivate.ApplicationSecret,
		ApplicationURL:    r.Captivate.ApplicationURL,
		ApplicationScopes: r.Captivate.ApplicationScopes,
		AccessToken:       r.Captivate.AccessToken,
		RefreshToken:      r.Captivate.RefreshToken,
	}

	s := SessionRecord{
		AccountID: r.App.AccountID,
		UserID:    r.App.UserID,
		UserRole:  r.App.UserRole,
	}

	var err error
	if s.CheckedAt, err = ParseTimestamp(r.App.CheckedAt); err != nil {
		return c, s, fmt.Errorf("checked_at: %w", err)
	}
	if s.RefreshedAt, err = ParseTimestamp(r.App.RefreshedAt); err != nil {
		return c, s, fmt.Errorf("refreshed_at: %w", err)
	}
	if s.ExpiresOn, err = ParseTimestamp(r.App.ExpiresOn); err != nil {
		return c, s, fmt.Errorf("expires_on: %w", err)
	}

	return c, s, nil
}

// FormatTimestamp renders t as Unix seconds with microsecond fraction.
// The zero time renders as an empty string.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

// ParseTimestamp is the inverse of FormatTimestamp. It also accepts
// integer seconds and fractions of any length.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}

	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		if nsec, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
	}

	return time.Unix(sec, nsec).UTC(), nil
}
