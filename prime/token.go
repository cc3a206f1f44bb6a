package prime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/primectl/credentials"
)

// TokenState is the lifecycle state of the access token
type TokenState int

const (
	TokenUnchecked TokenState = iota
	TokenValid
	TokenExpired
	TokenFailed
)

// String returns the string representation of the token state
func (s TokenState) String() string {
	switch s {
	case TokenUnchecked:
		return "UNCHECKED"
	case TokenValid:
		return "VALID"
	case TokenExpired:
		return "EXPIRED"
	case TokenFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// TokenManager checks and refreshes the access token held in the
// credentials store. It is the only writer of tokens and session facts.
type TokenManager struct {
	store      *credentials.Store
	httpClient *http.Client
	baseURL    func() string
	userAgent  string
	now        func() time.Time
	logger     zerolog.Logger
	state      TokenState
}

// State returns the current token state
func (m *TokenManager) State() TokenState {
	return m.state
}

// AccessToken returns the current access token
func (m *TokenManager) AccessToken() string {
	return m.store.Credentials().AccessToken
}

// Expired reports whether the last known expiry lies at or before now.
// An unknown expiry is not treated as expired.
func (m *TokenManager) Expired(now time.Time) bool {
	expiresOn := m.store.Session().ExpiresOn
	return !expiresOn.IsZero() && !now.Before(expiresOn)
}

// CreateTokens always fails: Prime only issues tokens through a browser login.
func (m *TokenManager) CreateTokens() error {
	m.logger.Error().Msg("Prime APIs use OAuth 2.0 to authorize the application, tokens can only be obtained by logging in manually")
	return ErrManualAuthentication
}

// Check asks the auth service whether the access token is still live. An
// expired token is refreshed. A non-200 answer is a soft failure.
func (m *TokenManager) Check(ctx context.Context) (bool, error) {
	params := url.Values{"access_token": {m.AccessToken()}}
	endpoint := m.baseURL() + "/oauth/token/check?" + params.Encode()

	header := http.Header{}
	header.Set("User-Agent", m.userAgent)

	status, body, err := doRequest(ctx, m.httpClient, http.MethodGet, endpoint, header)
	if err != nil {
		m.logger.Error().Err(err).Msg("Token check request failed")
		return false, fmt.Errorf("token check failed: %w", err)
	}

	if status != http.StatusOK {
		m.logger.Error().Int("status", status).Str("reason", reason(status)).Msg("Token check failed")
		return false, nil
	}

	var resp tokenCheckResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		m.logger.Error().Err(err).Msg("Failed to decode token check response")
		return false, fmt.Errorf("failed to decode token check response: %w", err)
	}

	switch {
	case resp.Error != nil:
		m.state = TokenExpired
		m.logger.Error().Str("error", resp.Error.String()).Msg("Access token check returned an error")
		m.logger.Info().Msg("Access token has expired, trying to refresh it...")
		return m.Refresh(ctx)

	case resp.ExpiresIn != nil:
		now := m.now().UTC()
		expiresOn := expiry(now, *resp.ExpiresIn)

		m.store.UpdateSession(func(s *credentials.SessionRecord) {
			s.AccountID = resp.AccountID.String()
			s.UserID = resp.UserID.String()
			s.UserRole = resp.UserRole.String()
			s.CheckedAt = now
			s.ExpiresOn = expiresOn
		})
		if err := m.store.Persist(); err != nil {
			return false, err
		}

		m.state = TokenValid
		m.logger.Info().Time("expires_on", expiresOn).Msg("Access token is valid")
		return true, nil
	}

	m.logger.Warn().Msg("Token check response carried neither an error nor an expiry")
	return false, nil
}

// Refresh exchanges the refresh token for a new token pair. It makes
// exactly one attempt.
func (m *TokenManager) Refresh(ctx context.Context) (bool, error) {
	creds := m.store.Credentials()

	params := url.Values{
		"client_id":     {creds.ApplicationID},
		"client_secret": {creds.ApplicationSecret},
		"refresh_token": {creds.RefreshToken},
	}
	endpoint := m.baseURL() + "/oauth/token/refresh?" + params.Encode()

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("User-Agent", m.userAgent)

	status, body, err := doRequest(ctx, m.httpClient, http.MethodPost, endpoint, header)
	if err != nil {
		m.state = TokenFailed
		m.logger.Error().Err(err).Msg("Token refresh request failed")
		return false, fmt.Errorf("token refresh failed: %w", err)
	}

	switch status {
	case http.StatusOK:
		var resp refreshResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			m.state = TokenFailed
			m.logger.Error().Err(err).Msg("Failed to decode token refresh response")
			return false, fmt.Errorf("failed to decode token refresh response: %w", err)
		}
		if resp.AccessToken == "" || resp.RefreshToken == "" {
			m.state = TokenFailed
			m.logger.Error().
				Bool("access_token", resp.AccessToken != "").
				Bool("refresh_token", resp.RefreshToken != "").
				Msg("Token refresh response is missing the token pair")
			return false, ErrInvalidTokenResponse
		}

		now := m.now().UTC()
		m.store.UpdateSession(func(s *credentials.SessionRecord) {
			s.CheckedAt = now
		})

		if resp.AccessToken != creds.AccessToken {
			expiresOn := expiry(now, resp.ExpiresIn)

			m.store.UpdateCredentials(func(c *credentials.CredentialRecord) {
				c.AccessToken = resp.AccessToken
				c.RefreshToken = resp.RefreshToken
			})
			m.store.UpdateSession(func(s *credentials.SessionRecord) {
				s.RefreshedAt = now
				s.ExpiresOn = expiresOn
			})

			m.logger.Info().Time("expires_on", expiresOn).Msg("Access token has been refreshed")
		} else {
			m.logger.Debug().Msg("Refresh returned the current access token")
		}

		if err := m.store.Persist(); err != nil {
			m.state = TokenFailed
			return false, err
		}

		m.state = TokenValid
		return true, nil

	case http.StatusBadRequest:
		var payload ErrorPayload
		_ = json.Unmarshal(body, &payload)

		authErr := &AuthorizationError{
			StatusCode: status,
			Status:     payload.Status.String(),
			Title:      payload.Title,
			Detail:     payload.Source.Info,
		}

		m.state = TokenFailed
		m.logger.Error().
			Int("status", status).
			Str("remote_status", authErr.Status).
			Str("title", authErr.Title).
			Str("detail", authErr.Detail).
			Msg("Token refresh was rejected")
		return false, authErr

	default:
		m.state = TokenFailed
		m.logger.Error().Int("status", status).Str("reason", reason(status)).Msg("Unexpected response while refreshing token")
		return false, &APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("unexpected error: %d %s while refreshing token", status, reason(status)),
			Body:       string(body),
		}
	}
}
