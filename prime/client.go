package prime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/primectl/credentials"
)

const (
	apiPath        = "/primeapi/v2/"
	acceptHeader   = "application/vnd.api+json"
	authScheme     = "oauth"
	instanceURLFmt = "https://%s.adobe.com"
)

// Client represents a Captivate Prime API client
type Client struct {
	store          *credentials.Store
	tokens         *TokenManager
	httpClient     *http.Client
	baseURL        string
	maxAuthRetries int
	userAgent      string
	logger         zerolog.Logger
}

// NewClient creates a new Prime client on top of a loaded credentials store
func NewClient(store *credentials.Store, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: credentials store is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	c := &Client{
		store:          store,
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(o.baseURL, "/"),
		maxAuthRetries: o.maxAuthRetries,
		userAgent:      o.userAgent,
		logger:         logger,
	}

	c.tokens = &TokenManager{
		store:      store,
		httpClient: httpClient,
		baseURL:    c.instanceURL,
		userAgent:  o.userAgent,
		now:        o.now,
		logger:     logger,
	}

	return c, nil
}

// Tokens returns the token manager bound to this client
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// Store returns the credentials store bound to this client
func (c *Client) Store() *credentials.Store {
	return c.store
}

// instanceURL returns the scheme and host every endpoint hangs off
func (c *Client) instanceURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf(instanceURLFmt, c.store.Credentials().ServerInstance)
}

// endpointURL builds the API URL for an endpoint path
func (c *Client) endpointURL(endpoint string) string {
	return c.instanceURL() + apiPath + strings.TrimLeft(endpoint, "/")
}

// secretParams are query parameters that must never reach a log or error
var secretParams = []string{"access_token", "client_secret", "refresh_token"}

// doRequest performs a single HTTP request and returns status and body.
// Errors carry the URL with secret query values masked.
func doRequest(ctx context.Context, httpClient *http.Client, method, rawURL string, header http.Header) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", redactError(err))
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", redactError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

// redactURL masks user info and secret query values
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	q := u.Query()
	masked := false
	for _, key := range secretParams {
		if q.Has(key) {
			q.Set(key, "xxxxx")
			masked = true
		}
	}
	if masked {
		u.RawQuery = q.Encode()
	}

	return u.Redacted()
}

// redactError masks the URL held by a *url.Error
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactURL(urlErr.URL)
	}
	return err
}

// reason returns the standard status text
func reason(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown Status"
}

// expiry converts an expires_in value in seconds to an absolute time
func expiry(now time.Time, seconds float64) time.Time {
	return now.Add(time.Duration(seconds * float64(time.Second)))
}
