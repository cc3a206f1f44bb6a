package prime

import (
	"net/http"
	"time"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxAuthRetries = 1
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout        time.Duration
	httpClient     *http.Client
	baseURL        string
	maxAuthRetries int
	userAgent      string
	now            func() time.Time
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:        defaultTimeout,
		maxAuthRetries: defaultMaxAuthRetries,
		userAgent:      "primectl",
		now:            time.Now,
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. Its timeout takes precedence
// over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithBaseURL sends every request to baseURL instead of
// https://{server_instance}.adobe.com.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithMaxAuthRetries bounds how many times a single page is retried after
// a 401 followed by a successful token check.
func WithMaxAuthRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxAuthRetries = retries
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithClock overrides the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		if now != nil {
			o.now = now
		}
	}
}
