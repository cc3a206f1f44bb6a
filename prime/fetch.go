package prime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StopKind classifies why pagination ended before the last page
type StopKind int

const (
	StopClientError StopKind = iota + 1
	StopUnauthorized
	StopUnexpectedStatus
)

// String returns the string representation of the stop kind
func (k StopKind) String() string {
	switch k {
	case StopClientError:
		return "CLIENT_ERROR"
	case StopUnauthorized:
		return "UNAUTHORIZED"
	case StopUnexpectedStatus:
		return "UNEXPECTED_STATUS"
	default:
		return "UNKNOWN"
	}
}

// StopReason describes a soft failure. The records fetched before it are
// still returned.
type StopReason struct {
	Kind       StopKind
	StatusCode int
	Status     string
	Title      string
	Detail     string
	URL        string
}

// Error implements the error interface
func (s *StopReason) Error() string {
	if s.Title != "" || s.Detail != "" {
		return fmt.Sprintf("%s: %d %s - %s: %s", s.Kind, s.StatusCode, s.Status, s.Title, s.Detail)
	}
	return fmt.Sprintf("%s: %d %s", s.Kind, s.StatusCode, reason(s.StatusCode))
}

// Result holds every record accumulated over the pages of one query
type Result struct {
	Records []Resource
	Stop    *StopReason
}

// Partial reports whether pagination stopped early
func (r *Result) Partial() bool {
	return r.Stop != nil
}

// Len returns the number of records
func (r *Result) Len() int {
	return len(r.Records)
}

// Fetch runs a query against endpoint and follows next links until the
// last page. Only GET is supported. Client errors, unexpected statuses and
// unrecoverable 401s end the loop early and are reported in Result.Stop.
func (c *Client) Fetch(ctx context.Context, method, endpoint string, params url.Values) (*Result, error) {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet:
	case http.MethodPost, http.MethodPatch, http.MethodDelete:
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, ErrNotImplemented)
	default:
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, ErrUnsupportedMethod)
	}

	logger := c.logger.With().
		Str("fetch_id", uuid.NewString()).
		Str("endpoint", endpoint).
		Logger()

	result := &Result{}
	next := c.endpointURL(endpoint)
	authRetries := 0

	for next != "" {
		requestURL, err := withParams(next, params)
		if err != nil {
			return nil, c.abort(logger, method, next, err)
		}

		logger.Debug().Str("url", requestURL).Msg("Fetching page")

		status, body, err := doRequest(ctx, c.httpClient, method, requestURL, c.headers())
		if err != nil {
			return nil, c.abort(logger, method, requestURL, err)
		}

		switch status {
		case http.StatusOK:
			var page envelope
			if err := json.Unmarshal(body, &page); err != nil {
				return nil, c.abort(logger, method, requestURL, fmt.Errorf("failed to parse response: %w", err))
			}

			records, err := page.records()
			if err != nil {
				return nil, c.abort(logger, method, requestURL, fmt.Errorf("failed to parse data: %w", err))
			}
			result.Records = append(result.Records, records...)
			authRetries = 0

			logger.Debug().
				Int("count", len(records)).
				Int("total", len(result.Records)).
				Msg("Retrieved page")

			if page.Links.Next == "" {
				next = ""
				break
			}
			if next, err = resolve(requestURL, page.Links.Next); err != nil {
				return nil, c.abort(logger, method, requestURL, err)
			}
			params = nil

		case http.StatusBadRequest:
			stop := stopFromBody(StopClientError, status, requestURL, body)
			logger.Error().
				Int("status", status).
				Str("remote_status", stop.Status).
				Str("title", stop.Title).
				Str("detail", stop.Detail).
				Msg("Request rejected")
			result.Stop = stop
			next = ""

		case http.StatusUnauthorized:
			stop := stopFromBody(StopUnauthorized, status, requestURL, body)
			logger.Error().
				Int("status", status).
				Str("remote_status", stop.Status).
				Str("title", stop.Title).
				Str("detail", stop.Detail).
				Msg("Unauthorized")

			if authRetries >= c.maxAuthRetries {
				logger.Warn().Int("retries", authRetries).Msg("Giving up on page after repeated 401 responses")
				result.Stop = stop
				next = ""
				break
			}
			authRetries++

			logger.Info().Msg("Access is denied due to invalid credentials, trying to refresh them...")
			ok, err := c.tokens.Check(ctx)
			if err != nil {
				return nil, c.abort(logger, method, requestURL, err)
			}
			if !ok {
				result.Stop = stop
				next = ""
			}

		default:
			logger.Error().Int("status", status).Str("reason", reason(status)).Msg("Unexpected response")
			result.Stop = &StopReason{
				Kind:       StopUnexpectedStatus,
				StatusCode: status,
				URL:        requestURL,
			}
			next = ""
		}
	}

	return result, nil
}

// headers returns the request headers with the current access token
func (c *Client) headers() http.Header {
	header := http.Header{}
	header.Set("Accept", acceptHeader)
	header.Set("Authorization", authScheme+" "+c.tokens.AccessToken())
	header.Set("User-Agent", c.userAgent)
	return header
}

// abort logs and wraps a failure that ends the whole fetch
func (c *Client) abort(logger zerolog.Logger, method, requestURL string, err error) error {
	logger.Error().Err(err).Str("url", requestURL).Msg("Fetch aborted")
	return &FetchError{Method: method, URL: requestURL, Err: err}
}

// withParams merges params into the query of rawURL
func withParams(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// resolve turns a next link into an absolute URL
func resolve(current, next string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", current, err)
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", next, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// stopFromBody builds a StopReason from an error body, when one decodes
func stopFromBody(kind StopKind, status int, requestURL string, body []byte) *StopReason {
	var payload ErrorPayload
	_ = json.Unmarshal(body, &payload)

	return &StopReason{
		Kind:       kind,
		StatusCode: status,
		Status:     payload.Status.String(),
		Title:      payload.Title,
		Detail:     payload.Source.Info,
		URL:        requestURL,
	}
}
