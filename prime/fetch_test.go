package prime

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPagination(t *testing.T) {
	var calls atomic.Int32

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/primeapi/v2/badges", r.URL.Path)
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		assert.Equal(t, "oauth old-token", r.Header.Get("Authorization"))

		switch r.URL.Query().Get("page[offset]") {
		case "0":
			assert.Equal(t, "name", r.URL.Query().Get("sort"))
			writeJSON(w, http.StatusOK, map[string]any{
				"data":  resources(0, 10),
				"links": map[string]any{"next": "/primeapi/v2/badges?page[offset]=10&page[limit]=10"},
			})
		case "10":
			assert.Empty(t, r.URL.Query().Get("sort"), "next link carries its own query")
			writeJSON(w, http.StatusOK, map[string]any{
				"data":  resources(10, 10),
				"links": map[string]any{"next": "http://" + r.Host + "/primeapi/v2/badges?page[offset]=20&page[limit]=10"},
			})
		case "20":
			writeJSON(w, http.StatusOK, map[string]any{
				"data":  []any{},
				"links": map[string]any{},
			})
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("page[offset]"))
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client, _ := newTestClient(t, handler)

	params := url.Values{"page[offset]": {"0"}, "page[limit]": {"10"}, "sort": {"name"}}
	res, err := client.Fetch(context.Background(), "get", "badges", params)
	require.NoError(t, err)

	assert.False(t, res.Partial())
	assert.Equal(t, 20, res.Len())
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "badge:0", res.Records[0].ID())
	assert.Equal(t, "badge:19", res.Records[19].ID())
	assert.Equal(t, "badge", res.Records[19].Type())
	assert.Equal(t, "Badge 19", res.Records[19].Attributes()["name"])
}

func TestFetchDataShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "single object", body: `{"data":{"id":"account:1","type":"account"}}`, expected: 1},
		{name: "array", body: `{"data":[{"id":"1"},{"id":"2"}]}`, expected: 2},
		{name: "null data", body: `{"data":null}`, expected: 0},
		{name: "missing data", body: `{"links":{}}`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.body))
			}))

			res, err := client.Fetch(context.Background(), http.MethodGet, "account", nil)
			require.NoError(t, err)
			assert.False(t, res.Partial())
			assert.Equal(t, tt.expected, res.Len())
		})
	}
}

func TestFetchSoftStops(t *testing.T) {
	t.Run("client error keeps earlier pages", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page[offset]") == "10" {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"status": 400,
					"title":  "Bad Request",
					"source": map[string]any{"info": "page[offset] out of range"},
				})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"data":  resources(0, 10),
				"links": map[string]any{"next": "/primeapi/v2/badges?page[offset]=10"},
			})
		}))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		require.True(t, res.Partial())
		assert.Equal(t, 10, res.Len())
		assert.Equal(t, StopClientError, res.Stop.Kind)
		assert.Equal(t, http.StatusBadRequest, res.Stop.StatusCode)
		assert.Equal(t, "400", res.Stop.Status)
		assert.Equal(t, "Bad Request", res.Stop.Title)
		assert.Equal(t, "page[offset] out of range", res.Stop.Detail)
		assert.Contains(t, res.Stop.URL, "page[offset]=10")
	})

	t.Run("unexpected status", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		require.True(t, res.Partial())
		assert.Equal(t, 0, res.Len())
		assert.Equal(t, StopUnexpectedStatus, res.Stop.Kind)
		assert.Equal(t, http.StatusServiceUnavailable, res.Stop.StatusCode)
	})

	t.Run("client error body that is not json", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("<html>bad request</html>"))
		}))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		require.True(t, res.Partial())
		assert.Equal(t, StopClientError, res.Stop.Kind)
		assert.Empty(t, res.Stop.Title)
	})
}

func TestFetchUnauthorized(t *testing.T) {
	t.Run("token check succeeds and page is retried", func(t *testing.T) {
		var pageCalls, checkCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			if pageCalls.Add(1) == 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "401", "title": "UNAUTHORIZED"})
				return
			}
			assert.Equal(t, "10", r.URL.Query().Get("page[limit]"), "retry keeps the original params")
			writeJSON(w, http.StatusOK, map[string]any{"data": resources(0, 3)})
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			checkCalls.Add(1)
			assert.Equal(t, "old-token", r.URL.Query().Get("access_token"))
			writeJSON(w, http.StatusOK, map[string]any{
				"expires_in": 3600,
				"account_id": "1010",
				"user_id":    12345,
				"user_role":  "admin",
			})
		})

		client, store := newTestClient(t, mux)

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", url.Values{"page[limit]": {"10"}})
		require.NoError(t, err)
		assert.False(t, res.Partial())
		assert.Equal(t, 3, res.Len())
		assert.Equal(t, int32(2), pageCalls.Load())
		assert.Equal(t, int32(1), checkCalls.Load())

		session := store.Session()
		assert.Equal(t, "1010", session.AccountID)
		assert.Equal(t, "12345", session.UserID)
		assert.Equal(t, "admin", session.UserRole)
		assert.Equal(t, TokenValid, client.Tokens().State())
	})

	t.Run("token check fails and earlier pages are kept", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page[offset]") == "10" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "401", "title": "UNAUTHORIZED"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"data":  resources(0, 10),
				"links": map[string]any{"next": "/primeapi/v2/badges?page[offset]=10"},
			})
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		client, _ := newTestClient(t, mux)

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		require.True(t, res.Partial())
		assert.Equal(t, 10, res.Len())
		assert.Equal(t, StopUnauthorized, res.Stop.Kind)
		assert.Equal(t, "UNAUTHORIZED", res.Stop.Title)
	})

	t.Run("repeated 401 is bounded", func(t *testing.T) {
		var pageCalls, checkCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			pageCalls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			checkCalls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{"expires_in": 3600})
		})

		client, _ := newTestClient(t, mux, WithMaxAuthRetries(2))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		require.True(t, res.Partial())
		assert.Equal(t, StopUnauthorized, res.Stop.Kind)
		assert.Equal(t, int32(3), pageCalls.Load())
		assert.Equal(t, int32(2), checkCalls.Load())
	})

	t.Run("zero retries stops immediately", func(t *testing.T) {
		var checkCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			checkCalls.Add(1)
		})

		client, _ := newTestClient(t, mux, WithMaxAuthRetries(0))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		assert.True(t, res.Partial())
		assert.Equal(t, int32(0), checkCalls.Load())
	})

	t.Run("refreshed token is sent on retry", func(t *testing.T) {
		var refreshCalls atomic.Int32

		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "oauth new-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"data": resources(0, 2)})
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"error": "Invalid access token"})
		})
		mux.HandleFunc("/oauth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
			refreshCalls.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "new-token",
				"refresh_token": "new-refresh",
				"expires_in":    7 * 24 * 3600,
			})
		})

		client, store := newTestClient(t, mux)

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.NoError(t, err)
		assert.False(t, res.Partial())
		assert.Equal(t, 2, res.Len())
		assert.Equal(t, int32(1), refreshCalls.Load())
		assert.Equal(t, "new-token", store.Credentials().AccessToken)
		assert.Equal(t, "new-refresh", store.Credentials().RefreshToken)
	})

	t.Run("refresh rejection aborts the fetch", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/primeapi/v2/badges", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		mux.HandleFunc("/oauth/token/check", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"error": "expired"})
		})
		mux.HandleFunc("/oauth/token/refresh", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status": "400",
				"title":  "INVALID_REFRESH_TOKEN",
				"source": map[string]any{"info": "refresh token revoked"},
			})
		})

		client, _ := newTestClient(t, mux)

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.Error(t, err)
		assert.Nil(t, res)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.MethodGet, fetchErr.Method)

		var authErr *AuthorizationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "INVALID_REFRESH_TOKEN", authErr.Title)
	})
}

func TestFetchHardFailures(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{not json"))
		}))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.Error(t, err)
		assert.Nil(t, res)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, fetchErr.URL, "/primeapi/v2/badges")
	})

	t.Run("transport failure", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hj, ok := w.(http.Hijacker)
			if !ok {
				return
			}
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
			}
		}))

		res, err := client.Fetch(context.Background(), http.MethodGet, "badges", nil)
		require.Error(t, err)
		assert.Nil(t, res)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"data": resources(0, 1)})
		}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Fetch(ctx, http.MethodGet, "badges", nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFetchMethods(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	tests := []struct {
		method  string
		wantErr error
	}{
		{method: http.MethodPost, wantErr: ErrNotImplemented},
		{method: "patch", wantErr: ErrNotImplemented},
		{method: http.MethodDelete, wantErr: ErrNotImplemented},
		{method: http.MethodPut, wantErr: ErrUnsupportedMethod},
		{method: http.MethodHead, wantErr: ErrUnsupportedMethod},
		{method: "FROB", wantErr: ErrUnsupportedMethod},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			res, err := client.Fetch(context.Background(), tt.method, "users", nil)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, strings.HasPrefix(err.Error(), strings.ToUpper(tt.method)))
		})
	}

	assert.Equal(t, int32(0), calls.Load(), "no request is sent for unsupported methods")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		next     string
		expected string
	}{
		{
			name:     "absolute",
			current:  "https://captivateprime.adobe.com/primeapi/v2/users?page[offset]=0",
			next:     "https://captivateprime.adobe.com/primeapi/v2/users?page[offset]=10",
			expected: "https://captivateprime.adobe.com/primeapi/v2/users?page[offset]=10",
		},
		{
			name:     "host relative",
			current:  "https://captivateprime.adobe.com/primeapi/v2/users",
			next:     "/primeapi/v2/users?page[cursor]=abc",
			expected: "https://captivateprime.adobe.com/primeapi/v2/users?page[cursor]=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(tt.current, tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
