package prime

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Resource is a single JSON:API resource object
type Resource map[string]any

// ID returns the resource id, or an empty string
func (r Resource) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Type returns the resource type, or an empty string
func (r Resource) Type() string {
	t, _ := r["type"].(string)
	return t
}

// Attributes returns the attributes object of the resource
func (r Resource) Attributes() map[string]any {
	attrs, _ := r["attributes"].(map[string]any)
	return attrs
}

// envelope is the JSON:API document returned by list and detail endpoints
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Links struct {
		Next string `json:"next"`
	} `json:"links"`
}

// records decodes the data member. An object becomes a single element.
func (e envelope) records() ([]Resource, error) {
	data := bytes.TrimSpace(e.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '{' {
		var single Resource
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, err
		}
		return []Resource{single}, nil
	}

	var list []Resource
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ErrorPayload is the error body returned with 4xx responses
type ErrorPayload struct {
	Status textValue `json:"status"`
	Title  string    `json:"title"`
	Source struct {
		Info string `json:"info"`
	} `json:"source"`
}

// tokenCheckResponse is returned by /oauth/token/check
type tokenCheckResponse struct {
	Error     *textValue `json:"error"`
	ExpiresIn *float64   `json:"expires_in"`
	AccountID textValue  `json:"account_id"`
	UserID    textValue  `json:"user_id"`
	UserRole  textValue  `json:"user_role"`
}

// refreshResponse is returned by /oauth/token/refresh
type refreshResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    float64 `json:"expires_in"`
}

// textValue decodes a JSON string, number or boolean as text
type textValue string

// UnmarshalJSON implements json.Unmarshaler
func (v *textValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = textValue(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	*v = textValue(strings.TrimSpace(string(b)))
	return nil
}

// String returns the decoded text
func (v textValue) String() string {
	return string(v)
}
