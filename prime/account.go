package prime

import (
	"context"
	"net/http"
)

// GetAccount retrieves the account of the authenticated user
func (c *Client) GetAccount(ctx context.Context) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "account", nil)
}

// GetCurrentUser retrieves the user who owns the access token
func (c *Client) GetCurrentUser(ctx context.Context, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, "user", q.values)
}

// CheckElthorSupport checks whether a desktop app version is supported
func (c *Client) CheckElthorSupport(ctx context.Context, version string) (*Result, error) {
	q := newQuery(c.logger).set("version", version)
	return c.Fetch(ctx, http.MethodGet, "elthor/check", q.values)
}

// GetEcommerceMaxPrice retrieves the highest price of any learning object
// of the given types
func (c *Client) GetEcommerceMaxPrice(ctx context.Context, loTypes []string) (*Result, error) {
	q := newQuery(c.logger).enumList("filter.loTypes", EcommerceLearningObjectTypes, loTypes)
	return c.Fetch(ctx, http.MethodGet, "ecommerce/maxPrice", q.values)
}
