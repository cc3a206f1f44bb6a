package prime

import (
	"context"
	"net/http"
	"net/url"
)

// UserGroupListOptions holds the parameters of a user group listing
type UserGroupListOptions struct {
	ListOptions
	States    string
	CatalogID string
	ReadOnly  *bool
}

func (c *Client) userGroupQuery(opts UserGroupListOptions) *query {
	return newQuery(c.logger).
		offsetPage(opts.ListOptions).
		enum("sort", UserGroupSort, opts.Sort).
		set("catalogId", opts.CatalogID).
		flag("filter.readOnly", opts.ReadOnly).
		enum("filter.states", UserGroupStates, opts.States)
}

// ListUserGroups retrieves the user groups of the account
func (c *Client) ListUserGroups(ctx context.Context, opts UserGroupListOptions) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "userGroups", c.userGroupQuery(opts).values)
}

// ListChildUserGroups retrieves the immediate child groups of a user group
func (c *Client) ListChildUserGroups(ctx context.Context, groupID string, opts UserGroupListOptions) (*Result, error) {
	endpoint := "userGroups/" + url.PathEscape(groupID) + "/userGroups"
	return c.Fetch(ctx, http.MethodGet, endpoint, c.userGroupQuery(opts).values)
}

// GetUserGroup retrieves a single user group
func (c *Client) GetUserGroup(ctx context.Context, groupID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "userGroups/"+url.PathEscape(groupID), nil)
}

// SearchUserGroups retrieves the user groups whose name starts with prefix
func (c *Client) SearchUserGroups(ctx context.Context, prefix string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(opts).
		enum("sort", UserGroupSearchSort, opts.Sort).
		set("nameStartsWith", prefix)
	return c.Fetch(ctx, http.MethodGet, "userGroups/search", q.values)
}

// ListUsersOfUserGroup retrieves the members of a user group
func (c *Client) ListUsersOfUserGroup(ctx context.Context, groupID string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", UserSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, "userGroups/"+url.PathEscape(groupID)+"/users", q.values)
}

// AddUsersToUserGroup is not supported yet and always returns ErrNotImplemented
func (c *Client) AddUsersToUserGroup(ctx context.Context, groupID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, "userGroups/"+url.PathEscape(groupID)+"/users", nil)
}

// DeleteUsersFromUserGroup is not supported yet and always returns ErrNotImplemented
func (c *Client) DeleteUsersFromUserGroup(ctx context.Context, groupID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodDelete, "userGroups/"+url.PathEscape(groupID)+"/users", nil)
}
