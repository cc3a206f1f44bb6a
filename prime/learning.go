package prime

import (
	"context"
	"net/http"
	"net/url"
)

// LearningObjectListOptions holds the parameters of a learning object listing
type LearningObjectListOptions struct {
	ListOptions
	Types            []string
	IgnoreEnhancedLP *bool
}

// ListLearningObjects retrieves the learning objects visible to the user
func (c *Client) ListLearningObjects(ctx context.Context, opts LearningObjectListOptions) (*Result, error) {
	ignore := true
	if opts.IgnoreEnhancedLP != nil {
		ignore = *opts.IgnoreEnhancedLP
	}

	q := newQuery(c.logger).
		cursorPage(opts.ListOptions).
		enum("sort", LearningObjectSort, opts.Sort).
		enumList("filter.loTypes", LearningObjectTypes, opts.Types).
		set("include", opts.Include).
		flag("filter.ignoreEnhancedLP", &ignore)
	return c.Fetch(ctx, http.MethodGet, "learningObjects", q.values)
}

// GetLearningObject retrieves a single learning object
func (c *Client) GetLearningObject(ctx context.Context, learningObjectID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, "learningObjects/"+url.PathEscape(learningObjectID), q.values)
}

// GetInstanceSummary retrieves seat, enrollment, waitlist and completion
// counts of a learning object instance
func (c *Client) GetInstanceSummary(ctx context.Context, learningObjectID, instanceID string) (*Result, error) {
	endpoint := "learningObjects/" + url.PathEscape(learningObjectID) +
		"/instances/" + url.PathEscape(instanceID) + "/summary"
	return c.Fetch(ctx, http.MethodGet, endpoint, nil)
}

// ListExternalProfiles retrieves the external profiles of the account
func (c *Client) ListExternalProfiles(ctx context.Context, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).offsetPage(opts)
	return c.Fetch(ctx, http.MethodGet, "externalProfiles", q.values)
}

// GetExternalProfile retrieves a single external profile
func (c *Client) GetExternalProfile(ctx context.Context, profileID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "externalProfiles/"+url.PathEscape(profileID), nil)
}

// ListExternalProfileUsers retrieves the users enrolled through an external profile
func (c *Client) ListExternalProfileUsers(ctx context.Context, profileID string, states []string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enumList("filter.userStates", ExternalProfileUserStates, states)
	return c.Fetch(ctx, http.MethodGet, "externalProfiles/"+url.PathEscape(profileID)+"/users", q.values)
}

// CreateExternalProfile is not supported yet and always returns ErrNotImplemented
func (c *Client) CreateExternalProfile(ctx context.Context) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, "externalProfiles", nil)
}

// UpdateExternalProfile is not supported yet and always returns ErrNotImplemented
func (c *Client) UpdateExternalProfile(ctx context.Context, profileID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPatch, "externalProfiles/"+url.PathEscape(profileID), nil)
}
