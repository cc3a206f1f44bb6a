package prime

import (
	"context"
	"net/http"
	"net/url"
)

// ListBadges retrieves the badges of the account
func (c *Client) ListBadges(ctx context.Context, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", BadgeSort, opts.Sort)
	return c.Fetch(ctx, http.MethodGet, "badges", q.values)
}

// GetBadge retrieves a single badge
func (c *Client) GetBadge(ctx context.Context, badgeID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "badges/"+url.PathEscape(badgeID), nil)
}

// ListCatalogs retrieves the catalogs of the account
func (c *Client) ListCatalogs(ctx context.Context, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", CatalogSort, opts.Sort)
	return c.Fetch(ctx, http.MethodGet, "catalogs", q.values)
}

// GetCatalog retrieves a single catalog
func (c *Client) GetCatalog(ctx context.Context, catalogID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "catalogs/"+url.PathEscape(catalogID), nil)
}

// ListJobs retrieves the asynchronous jobs submitted for the account
func (c *Client) ListJobs(ctx context.Context, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", JobSort, opts.Sort)
	return c.Fetch(ctx, http.MethodGet, "jobs", q.values)
}

// GetJob retrieves a single job
func (c *Client) GetJob(ctx context.Context, jobID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodGet, "jobs/"+url.PathEscape(jobID), nil)
}

// CreateJob is not supported yet and always returns ErrNotImplemented
func (c *Client) CreateJob(ctx context.Context) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, "jobs", nil)
}

// ListSkills retrieves the skills of the account
func (c *Client) ListSkills(ctx context.Context, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", SkillSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, "skills", q.values)
}

// GetSkill retrieves a single skill
func (c *Client) GetSkill(ctx context.Context, skillID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, "skills/"+url.PathEscape(skillID), q.values)
}

// SkillInterestSearch holds the parameters of a skill interest search
type SkillInterestSearch struct {
	Types          string
	NameStartsWith string
	Limit          int
	Cursor         string
}

// SearchSkillInterests searches skill interests by name prefix
func (c *Client) SearchSkillInterests(ctx context.Context, search SkillInterestSearch) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(ListOptions{Limit: search.Limit, Cursor: search.Cursor}).
		enum("filter.skillInterestTypes", SkillInterestTypes, search.Types).
		set("nameStartsWith", search.NameStartsWith)
	return c.Fetch(ctx, http.MethodGet, "skillInterest/search", q.values)
}
