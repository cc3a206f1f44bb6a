package prime

import (
	"context"
	"net/http"
	"net/url"
)

func userPath(userID string, rest ...string) string {
	p := "users/" + url.PathEscape(userID)
	for _, r := range rest {
		p += "/" + url.PathEscape(r)
	}
	return p
}

// UserListOptions holds the parameters of a user listing. UserID is only
// sent when Filter is "gamification".
type UserListOptions struct {
	ListOptions
	Filter string
	UserID string
}

// ListUsers retrieves the users of the account
func (c *Client) ListUsers(ctx context.Context, opts UserListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts.ListOptions).
		set("page[cursor]", opts.Cursor).
		enum("sort", UserSort, opts.Sort).
		set("include", opts.Include).
		enum("filter", UserFilters, opts.Filter)
	if q.values.Get("filter") == "gamification" {
		q.set("userId", opts.UserID)
	}
	return c.Fetch(ctx, http.MethodGet, "users", q.values)
}

// GetUser retrieves a single user
func (c *Client) GetUser(ctx context.Context, userID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID), q.values)
}

// ListUserBadges retrieves the badges a user achieved
func (c *Client) ListUserBadges(ctx context.Context, userID string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(opts).
		enum("sort", AchievementSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userBadges"), q.values)
}

// GetUserBadge retrieves a single badge of a user
func (c *Client) GetUserBadge(ctx context.Context, userID, badgeID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userBadges", badgeID), q.values)
}

// ListGroupsOfUser retrieves the user groups a user belongs to
func (c *Client) ListGroupsOfUser(ctx context.Context, userID string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", UserGroupsOfUserSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userGroups"), q.values)
}

// ListUserSkills retrieves the skills a user achieved
func (c *Client) ListUserSkills(ctx context.Context, userID string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		offsetPage(opts).
		enum("sort", AchievementSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userSkills"), q.values)
}

// GetUserSkill retrieves a single skill of a user
func (c *Client) GetUserSkill(ctx context.Context, userID, userSkillID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userSkills", userSkillID), q.values)
}

// NotificationListOptions holds the parameters of a notification listing.
// A nil Read returns read and unread notifications.
type NotificationListOptions struct {
	Limit             int
	Cursor            string
	Read              *bool
	AnnouncementsOnly bool
	Language          string
	Channels          []string
}

// ListUserNotifications retrieves the notifications of a user
func (c *Client) ListUserNotifications(ctx context.Context, userID string, opts NotificationListOptions) (*Result, error) {
	language := opts.Language
	if language == "" {
		language = "en_US"
	}

	q := newQuery(c.logger).
		cursorPage(ListOptions{Limit: opts.Limit, Cursor: opts.Cursor}).
		flag("read", opts.Read).
		flag("announcementsOnly", &opts.AnnouncementsOnly).
		set("language", language).
		enumList("userSelectedChannels", NotificationChannels, opts.Channels)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "userNotifications"), q.values)
}

// SkillInterestListOptions holds the parameters of a skill interest listing
type SkillInterestListOptions struct {
	ListOptions
	Types string
}

// ListUserSkillInterests retrieves the skill interests of a user
func (c *Client) ListUserSkillInterests(ctx context.Context, userID string, opts SkillInterestListOptions) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(opts.ListOptions).
		enum("sort", SkillInterestSort, opts.Sort).
		enum("filter.skillInterestTypes", SkillInterestTypes, opts.Types)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "skillInterests"), q.values)
}

// EnrollmentListOptions holds the parameters of an enrollment listing
type EnrollmentListOptions struct {
	ListOptions
	Types  []string
	States string
}

// ListEnrollments retrieves the learning objects a user is enrolled in
func (c *Client) ListEnrollments(ctx context.Context, userID string, opts EnrollmentListOptions) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(opts.ListOptions).
		enum("sort", EnrollmentSort, opts.Sort).
		set("include", opts.Include).
		enumList("filter.loTypes", LearningObjectTypes, opts.Types).
		enum("filter.states", EnrollmentStates, opts.States)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "enrollments"), q.values)
}

// GetEnrollment retrieves a single enrollment of a user
func (c *Client) GetEnrollment(ctx context.Context, userID, enrollmentID, include string) (*Result, error) {
	q := newQuery(c.logger).set("include", include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "enrollments", enrollmentID), q.values)
}

// ListAccountsOfEmail retrieves every account registered for an email address
func (c *Client) ListAccountsOfEmail(ctx context.Context, email string, onlyActive, socialEnabled bool) (*Result, error) {
	q := newQuery(c.logger).
		flag("onlyActive", &onlyActive).
		flag("socialEnabledAccounts", &socialEnabled)
	return c.Fetch(ctx, http.MethodGet, userPath(email, "accounts"), q.values)
}

// ListUserBadgesForLearningObject retrieves the badges a user achieved in a
// learning object
func (c *Client) ListUserBadgesForLearningObject(ctx context.Context, userID, learningObjectID string, opts ListOptions) (*Result, error) {
	q := newQuery(c.logger).
		cursorPage(opts).
		enum("sort", AchievementSort, opts.Sort).
		set("include", opts.Include)
	return c.Fetch(ctx, http.MethodGet, userPath(userID, "learningObjects", learningObjectID, "userBadges"), q.values)
}

// CreateUser is not supported yet and always returns ErrNotImplemented
func (c *Client) CreateUser(ctx context.Context) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, "users", nil)
}

// UpdateUser is not supported yet and always returns ErrNotImplemented
func (c *Client) UpdateUser(ctx context.Context, userID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPatch, userPath(userID), nil)
}

// DeleteUser is not supported yet and always returns ErrNotImplemented
func (c *Client) DeleteUser(ctx context.Context, userID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodDelete, userPath(userID), nil)
}

// EnrollUser is not supported yet and always returns ErrNotImplemented
func (c *Client) EnrollUser(ctx context.Context, userID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, userPath(userID, "enrollments"), nil)
}

// UpdateEnrollment is not supported yet and always returns ErrNotImplemented
func (c *Client) UpdateEnrollment(ctx context.Context, userID, enrollmentID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPatch, userPath(userID, "enrollments", enrollmentID), nil)
}

// DeleteEnrollment is not supported yet and always returns ErrNotImplemented
func (c *Client) DeleteEnrollment(ctx context.Context, userID, enrollmentID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodDelete, userPath(userID, "enrollments", enrollmentID), nil)
}

// AddSkillInterest is not supported yet and always returns ErrNotImplemented
func (c *Client) AddSkillInterest(ctx context.Context, userID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodPost, userPath(userID, "skillInterests"), nil)
}

// DeleteSkillInterest is not supported yet and always returns ErrNotImplemented
func (c *Client) DeleteSkillInterest(ctx context.Context, userID, skillID string) (*Result, error) {
	return c.Fetch(ctx, http.MethodDelete, userPath(userID, "skillInterests", skillID), nil)
}
