package prime

import (
	"context"
	"net/url"
)

// API defines the read operations of the Prime client
type API interface {
	// Fetch runs a paginated query against any endpoint
	Fetch(ctx context.Context, method, endpoint string, params url.Values) (*Result, error)

	GetAccount(ctx context.Context) (*Result, error)
	GetCurrentUser(ctx context.Context, include string) (*Result, error)

	ListBadges(ctx context.Context, opts ListOptions) (*Result, error)
	GetBadge(ctx context.Context, badgeID string) (*Result, error)

	ListCatalogs(ctx context.Context, opts ListOptions) (*Result, error)
	GetCatalog(ctx context.Context, catalogID string) (*Result, error)

	ListJobs(ctx context.Context, opts ListOptions) (*Result, error)
	GetJob(ctx context.Context, jobID string) (*Result, error)

	ListSkills(ctx context.Context, opts ListOptions) (*Result, error)
	GetSkill(ctx context.Context, skillID, include string) (*Result, error)

	ListLearningObjects(ctx context.Context, opts LearningObjectListOptions) (*Result, error)
	GetLearningObject(ctx context.Context, learningObjectID, include string) (*Result, error)

	ListExternalProfiles(ctx context.Context, opts ListOptions) (*Result, error)
	GetExternalProfile(ctx context.Context, profileID string) (*Result, error)

	ListUserGroups(ctx context.Context, opts UserGroupListOptions) (*Result, error)
	GetUserGroup(ctx context.Context, groupID string) (*Result, error)

	ListUsers(ctx context.Context, opts UserListOptions) (*Result, error)
	GetUser(ctx context.Context, userID, include string) (*Result, error)
}

// Authenticator checks and renews the access token
type Authenticator interface {
	Check(ctx context.Context) (bool, error)
	Refresh(ctx context.Context) (bool, error)
	State() TokenState
}

var (
	_ API           = (*Client)(nil)
	_ Authenticator = (*TokenManager)(nil)
)
