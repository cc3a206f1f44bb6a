package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/s0up4200/primectl/prime"
)

// listArgs collects the list and get flags shared by every resource
type listArgs struct {
	prime.ListOptions
	Types []string
	State string
	User  string
}

type listFunc func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error)
type getFunc func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error)

// resource maps a command line name onto the client accessors
type resource struct {
	Name    string
	Aliases []string
	PerUser bool
	List    listFunc
	Get     getFunc
}

var resources = []resource{
	{
		Name:    "badges",
		Aliases: []string{"badge"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListBadges(ctx, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetBadge(ctx, id)
		},
	},
	{
		Name:    "catalogs",
		Aliases: []string{"catalog"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListCatalogs(ctx, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetCatalog(ctx, id)
		},
	},
	{
		Name:    "jobs",
		Aliases: []string{"job"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListJobs(ctx, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetJob(ctx, id)
		},
	},
	{
		Name:    "skills",
		Aliases: []string{"skill"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListSkills(ctx, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetSkill(ctx, id, a.Include)
		},
	},
	{
		Name:    "learning-objects",
		Aliases: []string{"learning-object", "lo", "los"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListLearningObjects(ctx, prime.LearningObjectListOptions{
				ListOptions: a.ListOptions,
				Types:       a.Types,
			})
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetLearningObject(ctx, id, a.Include)
		},
	},
	{
		Name:    "external-profiles",
		Aliases: []string{"external-profile"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListExternalProfiles(ctx, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetExternalProfile(ctx, id)
		},
	},
	{
		Name:    "user-groups",
		Aliases: []string{"user-group", "groups", "group"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUserGroups(ctx, prime.UserGroupListOptions{
				ListOptions: a.ListOptions,
				States:      a.State,
			})
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetUserGroup(ctx, id)
		},
	},
	{
		Name:    "users",
		Aliases: []string{"user"},
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUsers(ctx, prime.UserListOptions{ListOptions: a.ListOptions})
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetUser(ctx, id, a.Include)
		},
	},
	{
		Name:    "user-badges",
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUserBadges(ctx, a.User, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetUserBadge(ctx, a.User, id, a.Include)
		},
	},
	{
		Name:    "user-skills",
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUserSkills(ctx, a.User, a.ListOptions)
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetUserSkill(ctx, a.User, id, a.Include)
		},
	},
	{
		Name:    "memberships",
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListGroupsOfUser(ctx, a.User, a.ListOptions)
		},
	},
	{
		Name:    "enrollments",
		Aliases: []string{"enrollment"},
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListEnrollments(ctx, a.User, prime.EnrollmentListOptions{
				ListOptions: a.ListOptions,
				Types:       a.Types,
				States:      a.State,
			})
		},
		Get: func(ctx context.Context, api *prime.Client, id string, a listArgs) (*prime.Result, error) {
			return api.GetEnrollment(ctx, a.User, id, a.Include)
		},
	},
	{
		Name:    "skill-interests",
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUserSkillInterests(ctx, a.User, prime.SkillInterestListOptions{
				ListOptions: a.ListOptions,
				Types:       firstOf(a.Types),
			})
		},
	},
	{
		Name:    "notifications",
		PerUser: true,
		List: func(ctx context.Context, api *prime.Client, a listArgs) (*prime.Result, error) {
			return api.ListUserNotifications(ctx, a.User, prime.NotificationListOptions{
				Limit:    a.Limit,
				Cursor:   a.Cursor,
				Channels: a.Types,
			})
		},
	},
}

// findResource looks a resource up by name or alias
func findResource(name string) (resource, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range resources {
		if r.Name == name {
			return r, nil
		}
		for _, alias := range r.Aliases {
			if alias == name {
				return r, nil
			}
		}
	}
	return resource{}, fmt.Errorf("unknown resource %q, expected one of: %s", name, strings.Join(resourceNames(nil), ", "))
}

// resourceNames lists the resource names accepted by a command. A nil
// predicate accepts every resource.
func resourceNames(accept func(resource) bool) []string {
	var names []string
	for _, r := range resources {
		if accept == nil || accept(r) {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	return names
}

// userFor returns the user a per-user resource is read for. Without --user
// the user of the current session is used.
func (r resource) userFor(a listArgs, sessionUser string) (string, error) {
	if !r.PerUser {
		return "", nil
	}
	if a.User != "" {
		return a.User, nil
	}
	if sessionUser != "" {
		return sessionUser, nil
	}
	return "", fmt.Errorf("%s belong to a user: pass --user or run 'primectl auth check' first", r.Name)
}

func firstOf(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
