package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/primectl/config"
	"github.com/s0up4200/primectl/filter"
	"github.com/s0up4200/primectl/prime"
)

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"page[limit]=10", "filter.loTypes=course", "filter.loTypes=jobAid", "empty="})
	require.NoError(t, err)

	assert.Equal(t, "10", params.Get("page[limit]"))
	assert.Equal(t, []string{"course", "jobAid"}, params["filter.loTypes"])
	assert.Equal(t, []string{""}, params["empty"])

	for _, bad := range []string{"novalue", "=value", " =x"} {
		_, err := parseParams([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFindResource(t *testing.T) {
	tests := map[string]string{
		"badges":           "badges",
		"LO":               "learning-objects",
		" group ":          "user-groups",
		"enrollment":       "enrollments",
		"notifications":    "notifications",
		"external-profile": "external-profiles",
	}
	for name, want := range tests {
		r, err := findResource(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, r.Name)
	}

	_, err := findResource("movies")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "learning-objects")
}

func TestResourceTable(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range resources {
		assert.NotNil(t, r.List, "%s has no list accessor", r.Name)
		for _, name := range append([]string{r.Name}, r.Aliases...) {
			assert.False(t, seen[name], "duplicate resource name %s", name)
			seen[name] = true
		}
	}

	names := resourceNames(func(r resource) bool { return r.Get == nil })
	assert.Equal(t, []string{"memberships", "notifications", "skill-interests"}, names)
}

func TestUserFor(t *testing.T) {
	global, err := findResource("badges")
	require.NoError(t, err)
	user, err := global.userFor(listArgs{User: "42"}, "7")
	require.NoError(t, err)
	assert.Empty(t, user)

	perUser, err := findResource("enrollments")
	require.NoError(t, err)

	user, err = perUser.userFor(listArgs{User: "42"}, "7")
	require.NoError(t, err)
	assert.Equal(t, "42", user)

	user, err = perUser.userFor(listArgs{}, "7")
	require.NoError(t, err)
	assert.Equal(t, "7", user)

	_, err = perUser.userFor(listArgs{}, "")
	assert.Error(t, err)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "<none>", maskToken(""))
	assert.Equal(t, "***", maskToken("abc"))
	assert.Equal(t, "********6789", maskToken("0123456789"))
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	setupLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "error", Format: "json"})
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	setupLogger(config.LoggingConfig{Level: "unknown"})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestPrintResult(t *testing.T) {
	logger = zerolog.Nop()
	filters = filter.NewManager()
	require.NoError(t, filters.RegisterFilters(map[string]string{"published": `state == "Published"`}))
	defer func() { filterExpr, preset = "", "" }()

	res := &prime.Result{
		Records: []prime.Resource{
			{"id": "course:1", "type": "learningObject", "attributes": map[string]any{"state": "Published"}},
			{"id": "course:2", "type": "learningObject", "attributes": map[string]any{"state": "Retired"}},
		},
		Stop: &prime.StopReason{Kind: prime.StopClientError, StatusCode: 400},
	}

	run := func() ([]prime.Resource, string) {
		var stdout, stderr bytes.Buffer
		c := &cobra.Command{}
		c.SetContext(context.Background())
		c.SetOut(&stdout)
		c.SetErr(&stderr)

		require.NoError(t, printResult(c, res))

		var records []prime.Resource
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		return records, stderr.String()
	}

	records, warning := run()
	assert.Len(t, records, 2)
	assert.True(t, strings.HasPrefix(warning, "warning: results are incomplete, 2 records"))

	preset = "Published"
	records, _ = run()
	require.Len(t, records, 1)
	assert.Equal(t, "course:1", records[0].ID())

	preset = ""
	filterExpr = `state == "Retired"`
	records, _ = run()
	require.Len(t, records, 1)
	assert.Equal(t, "course:2", records[0].ID())

	filterExpr = ""
	preset = "missing"
	c := &cobra.Command{}
	c.SetContext(context.Background())
	assert.Error(t, printResult(c, res))
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []prime.Resource(nil)))
	assert.Equal(t, "[]\n", buf.String())
}
