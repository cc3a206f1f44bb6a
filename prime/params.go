package prime

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const defaultPageLimit = 10

// Enum is an allow-list for a query parameter. Values outside the list are
// replaced by Default (which may be empty, meaning "omit") and logged; they
// are never rejected.
type Enum struct {
	Name    string
	Default string
	Values  []string
}

// Allows reports whether value is in the allow-list
func (e Enum) Allows(value string) bool {
	return slices.Contains(e.Values, value)
}

// Coerce returns value when allowed, otherwise Default. An empty value is
// taken as "not given" and silently becomes Default.
func (e Enum) Coerce(logger zerolog.Logger, value string) string {
	if e.Allows(value) {
		return value
	}
	if value != "" {
		logger.Debug().
			Str("param", e.Name).
			Str("value", value).
			Str("default", e.Default).
			Strs("expected", e.Values).
			Msg("Invalid parameter value, using default")
	}
	return e.Default
}

// CoerceList drops values outside the allow-list. When nothing is left the
// result is Default alone, or empty if there is no default.
func (e Enum) CoerceList(logger zerolog.Logger, values []string) []string {
	kept := make([]string, 0, len(values))
	var dropped []string
	for _, v := range values {
		if e.Allows(v) {
			kept = append(kept, v)
		} else {
			dropped = append(dropped, v)
		}
	}

	if len(dropped) > 0 {
		logger.Debug().
			Str("param", e.Name).
			Strs("dropped", dropped).
			Strs("used", kept).
			Strs("expected", e.Values).
			Msg("Invalid parameter values removed")
	}

	if len(kept) == 0 && e.Default != "" {
		return []string{e.Default}
	}
	return kept
}

// ListOptions carries the paging, sorting and include parameters shared by
// list endpoints. Offset-paged endpoints ignore Cursor and cursor-paged
// endpoints ignore Offset.
type ListOptions struct {
	Offset  int
	Limit   int
	Cursor  string
	Sort    string
	Include string
}

// query builds query parameters step by step, skipping empty values
type query struct {
	values url.Values
	logger zerolog.Logger
}

func newQuery(logger zerolog.Logger) *query {
	return &query{values: url.Values{}, logger: logger}
}

func (q *query) set(key, value string) *query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *query) flag(key string, value *bool) *query {
	if value != nil {
		q.values.Set(key, strconv.FormatBool(*value))
	}
	return q
}

func (q *query) list(key string, values []string) *query {
	if len(values) > 0 {
		q.values.Set(key, strings.Join(values, ","))
	}
	return q
}

func (q *query) enum(key string, e Enum, value string) *query {
	return q.set(key, e.Coerce(q.logger, value))
}

func (q *query) enumList(key string, e Enum, values []string) *query {
	return q.list(key, e.CoerceList(q.logger, values))
}

// offsetPage sets page[offset] and page[limit]
func (q *query) offsetPage(opts ListOptions) *query {
	q.values.Set("page[offset]", strconv.Itoa(max(opts.Offset, 0)))
	q.values.Set("page[limit]", strconv.Itoa(pageLimit(opts.Limit)))
	return q
}

// cursorPage sets page[limit] and, when given, page[cursor]
func (q *query) cursorPage(opts ListOptions) *query {
	q.values.Set("page[limit]", strconv.Itoa(pageLimit(opts.Limit)))
	return q.set("page[cursor]", opts.Cursor)
}

func pageLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	return limit
}
