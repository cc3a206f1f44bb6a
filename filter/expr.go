package filter

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/primectl/prime"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	funcs      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache
}

// CompileFilter compiles an expression with the default compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// An empty resource yields helpers with the same signatures as at runtime
	program, err := expr.Compile(expression,
		expr.Env(newEnvironment(prime.Resource{}, c.customFuncs)),
		expr.AllowUndefinedVariables(), // attribute names are not known up front
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		funcs:      c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a resource. Runtime errors count
// as no match.
func (f *exprFilter) Evaluate(resource prime.Resource) bool {
	result, err := expr.Run(f.program, newEnvironment(resource, f.funcs))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// newEnvironment exposes a resource to an expression. Attribute names are
// top-level variables; helpers and ID, Type, Attributes win on collisions.
func newEnvironment(resource prime.Resource, custom map[string]any) map[string]any {
	attrs := resource.Attributes()

	env := make(map[string]any, len(attrs)+32)
	maps.Copy(env, attrs)

	env["ID"] = resource.ID()
	env["Type"] = resource.Type()
	env["Attributes"] = attrs

	addHelperFunctions(env)

	// Resource-bound helpers
	env["attr"] = func(path string) any {
		v, _ := lookup(attrs, path)
		return v
	}
	env["hasAttr"] = func(path string) bool {
		_, ok := lookup(attrs, path)
		return ok
	}
	env["field"] = func(path string) any {
		v, _ := lookup(map[string]any(resource), path)
		return v
	}
	env["str"] = func(path string) string {
		v, ok := lookup(attrs, path)
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	env["num"] = func(path string) float64 {
		v, _ := lookup(attrs, path)
		return toFloat(v)
	}
	env["date"] = func(path string) time.Time {
		v, _ := lookup(attrs, path)
		s, _ := v.(string)
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	env["related"] = func(name string) []string {
		return relatedIDs(resource, name)
	}
	env["hasRelated"] = func(name, id string) bool {
		for _, rid := range relatedIDs(resource, name) {
			if rid == id {
				return true
			}
		}
		return false
	}

	maps.Copy(env, custom)

	return env
}

// addHelperFunctions adds the helpers that do not depend on the resource
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// lookup walks a dotted path through nested objects and arrays
func lookup(value any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	for _, key := range strings.Split(path, ".") {
		switch v := value.(type) {
		case map[string]any:
			next, ok := v[key]
			if !ok {
				return nil, false
			}
			value = next
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			value = v[i]
		default:
			return nil, false
		}
	}

	return value, true
}

// relatedIDs returns the ids referenced by relationships.<name>.data
func relatedIDs(resource prime.Resource, name string) []string {
	data, ok := lookup(map[string]any(resource), "relationships."+name+".data")
	if !ok {
		return nil
	}

	var ids []string
	add := func(v any) {
		if ref, ok := v.(map[string]any); ok {
			if id, ok := ref["id"].(string); ok {
				ids = append(ids, id)
			}
		}
	}

	switch d := data.(type) {
	case []any:
		for _, ref := range d {
			add(ref)
		}
	default:
		add(d)
	}
	return ids
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	case bool:
		if n {
			return 1
		}
	}
	return 0
}
