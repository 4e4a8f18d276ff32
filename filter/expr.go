package filter

import (
	"maps"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled expressions kept by NewExprCompiler
// when WithCache is not given
const DefaultCacheSize = 100

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache sets the cache size. Zero disables caching.
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		} else {
			c.cache = nil
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// WithClock replaces the time source used by date helpers
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		if now != nil {
			c.now = now
			addHelperFunctions(c.helperFuncs, now)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any, 16),
		cache:       newLRUCache(DefaultCacheSize),
		now:         time.Now,
	}
	addHelperFunctions(c.helperFuncs, c.now)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	cache       *lruCache
	now         func() time.Time
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

	// record fields are unknown at compile time
	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(),
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
		helpers:    c.helperFuncs,
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

// Evaluate reports whether subject matches. Run-time errors count as no match.
func (f *exprFilter) Evaluate(subject Subject) bool {
	ok, err := f.Match(subject)
	return err == nil && ok
}

// Match evaluates the filter against subject
func (f *exprFilter) Match(subject Subject) (bool, error) {
	result, err := expr.Run(f.program, f.environment(subject))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func (f *exprFilter) environment(subject Subject) map[string]any {
	fields := subject.FilterEnv()
	env := make(map[string]any, len(f.helpers)+len(fields))
	maps.Copy(env, f.helpers)
	maps.Copy(env, fields)
	return env
}

// dateLayouts are accepted by parseDate, most specific first
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// addHelperFunctions installs the date and text helpers. Date helpers read
// the clock through now so tests can pin it.
func addHelperFunctions(env map[string]any, now func() time.Time) {
	env["now"] = now
	env["daysSince"] = func(t time.Time) int {
		return int(now().Sub(t).Hours() / 24)
	}
	env["hoursSince"] = func(t time.Time) int {
		return int(now().Sub(t).Hours())
	}
	env["daysAgo"] = func(days int) time.Time {
		return now().AddDate(0, 0, -days)
	}
	env["parseDate"] = func(value string) time.Time {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
		return time.Time{}
	}

	// Duration fields are whole seconds
	env["minutes"] = func(seconds int64) float64 {
		return float64(seconds) / 60
	}

	// text matching ignores case; contains, startsWith and endsWith are
	// operators in expr, so these carry an i prefix
	fold := func(match func(string, string) bool) func(string, string) bool {
		return func(s, sub string) bool {
			return match(strings.ToLower(s), strings.ToLower(sub))
		}
	}
	env["icontains"] = fold(strings.Contains)
	env["istartsWith"] = fold(strings.HasPrefix)
	env["iendsWith"] = fold(strings.HasSuffix)
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["length"] = utf8.RuneCountInString
}
