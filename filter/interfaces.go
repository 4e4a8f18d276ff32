package filter

// Subject is anything a filter can be evaluated against. FilterEnv returns
// the variables visible to expressions, keyed by name.
type Subject interface {
	FilterEnv() map[string]any
}

// Filter defines the basic interface for history filters
type Filter interface {
	// Evaluate checks if a subject matches the filter criteria
	Evaluate(subject Subject) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Match is Evaluate with the evaluation error exposed
	Match(subject Subject) (bool, error)

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Apply returns the items matched by f, in order
func Apply[S Subject](f Filter, items []S) []S {
	if f == nil {
		return items
	}
	matched := make([]S, 0, len(items))
	for _, item := range items {
		if f.Evaluate(item) {
			matched = append(matched, item)
		}
	}
	return matched
}
