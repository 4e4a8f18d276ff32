package dlyt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// CodeSet is a set of business codes
type CodeSet map[int64]struct{}

// NewCodeSet builds a CodeSet from codes
func NewCodeSet(codes ...int64) CodeSet {
	set := make(CodeSet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether v is a number equal to one of the codes.
// Non-numeric values are never contained.
func (s CodeSet) Contains(v any) bool {
	n, ok := integral(v)
	if !ok {
		return false
	}
	_, found := s[n]
	return found
}

// CodePolicy decides whether a JSON payload carries a business failure
type CodePolicy struct {
	// Fields are consulted in order; the first one present and non-null is the code
	Fields []string
	// Accepted codes mean success
	Accepted CodeSet
}

// DefaultCodePolicy checks status, then code, then errno against {0, 200, 20000}
var DefaultCodePolicy = CodePolicy{
	Fields:   []string{"status", "code", "errno"},
	Accepted: NewCodeSet(0, 200, 20000),
}

// Lookup returns the business code of payload, if it has one
func (p CodePolicy) Lookup(payload any) (any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, field := range p.Fields {
		if v, present := obj[field]; present && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Failed reports whether payload signals a business failure and returns the
// offending code. A missing code is success.
func (p CodePolicy) Failed(payload any) (any, bool) {
	code, ok := p.Lookup(payload)
	if !ok {
		return nil, false
	}
	if p.Accepted.Contains(code) {
		return code, false
	}
	return code, true
}

// extractMessage returns the first truthy msg or message field of payload
func extractMessage(payload any, fallback string) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return fallback
	}
	for _, key := range []string{"msg", "message"} {
		if s := truthyString(obj[key]); s != "" {
			return s
		}
	}
	return fallback
}

func truthyString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	case float64:
		if val == 0 || math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

// formatCode renders a business code for messages
func formatCode(v any) string {
	switch val := v.(type) {
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func integral(v any) (int64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n, true
		}
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	case int:
		return int64(val), true
	case int64:
		return val, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
