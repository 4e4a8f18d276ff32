package dlyt

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
)

// Params are query or form fields. Nil values, including nil pointers, are
// left out; zero values such as 0 and "" are kept.
type Params map[string]any

// Values converts p to url.Values
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for key, raw := range p {
		v, ok := deref(raw)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case []string:
			for _, s := range val {
				values.Add(key, s)
			}
		case string:
			values.Add(key, val)
		default:
			values.Add(key, fmt.Sprint(val))
		}
	}
	return values
}

// Encode returns p in application/x-www-form-urlencoded form, sorted by key
func (p Params) Encode() string {
	return p.Values().Encode()
}

func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

// PageParams builds the paging fields understood by the history endpoints
func PageParams(page, size int) Params {
	p := Params{}
	if page > 0 {
		p["page"] = page
	}
	if size > 0 {
		p["size"] = size
	}
	return p
}

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// hasScheme reports whether path is already an absolute URL
func hasScheme(path string) bool {
	return schemePattern.MatchString(path)
}

// escapeComponent encodes s the way a single query value or path segment
// must be encoded, with spaces as %20.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// appendQuery adds key=value to path without disturbing an existing query
func appendQuery(path, key, value string) string {
	return appendRawQuery(path, key+"="+escapeComponent(value))
}

func appendRawQuery(path, query string) string {
	if query == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + query
	}
	return path + "?" + query
}
