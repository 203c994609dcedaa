// Package uri assembles request URLs from a base, path segments and query
// parameters.
package uri

import (
	"fmt"
	"net/url"
	"strings"
)

// Param is one query parameter. Value may be nil (omitted), a bool, a slice
// (one pair per non-nil element) or anything printable.
type Param struct {
	Name  string
	Value any
}

// Params keeps query parameters in the order they were added.
type Params []Param

// Add appends a parameter and returns the extended list.
func (p Params) Add(name string, value any) Params {
	return append(p, Param{Name: name, Value: value})
}

// Build joins base, segments and query into a URL. Empty segments are
// skipped, each segment loses its own leading and trailing slashes, and a
// single trailing slash on base is dropped. Malformed input produces a best
// effort string rather than an error.
func Build(base string, segments []string, query Params) string {
	base = strings.TrimSuffix(base, "/")

	var b strings.Builder

	b.WriteString(base)

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		b.WriteByte('/')
		b.WriteString(strings.Trim(segment, "/"))
	}

	if encoded := Encode(query); encoded != "" {
		b.WriteByte('?')
		b.WriteString(encoded)
	}

	return b.String()
}

// Encode renders params as an application/x-www-form-urlencoded string.
func Encode(params Params) string {
	pairs := make([]string, 0, len(params))

	for _, param := range params {
		for _, value := range expand(param.Value) {
			pairs = append(pairs, url.QueryEscape(param.Name)+"="+url.QueryEscape(value))
		}
	}

	return strings.Join(pairs, "&")
}

func expand(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))

		for _, item := range typed {
			if item == nil {
				continue
			}

			out = append(out, scalar(item))
		}

		return out
	case []*string:
		out := make([]string, 0, len(typed))

		for _, item := range typed {
			if item != nil {
				out = append(out, *item)
			}
		}

		return out
	case *string:
		if typed == nil {
			return nil
		}

		return []string{*typed}
	default:
		return []string{scalar(typed)}
	}
}

func scalar(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}

		return "false"
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
