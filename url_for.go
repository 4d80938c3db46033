package routedom

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackielii/ctxkey"
)

var (
	pcCtx   = ctxkey.New[*parseContext]("routedom.parseContext", nil)
	pageCtx = ctxkey.New[*PageNode]("routedom.currentPage", nil)
)

func withPageContext(pc *parseContext, page *PageNode, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := pcCtx.WithValue(r.Context(), pc)
		ctx = pageCtx.WithValue(ctx, page)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentPage returns the page node serving the request, or nil outside a mounted page.
func CurrentPage(ctx context.Context) *PageNode {
	return pageCtx.Value(ctx)
}

// URLFor returns the URL of a page mounted in the same tree as the page serving ctx.
// page is a page value or type instance, or a func(*PageNode) bool matching the node.
// A []any joins several parts, strings are taken as is:
//
//	URLFor(ctx, []any{blog{}, "?tag={tag}"}, "tag", "go")
//
// args fill {param} segments: positionally, as "name", value pairs, or as a
// single map[string]any.
func URLFor(ctx context.Context, page any, args ...any) (string, error) {
	pc := pcCtx.Value(ctx)
	if pc == nil {
		return "", errors.New("urlfor: parse context not found in context")
	}
	parts, ok := page.([]any)
	if !ok {
		parts = []any{page}
	}
	var pattern string
	for _, part := range parts {
		if s, ok := part.(string); ok {
			pattern += s
			continue
		}
		p, err := pc.urlFor(part)
		if err != nil {
			return "", err
		}
		pattern += p
	}
	path, err := formatPathSegments(pattern, args...)
	if err != nil {
		return "", fmt.Errorf("urlfor: %w", err)
	}
	return strings.Replace(path, "{$}", "", 1), nil
}

func formatPathSegments(pattern string, args ...any) (string, error) {
	segments, err := parseSegments(pattern)
	if err != nil {
		return pattern, err
	}
	var params []int
	for i, seg := range segments {
		if seg.param {
			params = append(params, i)
		}
	}
	if len(params) == 0 {
		return pattern, nil
	}

	values := make(map[string]any, len(params))
	switch {
	case len(args) == 1:
		m, ok := args[0].(map[string]any)
		if !ok {
			if len(params) != 1 {
				return pattern, fmt.Errorf("pattern %s: use map[string]any for single arg or provide the full args", pattern)
			}
			m = map[string]any{segments[params[0]].name: args[0]}
		}
		values = m
	case len(args) == len(params):
		for i, idx := range params {
			values[segments[idx].name] = args[i]
		}
	case len(args) > 0 && len(args)%2 == 0:
		for i := 0; i < len(args); i += 2 {
			key, ok := args[i].(string)
			if !ok {
				return pattern, fmt.Errorf("pattern %s: expected string key at position %d, got %T", pattern, i, args[i])
			}
			values[key] = args[i+1]
		}
	default:
		names := make([]string, 0, len(params))
		for _, idx := range params {
			names = append(names, segments[idx].name)
		}
		return pattern, fmt.Errorf("pattern %s: not enough arguments provided for segment: %v", pattern, names)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if !seg.param {
			sb.WriteString(seg.name)
			continue
		}
		v, ok := values[seg.name]
		if !ok {
			return pattern, fmt.Errorf("pattern %s: argument %s not found in provided args", pattern, seg.name)
		}
		sb.WriteString(cmp.Or(fmt.Sprint(v), seg.name))
	}
	return sb.String(), nil
}

type segment struct {
	name  string
	param bool
}

func parseSegments(pattern string) (segments []segment, err error) {
	rest := pattern
	for rest != "" {
		start := strings.Index(rest, "{")
		if start == -1 {
			segments = append(segments, segment{name: rest})
			break
		}
		if start > 0 {
			segments = append(segments, segment{name: rest[:start]})
		}
		rest = rest[start+1:]
		end := strings.Index(rest, "}")
		if end == -1 {
			return nil, fmt.Errorf("pattern %s: unmatched {", pattern)
		}
		name := rest[:end]
		rest = rest[end+1:]
		if name == "$" {
			segments = append(segments, segment{name: "{$}"})
			continue
		}
		segments = append(segments, segment{name: strings.TrimSuffix(name, "..."), param: true})
	}
	return segments, nil
}
