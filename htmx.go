package routedom

import (
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
)

// HTMXPageConfig selects the component named after the HX-Target of an htmx request:
//   - HX-Target: "content" -> Content()
//   - HX-Target: "todo-list" -> TodoList()
//   - anything else -> Page()
//
// Pages that lack the named component render Page. Use it app wide with
//
//	routedom.New(routedom.WithDefaultPageConfig(routedom.HTMXPageConfig))
func HTMXPageConfig(r *http.Request) (string, error) {
	if htmx.IsHTMX(r) {
		if target, ok := htmx.GetTarget(r); ok {
			if name := mixedCase(target); name != "" {
				return name, nil
			}
		}
	}
	return "Page", nil
}

func mixedCase(s string) string {
	s = strings.TrimPrefix(s, "#")
	if s == "" || strings.ContainsAny(s, " .") {
		return ""
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}
