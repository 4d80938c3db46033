// Package chirouter adapts a chi router to routedom.Router.
package chirouter

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Router registers routedom pages on a chi.Router.
type Router struct {
	router chi.Router
}

// New wraps r.
func New(r chi.Router) *Router {
	return &Router{router: r}
}

// HandleMethod registers handler on the chi router. chi patterns are already
// anchored, so the ServeMux end marker {$} is dropped and "{name...}" becomes "*".
func (r *Router) HandleMethod(method, path string, handler http.Handler) {
	path = strings.TrimSuffix(path, "{$}")
	if i := strings.Index(path, "..."); i >= 0 {
		if j := strings.LastIndex(path[:i], "{"); j >= 0 {
			path = path[:j] + "*"
		}
	}
	if method == "ALL" || method == "" {
		r.router.Handle(path, handler)
	} else {
		r.router.Method(method, path, handler)
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
