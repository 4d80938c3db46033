package routedom

import (
	"net/http"
)

// Router registers page handlers. Paths use http.ServeMux pattern syntax,
// adapters for other routers translate what they need to.
type Router interface {
	HandleMethod(method, path string, handler http.Handler)
}

type stdRouter struct {
	mux *http.ServeMux
}

// NewRouter wraps an http.ServeMux. A nil mux means http.DefaultServeMux.
func NewRouter(mux *http.ServeMux) *stdRouter {
	if mux == nil {
		mux = http.DefaultServeMux
	}
	return &stdRouter{mux: mux}
}

func (r *stdRouter) HandleMethod(method, pattern string, handler http.Handler) {
	if method != methodAll && method != "" {
		pattern = method + " " + pattern
	}
	r.mux.Handle(pattern, handler)
}

func (r *stdRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
