// Package site wires the route table, static assets and middleware of the
// create-route-dom site onto a chi router.
package site

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jackielii/routedom"
	"github.com/jackielii/routedom/chirouter"
	"github.com/jackielii/routedom/internal/config"
	"github.com/jackielii/routedom/internal/sections"
)

// Site serves the pages of the route table under the configured base path.
type Site struct {
	cfg     config.Config
	logger  *slog.Logger
	root    *routedom.PageNode
	homeURL string
	router  chi.Router
}

// New validates cfg and mounts the site.
func New(cfg config.Config, logger *slog.Logger) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Site{cfg: cfg, logger: logger, router: chi.NewRouter()}

	// forwarding headers are client controlled unless a proxy sets them
	if cfg.TrustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(
		requestID,
		logRequests(logger),
		middleware.Recoverer,
	)
	if cfg.RateLimit > 0 {
		s.router.Use(newRateLimiter(cfg.RateLimit, cfg.RateBurst).middleware)
	}

	app := routedom.New(
		routedom.WithLogger(logger),
		routedom.WithErrorHandler(s.serverError),
		routedom.WithDefaultPageConfig(routedom.HTMXPageConfig),
	)
	root, err := app.Mount(chirouter.New(s.router), pages{}, mountRoute(cfg.BasePath), cfg.Title, &s.cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("mount pages: %w", err)
	}
	s.root = root
	s.homeURL = root.Path()
	for _, child := range root.Children {
		if child.Name == "hero" {
			s.homeURL = child.Path()
		}
	}

	assets := cfg.BasePath + "/assets/"
	s.router.Handle(assets+"*", http.StripPrefix(assets, http.FileServerFS(sections.Static())))
	if cfg.BasePath != "" {
		s.router.Handle(cfg.BasePath, http.HandlerFunc(s.redirectToBase))
	}
	s.router.NotFound(s.notFound)
	return s, nil
}

func mountRoute(basePath string) string {
	if basePath == "" {
		return "/"
	}
	return basePath
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Root returns the mounted route tree.
func (s *Site) Root() *routedom.PageNode {
	return s.root
}

// Routes lists the route table as mounted under basePath.
func Routes(basePath string) (string, error) {
	cfg := config.Default()
	cfg.BasePath = basePath
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return routedom.PrintRoutes(mountRoute(cfg.BasePath), pages{})
}

func (s *Site) underBase(path string) bool {
	return s.cfg.BasePath == "" || strings.HasPrefix(path, s.cfg.BasePath+"/")
}

func (s *Site) redirectToBase(w http.ResponseWriter, r *http.Request) {
	target := s.cfg.BasePath + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	if htmx.IsHTMX(r) {
		if err := htmx.NewResponse().Redirect(target).Write(w); err != nil {
			s.logger.ErrorContext(r.Context(), "write htmx redirect", slog.Any("error", err))
		}
		return
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}

// notFound renders the not-found section inside the layout for unknown paths under
// the base path. Anything outside the base is not part of the site.
func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	if !s.underBase(r.URL.Path) {
		http.NotFound(w, r)
		return
	}
	var comp templ.Component = sections.NotFound(r.URL.Path, s.homeURL)
	if !htmx.IsHTMX(r) || htmx.IsBoosted(r) {
		comp = pages{}.Layout(comp, s.root, r, &s.cfg)
	}
	templ.Handler(comp, templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "render page",
		slog.String("path", r.URL.Path),
		slog.String("request_id", RequestID(r.Context())),
		slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
