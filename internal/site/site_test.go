package site

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackielii/routedom/internal/config"
	"github.com/jackielii/routedom/internal/sections"
)

func newTestSite(t *testing.T, mutate ...func(*config.Config)) *Site {
	t.Helper()
	cfg := config.Default()
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func sectionCount(body, name string) int {
	return strings.Count(body, `data-section="`+name+`"`)
}

func TestEachRouteRendersItsSectionOnce(t *testing.T) {
	s := newTestSite(t)
	routes := map[string]string{
		"/create-route-dom/":        sections.HeroName,
		"/create-route-dom/feature": sections.FeatureName,
		"/create-route-dom/blog":    sections.BlogName,
		"/create-route-dom/team":    sections.TeamName,
		"/create-route-dom/about":   sections.AboutName,
	}
	for path, want := range routes {
		t.Run(want, func(t *testing.T) {
			rec := get(t, s, path)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			body := rec.Body.String()
			for _, name := range sections.Names {
				expected := 0
				if name == want {
					expected = 1
				}
				assert.Equal(t, expected, sectionCount(body, name), "section %s on %s", name, path)
			}
			assert.Equal(t, 1, strings.Count(body, `<div id="root">`), "mounted once")
			assert.Contains(t, body, `<main id="outlet">`)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
		})
	}
}

func TestUndefinedPathUnderBase(t *testing.T) {
	s := newTestSite(t)
	for _, path := range []string{"/create-route-dom/nope", "/create-route-dom/blog/1", "/create-route-dom/feature/"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		body := rec.Body.String()
		for _, name := range sections.Names {
			assert.Zero(t, sectionCount(body, name), "section %s on %s", name, path)
		}
		assert.Equal(t, 1, sectionCount(body, sections.NotFoundName), path)
		assert.Contains(t, body, `<div id="root">`, "not found renders inside the layout")
		assert.Contains(t, body, `href="/create-route-dom/"`, "links back home")
	}
}

func TestOutsideBase(t *testing.T) {
	s := newTestSite(t)
	for _, path := range []string{"/", "/feature", "/create-route-domx"} {
		rec := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "data-section", path)
	}
}

func TestBaseWithoutSlashRedirects(t *testing.T) {
	s := newTestSite(t)
	rec := get(t, s, "/create-route-dom?x=1")
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/create-route-dom/?x=1", rec.Header().Get("Location"))

	rec = get(t, s, "/create-route-dom", "HX-Request", "true")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/create-route-dom/", rec.Header().Get("HX-Redirect"))

	req := httptest.NewRequest(http.MethodHead, "/create-route-dom", http.NoBody)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/create-route-dom/", rec.Header().Get("Location"))
}

func TestRootHasOneChildPerSection(t *testing.T) {
	s := newTestSite(t)
	root := s.Root()
	require.NotNil(t, root)
	assert.Equal(t, "/create-route-dom", root.Route)

	var names []string
	for _, child := range root.Children {
		names = append(names, child.Name)
	}
	assert.Equal(t, sections.Names, names)
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	s := newTestSite(t, func(c *config.Config) {
		c.RateLimit = 0.001
		c.RateBurst = 1
	})
	codes := map[int]int{}
	for i := range 20 {
		rec := get(t, s, "/create-route-dom/", "X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		codes[rec.Code]++
	}
	assert.Equal(t, 1, codes[http.StatusOK])
	assert.Equal(t, 19, codes[http.StatusTooManyRequests])
}

func TestRateLimitBehindTrustedProxy(t *testing.T) {
	s := newTestSite(t, func(c *config.Config) {
		c.RateLimit = 0.001
		c.RateBurst = 1
		c.TrustProxy = true
	})
	assert.Equal(t, http.StatusOK, get(t, s, "/create-route-dom/", "X-Forwarded-For", "203.0.113.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, s, "/create-route-dom/", "X-Forwarded-For", "203.0.113.1").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/create-route-dom/", "X-Forwarded-For", "203.0.113.2").Code)
}

func TestPartialNavigation(t *testing.T) {
	s := newTestSite(t)
	rec := get(t, s, "/create-route-dom/team", "HX-Request", "true", "HX-Target", sections.OutletID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<section class="section section-team"`), body)
	assert.NotContains(t, body, "<html")
	assert.NotContains(t, body, "<nav>")
	assert.Contains(t, rec.Header().Values("Vary"), "HX-Request")

	rec = get(t, s, "/create-route-dom/team", "HX-Request", "true", "HX-Boosted", "true")
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
}

func TestNavigation(t *testing.T) {
	s := newTestSite(t)
	body := get(t, s, "/create-route-dom/blog").Body.String()

	for _, want := range []string{
		`href="/create-route-dom/"`,
		`href="/create-route-dom/feature"`,
		`href="/create-route-dom/blog"`,
		`href="/create-route-dom/team"`,
		`href="/create-route-dom/about"`,
	} {
		assert.Contains(t, body, want)
	}
	assert.Equal(t, 1, strings.Count(body, `aria-current="page"`))
	assert.Contains(t, body, `href="/create-route-dom/blog" hx-get="/create-route-dom/blog" hx-target="#outlet" hx-push-url="true" aria-current="page"`)
	assert.Contains(t, body, "<title>Blog | create-route-dom</title>")
	assert.Contains(t, body, `href="/create-route-dom/assets/index.css"`)

	hero := get(t, s, "/create-route-dom/").Body.String()
	assert.Contains(t, hero, `class="button" href="/create-route-dom/feature"`, "hero links to the feature page")
}

func TestAssets(t *testing.T) {
	s := newTestSite(t)
	rec := get(t, s, "/create-route-dom/assets/index.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), ".site-header")
}

func TestCustomBaseAndMount(t *testing.T) {
	s := newTestSite(t, func(c *config.Config) {
		c.BasePath = "/"
		c.MountID = "app"
		c.Title = "Acme"
	})
	rec := get(t, s, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div id="app">`)
	assert.Equal(t, 1, sectionCount(body, sections.AboutName))
	assert.Contains(t, body, "Acme is a small site")

	assert.Equal(t, 1, sectionCount(get(t, s, "/").Body.String(), sections.HeroName))
	assert.Equal(t, http.StatusNotFound, get(t, s, "/missing").Code)
}

func TestNewRejectsInvalidMount(t *testing.T) {
	cfg := config.Default()
	cfg.MountID = ""
	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mount id")
}

func TestRequestIDIsKept(t *testing.T) {
	s := newTestSite(t)
	const id = "2f1b5a9e-3f53-4a51-9c8e-0c8f0f9b8a11"
	rec := get(t, s, "/create-route-dom/", requestIDHeader, id)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))

	rec = get(t, s, "/create-route-dom/", requestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(requestIDHeader))
}

func TestRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	s, err := New(config.Default(), slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	get(t, s, "/create-route-dom/blog")
	out := logs.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "path=/create-route-dom/blog")
	assert.Contains(t, out, "status=200")
}

func TestRoutes(t *testing.T) {
	out, err := Routes("/create-route-dom/")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	wants := []string{
		"/create-route-dom/{$} Home",
		"/create-route-dom/feature Feature",
		"/create-route-dom/blog Blog",
		"/create-route-dom/team Team",
		"/create-route-dom/about About",
	}
	for i, want := range wants {
		assert.Equal(t, "ALL "+want, strings.Join(strings.Fields(lines[i]), " "))
	}
}
