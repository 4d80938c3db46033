package chirouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jackielii/routedom"
)

func text(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func do(r http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleMethod(t *testing.T) {
	r := New(chi.NewRouter())
	r.HandleMethod(http.MethodGet, "/handle", text("get"))
	r.HandleMethod("ALL", "/base/{$}", text("index"))
	r.HandleMethod("", "/withid/{id}", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("id " + chi.URLParam(req, "id")))
	}))
	r.HandleMethod(http.MethodGet, "/files/{rest...}", text("files"))

	rec := do(r, http.MethodGet, "/handle")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "get", rec.Body.String())

	assert.Equal(t, http.StatusMethodNotAllowed, do(r, http.MethodPost, "/handle").Code)

	rec = do(r, http.MethodPost, "/base/")
	assert.Equal(t, "index", rec.Body.String())
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/base/x").Code)

	assert.Equal(t, "id 123", do(r, http.MethodGet, "/withid/123").Body.String())
	assert.Equal(t, "files", do(r, http.MethodGet, "/files/a/b/c").Body.String())
}

type site struct {
	index index `route:"/{$} Home"`
	about about `route:"/about About"`
}

func (site) Layout(content templComponent) templComponent {
	return wrapped{content: content}
}

type index struct{}

func (index) Page() templComponent { return static("index") }

type about struct{}

func (about) Page() templComponent { return static("about") }

func TestMountOnChi(t *testing.T) {
	r := New(chi.NewRouter())
	root, err := routedom.New().Mount(r, site{}, "/base", "Site")
	if !assert.NoError(t, err) {
		return
	}
	assert.Len(t, root.Children, 2)

	assert.Equal(t, "<main>index</main>", do(r, http.MethodGet, "/base/").Body.String())
	assert.Equal(t, "<main>about</main>", do(r, http.MethodGet, "/base/about").Body.String())
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/base/missing").Code)
}
