package routedom

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/angelofallars/htmx-go"
)

// MiddlewareFunc wraps the handler of a single page node.
type MiddlewareFunc = func(http.Handler, *PageNode) http.Handler

// App mounts page trees onto a Router.
type App struct {
	onError     func(http.ResponseWriter, *http.Request, error)
	middlewares []MiddlewareFunc
	pageConfig  func(*http.Request) (string, error)
	logger      *slog.Logger
}

// Option configures an App.
type Option func(*App)

// New creates an App. Without options, every page renders its Page component,
// errors answer 500 and are logged with slog.Default.
func New(options ...Option) *App {
	app := &App{
		logger:     slog.Default(),
		pageConfig: defaultPageConfig,
	}
	for _, opt := range options {
		opt(app)
	}
	if app.onError == nil {
		app.onError = app.defaultErrorHandler
	}
	return app
}

// WithErrorHandler sets the handler for errors raised while serving a page.
func WithErrorHandler(onError func(http.ResponseWriter, *http.Request, error)) Option {
	return func(a *App) {
		a.onError = onError
	}
}

// WithMiddlewares adds middlewares applied to every page. The first one is the outermost.
func WithMiddlewares(middlewares ...MiddlewareFunc) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, middlewares...)
	}
}

// WithDefaultPageConfig sets the component selector for pages without a PageConfig method.
func WithDefaultPageConfig(config func(*http.Request) (string, error)) Option {
	return func(a *App) {
		a.pageConfig = config
	}
}

// WithLogger sets the logger used for mount diagnostics and the default error handler.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func defaultPageConfig(*http.Request) (string, error) {
	return "Page", nil
}

func (a *App) defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.ErrorContext(r.Context(), "serve page failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Mount parses the route tree of page and registers a handler for every page in it.
// route is the route of page itself, title overrides its title when not empty.
// args are made available to page methods by type.
func (a *App) Mount(router Router, page any, route, title string, args ...any) (*PageNode, error) {
	pc, err := parsePageTree(route, page, args...)
	if err != nil {
		return nil, err
	}
	if title != "" {
		pc.root.Title = title
	}
	if err := a.registerPageItem(router, pc, pc.root, nil); err != nil {
		return nil, err
	}
	return pc.root, nil
}

func (a *App) registerPageItem(router Router, pc *parseContext, page *PageNode, inherited []MiddlewareFunc) error {
	if page.Route == "" {
		return fmt.Errorf("page item route is empty: %s", page.Name)
	}
	middlewares := inherited
	if page.Middlewares != nil {
		own, err := a.pageMiddlewares(pc, page)
		if err != nil {
			return err
		}
		middlewares = append(append([]MiddlewareFunc(nil), inherited...), own...)
	}
	for _, child := range page.Children {
		if err := a.registerPageItem(router, pc, child, middlewares); err != nil {
			return err
		}
	}

	handler, err := a.buildHandler(page, pc)
	if err != nil {
		return err
	}
	if handler == nil {
		if len(page.Children) == 0 {
			return fmt.Errorf("page item %s does not have a valid handler or children", page.Name)
		}
		return nil
	}
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler, page)
	}
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		handler = a.middlewares[i](handler, page)
	}
	handler = withPageContext(pc, page, handler)

	a.logger.Debug("mount page",
		slog.String("name", page.Name),
		slog.String("method", page.Method),
		slog.String("route", page.FullRoute()))
	router.HandleMethod(page.Method, page.FullRoute(), handler)
	return nil
}

func (a *App) pageMiddlewares(pc *parseContext, page *PageNode) ([]MiddlewareFunc, error) {
	res, err := pc.callMethod(page, page.Middlewares, nil)
	if err != nil {
		return nil, fmt.Errorf("error calling Middlewares method on %s: %w", page.Name, err)
	}
	res, err = extractError(res)
	if err != nil {
		return nil, fmt.Errorf("error calling Middlewares method on %s: %w", page.Name, err)
	}
	if len(res) != 1 {
		return nil, fmt.Errorf("middlewares method on %s did not return single result", page.Name)
	}
	middlewares, ok := res[0].Interface().([]MiddlewareFunc)
	if !ok {
		return nil, fmt.Errorf("middlewares method on %s did not return []func(http.Handler, *PageNode) http.Handler",
			page.Name)
	}
	return middlewares, nil
}

func (a *App) buildHandler(page *PageNode, pc *parseContext) (http.Handler, error) {
	if h := a.getHTTPHandler(page.Value); h != nil {
		return h, nil
	}
	if len(page.Components) == 0 {
		return nil, nil
	}
	if _, ok := page.Components["Page"]; !ok {
		return nil, fmt.Errorf("page item %s does not have a Page component", page.Name)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, err := a.selectComponent(pc, page, r)
		if err != nil {
			a.onError(w, r, err)
			return
		}
		comp, err := pc.callComponentMethod(page, method, r)
		if err != nil {
			a.onError(w, r, err)
			return
		}
		if !isPartial(r) {
			comp, err = wrapLayouts(pc, page, comp, r)
			if err != nil {
				a.onError(w, r, err)
				return
			}
		}
		w.Header().Add("Vary", "HX-Request")
		a.render(w, r, comp)
	}), nil
}

// selectComponent picks the component method for the request. A name chosen by the
// page's own PageConfig must exist; one chosen by the app-wide config falls back to Page.
func (a *App) selectComponent(pc *parseContext, page *PageNode, r *http.Request) (*reflect.Method, error) {
	if page.Config != nil {
		res, err := pc.callMethod(page, page.Config, r)
		if err != nil {
			return nil, fmt.Errorf("error calling PageConfig method on %s: %w", page.Name, err)
		}
		res, err = extractError(res)
		if err != nil {
			return nil, fmt.Errorf("error calling PageConfig method on %s: %w", page.Name, err)
		}
		if len(res) != 1 || res[0].Kind() != reflect.String {
			return nil, fmt.Errorf("PageConfig method on %s must return a component name", page.Name)
		}
		name := res[0].String()
		method, ok := page.Components[name]
		if !ok {
			return nil, fmt.Errorf("component %s not found on %s", name, page.Name)
		}
		return &method, nil
	}
	name, err := a.pageConfig(r)
	if err != nil {
		return nil, fmt.Errorf("error selecting component on %s: %w", page.Name, err)
	}
	method, ok := page.Components[name]
	if !ok {
		method = page.Components["Page"]
	}
	return &method, nil
}

// wrapLayouts renders comp inside the Layout of every ancestor, nearest first,
// so the root layout ends up outermost. A page's own Layout only wraps its descendants.
func wrapLayouts(pc *parseContext, page *PageNode, comp component, r *http.Request) (component, error) {
	for node := range page.Ancestors() {
		if node.Layout == nil {
			continue
		}
		wrapped, err := pc.callComponentMethod(node, node.Layout, r, reflect.ValueOf(comp))
		if err != nil {
			return nil, fmt.Errorf("error calling Layout method on %s: %w", node.Name, err)
		}
		comp = wrapped
	}
	return comp, nil
}

func (a *App) render(w http.ResponseWriter, r *http.Request, comp component) {
	buf := getBuffer()
	defer releaseBuffer(buf)
	if err := comp.Render(r.Context(), buf); err != nil {
		a.onError(w, r, err)
		return
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	_, _ = w.Write(buf.Bytes())
}

// isPartial reports whether the request asks for a fragment rather than a document.
// Boosted requests swap the whole body and get the full page.
func isPartial(r *http.Request) bool {
	return htmx.IsHTMX(r) && !htmx.IsBoosted(r)
}

type httpErrHandler interface {
	ServeHTTP(http.ResponseWriter, *http.Request) error
}

var (
	errorType      = reflect.TypeOf((*error)(nil)).Elem()
	handlerType    = reflect.TypeOf((*http.Handler)(nil)).Elem()
	errHandlerType = reflect.TypeOf((*httpErrHandler)(nil)).Elem()
)

// extractError strips a trailing error result from a method call.
func extractError(res []reflect.Value) ([]reflect.Value, error) {
	if len(res) == 0 || !res[len(res)-1].Type().AssignableTo(errorType) {
		return res, nil
	}
	last := res[len(res)-1]
	res = res[:len(res)-1]
	if last.IsNil() {
		return res, nil
	}
	err, ok := last.Interface().(error)
	if !ok {
		return res, errors.New("unexpected error value")
	}
	return res, err
}

func (a *App) getHTTPHandler(v reflect.Value) http.Handler {
	method, ok := v.Type().MethodByName("ServeHTTP")
	if !ok || isPromotedMethod(&method) {
		if method, ok = v.Type().Elem().MethodByName("ServeHTTP"); !ok || isPromotedMethod(&method) {
			return nil
		}
	}
	switch h := v.Interface().(type) {
	case http.Handler:
		return h
	case httpErrHandler:
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := h.ServeHTTP(w, r); err != nil {
				a.onError(w, r, err)
			}
		})
	}
	return nil
}
