package routedom

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

type parseContext struct {
	root *PageNode
	args argRegistry
}

func parsePageTree(route string, page any, args ...any) (*parseContext, error) {
	if page == nil {
		return nil, errors.New("page is nil")
	}
	pc := &parseContext{args: make(argRegistry)}
	for _, v := range args {
		if err := pc.args.addArg(v); err != nil {
			return nil, fmt.Errorf("error adding argument to registry: %w", err)
		}
	}
	pv := reflect.ValueOf(page)
	if pv.Kind() != reflect.Ptr {
		// methods with pointer receivers need an addressable value
		cp := reflect.New(pv.Type())
		cp.Elem().Set(pv)
		pv = cp
	}
	root, err := pc.parsePageTree(route, "", pv)
	if err != nil {
		return nil, err
	}
	pc.root = root
	return pc, nil
}

func (p *parseContext) parsePageTree(route, fieldName string, pv reflect.Value) (*PageNode, error) {
	pt := pv.Type()
	st := pt.Elem()
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("page %s must be a struct, got %s", cmp.Or(fieldName, st.String()), st.Kind())
	}
	item := &PageNode{Value: pv, Name: cmp.Or(fieldName, st.Name())}
	item.Method, item.Route, item.Title = parseTag(route)

	for i := range st.NumField() {
		field := st.Field(i)
		route, ok := field.Tag.Lookup("route")
		if !ok {
			continue
		}
		typ := field.Type
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		child, err := p.parsePageTree(route, field.Name, reflect.New(typ))
		if err != nil {
			return nil, err
		}
		child.Parent = item
		item.Children = append(item.Children, child)
	}

	// value receiver methods show up as generated wrappers on the pointer type,
	// so each method is seen exactly once across the two method sets
	for _, t := range []reflect.Type{st, pt} {
		for i := range t.NumMethod() {
			method := t.Method(i)
			if isPromotedMethod(&method) {
				continue
			}
			if err := p.addMethod(item, method); err != nil {
				return nil, err
			}
		}
	}

	return item, nil
}

func (p *parseContext) addMethod(item *PageNode, method reflect.Method) error {
	switch method.Name {
	case "Layout":
		if !isComponent(&method) {
			return fmt.Errorf("layout method %s must return a single component", formatMethod(&method))
		}
		item.Layout = &method
	case "PageConfig":
		item.Config = &method
	case "Middlewares":
		item.Middlewares = &method
	case "Init":
		res, err := p.callMethod(item, &method, nil)
		if err != nil {
			return fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
		}
		if _, err := extractError(res); err != nil {
			return fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
		}
	default:
		if isComponent(&method) {
			if item.Components == nil {
				item.Components = make(map[string]reflect.Method)
			}
			item.Components[method.Name] = method
		}
	}
	return nil
}

var (
	pageNodeType = reflect.TypeOf((*PageNode)(nil))
	requestType  = reflect.TypeOf((*http.Request)(nil))
	contextType  = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// callMethod calls method on the node's value. Arguments not supplied in args are
// injected by type: the node itself, the request and its context when r is not nil,
// then whatever was registered with Mount.
func (p *parseContext) callMethod(pn *PageNode, method *reflect.Method, r *http.Request,
	args ...reflect.Value) ([]reflect.Value, error) {
	v := pn.Value
	if method.Type.In(0).Kind() != reflect.Ptr {
		v = v.Elem()
	}
	in := make([]reflect.Value, method.Type.NumIn())
	in[0] = v
	filled := 1
	for i := range min(len(in)-1, len(args)) {
		in[i+1] = args[i]
		filled++
	}
	for i := filled; i < len(in); i++ {
		argType := method.Type.In(i)
		switch {
		case argType == pageNodeType:
			in[i] = reflect.ValueOf(pn)
		case argType == pageNodeType.Elem():
			in[i] = reflect.ValueOf(pn).Elem()
		case argType == requestType && r != nil:
			in[i] = reflect.ValueOf(r)
		case argType == contextType && r != nil:
			in[i] = reflect.ValueOf(r.Context())
		default:
			val, ok := p.args.getArg(argType)
			if !ok {
				return nil, fmt.Errorf("method %s requires argument of type %s, but not found",
					formatMethod(method), argType.String())
			}
			in[i] = val
		}
	}
	return method.Func.Call(in), nil
}

func (p *parseContext) callComponentMethod(pn *PageNode, method *reflect.Method, r *http.Request,
	args ...reflect.Value) (component, error) {
	results, err := p.callMethod(pn, method, r, args...)
	if err != nil {
		return nil, fmt.Errorf("error calling component method %s: %w", formatMethod(method), err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("method %s must return a single result, got %d", formatMethod(method), len(results))
	}
	comp, ok := results[0].Interface().(component)
	if !ok || comp == nil {
		return nil, fmt.Errorf("method %s returned a nil component", formatMethod(method))
	}
	return comp, nil
}

func (p *parseContext) urlFor(v any) (string, error) {
	if f, ok := v.(func(*PageNode) bool); ok {
		for node := range p.root.All() {
			if f(node) {
				return node.FullRoute(), nil
			}
		}
		return "", errors.New("urlfor: no page node matched predicate")
	}
	ptv := pointerType(reflect.TypeOf(v))
	for node := range p.root.All() {
		if node.Value.Type() == ptv {
			return node.FullRoute(), nil
		}
	}
	return "", fmt.Errorf("urlfor: no page node found for %s", ptv.String())
}

func pointerType(v reflect.Type) reflect.Type {
	if v.Kind() == reflect.Ptr {
		return v
	}
	return reflect.PointerTo(v)
}

// parseTag splits a route tag of the form "[METHOD] path [Title...]".
func parseTag(route string) (method, path, title string) {
	method = methodAll
	parts := strings.Fields(route)
	if len(parts) == 0 {
		path = "/"
		return
	}
	if len(parts) == 1 {
		path = parts[0]
		return
	}
	if m := strings.ToUpper(parts[0]); slices.Contains(validMethod, m) {
		method = m
		path = parts[1]
		title = strings.Join(parts[2:], " ")
	} else {
		path = parts[0]
		title = strings.Join(parts[1:], " ")
	}
	return
}

const methodAll = "ALL"

var validMethod = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
	methodAll,
}

type component interface {
	Render(context.Context, io.Writer) error
}

var componentType = reflect.TypeOf((*component)(nil)).Elem()

func isComponent(t *reflect.Method) bool {
	if t.Type.NumOut() != 1 {
		return false
	}
	return t.Type.Out(0).Implements(componentType)
}

func isPromotedMethod(method *reflect.Method) bool {
	// promoted methods are compiler generated wrappers
	// https://github.com/golang/go/issues/73883
	wPC := method.Func.Pointer()
	wFunc := runtime.FuncForPC(wPC)
	wFile, wLine := wFunc.FileLine(wPC)
	return wFile == "<autogenerated>" && wLine == 1
}
