package routedom

import (
	"fmt"
	"iter"
	"maps"
	"path"
	"reflect"
	"slices"
	"strings"
)

// PageNode is one page in a parsed route tree.
type PageNode struct {
	Name        string
	Title       string
	Method      string
	Route       string
	Value       reflect.Value
	Components  map[string]reflect.Method
	Layout      *reflect.Method
	Config      *reflect.Method
	Middlewares *reflect.Method
	Parent      *PageNode
	Children    []*PageNode
}

// FullRoute joins the routes of all ancestors with the node's own route.
func (pn *PageNode) FullRoute() string {
	if pn.Parent == nil {
		return pn.Route
	}
	return path.Join(pn.Parent.FullRoute(), pn.Route)
}

// Path is FullRoute without the {$} end anchor, for pages without path parameters.
func (pn *PageNode) Path() string {
	return strings.Replace(pn.FullRoute(), "{$}", "", 1)
}

// All iterates the node and its descendants depth first, parents before children.
func (pn *PageNode) All() iter.Seq[*PageNode] {
	return func(yield func(*PageNode) bool) {
		walk(pn, yield)
	}
}

// Ancestors iterates from the parent up to the root.
func (pn *PageNode) Ancestors() iter.Seq[*PageNode] {
	return func(yield func(*PageNode) bool) {
		for p := pn.Parent; p != nil; p = p.Parent {
			if !yield(p) {
				return
			}
		}
	}
}

func walk(pn *PageNode, yield func(*PageNode) bool) bool {
	if !yield(pn) {
		return false
	}
	for _, child := range pn.Children {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

func (pn PageNode) String() string {
	var sb strings.Builder
	sb.WriteString("PageNode{")
	sb.WriteString("\n  name: " + pn.Name)
	sb.WriteString("\n  title: " + pn.Title)
	sb.WriteString("\n  method: " + pn.Method)
	sb.WriteString("\n  route: " + pn.Route)
	sb.WriteString("\n  layout: " + formatMethod(pn.Layout))
	sb.WriteString("\n  config: " + formatMethod(pn.Config))
	sb.WriteString("\n  middlewares: " + formatMethod(pn.Middlewares))
	if pn.Value.IsValid() && pn.Value.Type().Implements(handlerType) {
		sb.WriteString("\n  is http.Handler: true")
	}
	if len(pn.Components) == 0 {
		sb.WriteString("\n  components: []")
	}
	for _, name := range slices.Sorted(maps.Keys(pn.Components)) {
		comp := pn.Components[name]
		sb.WriteString("\n  component: " + name + " -> " + formatMethod(&comp))
	}
	for i, child := range pn.Children {
		fmt.Fprintf(&sb, "\n  child %d:", i+1)
		childStr := strings.TrimRight(child.String(), "\n")
		for _, line := range strings.SplitAfter(childStr, "\n") {
			sb.WriteString("  " + line)
		}
	}
	sb.WriteString("\n}")
	return sb.String()
}

func formatMethod(method *reflect.Method) string {
	if method == nil || method.Func == (reflect.Value{}) {
		return "<nil>"
	}
	return fmt.Sprintf("%s.%s", method.Type.In(0).String(), method.Name)
}
