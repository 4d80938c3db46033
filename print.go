package routedom

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// PrintRoutes parses page mounted at route and lists every routable node as
// method, full route and title, one per line.
func PrintRoutes(route string, page any) (string, error) {
	pc, err := parsePageTree(route, page)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for node := range pc.root.All() {
		if len(node.Components) == 0 && !node.Value.Type().Implements(handlerType) &&
			!node.Value.Type().Implements(errHandlerType) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", node.Method, node.FullRoute(), node.Title)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
