// Package routedom maps a tree of page structs onto HTTP routes.
//
// Each struct field tagged with `route:"[METHOD] path [Title]"` becomes a child page
// mounted below its parent. Pages render through component methods returning a value
// with Render(context.Context, io.Writer) error, which is what templ components
// satisfy. A parent's Layout(content) method wraps the full-page render of every
// descendant, so a root page can hold the document shell and navigation while its
// children fill the outlet. htmx requests get the bare component instead.
package routedom
