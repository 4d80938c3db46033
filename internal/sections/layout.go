package sections

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NavItem is one navigation link.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// OutletID is the element the matched section renders into and the
// HX-Target of navigation links.
const OutletID = "outlet"

// Layout renders the navigation and the outlet holding content.
func Layout(title string, nav []NavItem, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<header class="site-header"><span class="brand">`)
		hw.text(title)
		hw.raw("</span>")
		hw.render(Nav(nav))
		hw.raw(`</header><main`)
		hw.attr("id", OutletID)
		hw.raw(">")
		hw.render(content)
		hw.raw(`</main><footer class="site-footer">`)
		hw.text(title)
		hw.raw("</footer>")
		return hw.err
	})
}

// Nav links every page. Links load the page normally and, with htmx present,
// swap only the outlet and push the URL.
func Nav(items []NavItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw("<nav><ul>")
		for _, item := range items {
			hw.raw("<li><a")
			hw.href(item.URL)
			hw.attr("hx-get", item.URL)
			hw.attr("hx-target", "#"+OutletID)
			hw.attr("hx-push-url", "true")
			if item.Active {
				hw.attr("aria-current", "page")
			}
			hw.raw(">")
			hw.text(item.Label)
			hw.raw("</a></li>")
		}
		hw.raw("</ul></nav>")
		return hw.err
	})
}

// DocumentProps configures the HTML shell.
type DocumentProps struct {
	Title         string
	StylesheetURL string
	// MountID is the id of the element the application tree is mounted into.
	MountID string
}

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Document renders the page shell and mounts body into the MountID element.
func Document(props DocumentProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw("<title>")
		hw.text(props.Title)
		hw.raw("</title>")
		if props.StylesheetURL != "" {
			hw.raw(`<link rel="stylesheet"`)
			hw.href(props.StylesheetURL)
			hw.raw(">")
		}
		hw.raw("<script defer")
		hw.attr("src", htmxScript)
		hw.raw("></script></head><body><div")
		hw.attr("id", props.MountID)
		hw.raw(">")
		hw.render(body)
		hw.raw("</div></body></html>")
		return hw.err
	})
}
