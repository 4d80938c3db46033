// Package sections holds the components of the site as templ.ComponentFunc values:
// the document shell, the layout with its navigation, and one per page section.
package sections

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Section names carried in data-section.
const (
	HeroName     = "hero"
	FeatureName  = "feature"
	BlogName     = "blog"
	TeamName     = "team"
	AboutName    = "about"
	NotFoundName = "not-found"
)

// Names lists the five page sections in route table order.
var Names = []string{HeroName, FeatureName, BlogName, TeamName, AboutName}

// HeroProps links the call to action to the feature page.
type HeroProps struct {
	Title      string
	FeatureURL string
}

func Hero(props HeroProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(HeroName, props.Title)
		hw.raw(`<p class="lead">Five pages, one layout, every one of them a real URL.</p>`)
		if props.FeatureURL != "" {
			hw.raw(`<a class="button"`)
			hw.href(props.FeatureURL)
			hw.raw(`>See the features</a>`)
		}
		hw.raw("</section>")
		return hw.err
	})
}

func Feature(features []FeatureItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(FeatureName, "Features")
		hw.raw(`<ul class="grid">`)
		for _, f := range features {
			hw.raw("<li><h2>")
			hw.text(f.Title)
			hw.raw("</h2><p>")
			hw.text(f.Body)
			hw.raw("</p></li>")
		}
		hw.raw("</ul></section>")
		return hw.err
	})
}

func Blog(posts []Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(BlogName, "Blog")
		if len(posts) == 0 {
			hw.raw(`<p class="empty">Nothing published yet.</p>`)
		}
		for _, p := range posts {
			hw.raw("<article><h2>")
			hw.text(p.Title)
			hw.raw("</h2><time")
			hw.attr("datetime", p.Date)
			hw.raw(">")
			hw.text(p.Date)
			hw.raw("</time><p>")
			hw.text(p.Summary)
			hw.raw("</p></article>")
		}
		hw.raw("</section>")
		return hw.err
	})
}

func Team(members []Member) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(TeamName, "Team")
		hw.raw(`<ul class="cards">`)
		for _, m := range members {
			hw.raw(`<li class="card"><strong>`)
			hw.text(m.Name)
			hw.raw("</strong><span>")
			hw.text(m.Role)
			hw.raw("</span></li>")
		}
		hw.raw("</ul></section>")
		return hw.err
	})
}

func About(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(AboutName, "About")
		hw.raw("<p>")
		hw.text(title)
		hw.raw(" is a small site with a hero, a feature list, a blog, a team page and this one.</p>")
		hw.raw("<p>Pages are declared once in a route table and rendered inside a shared layout.</p>")
		hw.raw("</section>")
		return hw.err
	})
}

// NotFound is shown in the outlet for paths under the base that match no page.
func NotFound(path, homeURL string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.section(NotFoundName, "Page not found")
		hw.raw("<p>Nothing lives at <code>")
		hw.text(path)
		hw.raw("</code>.</p><a")
		hw.href(homeURL)
		hw.raw(">Back home</a></section>")
		return hw.err
	})
}
