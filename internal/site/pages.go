package site

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/jackielii/routedom"
	"github.com/jackielii/routedom/internal/config"
	"github.com/jackielii/routedom/internal/sections"
)

// pages is the route table. It is mounted at the base path and renders every
// child inside its Layout.
type pages struct {
	hero    hero    `route:"/{$} Home"`        //lint:ignore U1000 Used for structtag routing
	feature feature `route:"/feature Feature"` //lint:ignore U1000 Used for structtag routing
	blog    blog    `route:"/blog Blog"`       //lint:ignore U1000 Used for structtag routing
	team    team    `route:"/team Team"`       //lint:ignore U1000 Used for structtag routing
	about   about   `route:"/about About"`     //lint:ignore U1000 Used for structtag routing
}

// Layout mounts the navigation and content into the document shell.
// root is the node of pages itself, its children make up the navigation.
func (pages) Layout(content templ.Component, root *routedom.PageNode, r *http.Request,
	cfg *config.Config) templ.Component {
	current := routedom.CurrentPage(r.Context())
	nav := make([]sections.NavItem, 0, len(root.Children))
	title := cfg.Title
	for _, child := range root.Children {
		active := child == current
		nav = append(nav, sections.NavItem{
			Label:  child.Title,
			URL:    child.Path(),
			Active: active,
		})
		if active {
			title = child.Title + " | " + cfg.Title
		}
	}
	return sections.Document(sections.DocumentProps{
		Title:         title,
		StylesheetURL: cfg.BasePath + "/assets/index.css",
		MountID:       cfg.MountID,
	}, sections.Layout(cfg.Title, nav, content))
}

type hero struct{}

func (hero) Page(r *http.Request, cfg *config.Config) templ.Component {
	featureURL, err := routedom.URLFor(r.Context(), feature{})
	if err != nil {
		featureURL = ""
	}
	return sections.Hero(sections.HeroProps{Title: cfg.Title, FeatureURL: featureURL})
}

type feature struct{}

func (feature) Page() templ.Component {
	return sections.Feature(sections.Features)
}

type blog struct{}

func (blog) Page() templ.Component {
	return sections.Blog(sections.Posts)
}

type team struct{}

func (team) Page() templ.Component {
	return sections.Team(sections.Members)
}

type about struct{}

func (about) Page(cfg *config.Config) templ.Component {
	return sections.About(cfg.Title)
}
