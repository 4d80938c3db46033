package sections

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components read top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

func (hw *htmlWriter) href(url string) {
	hw.attr("href", string(templ.URL(url)))
}

func (hw *htmlWriter) render(c templ.Component) {
	if hw.err == nil && c != nil {
		hw.err = c.Render(hw.ctx, hw.w)
	}
}

// section opens the root element shared by every page section. name is what
// data-section carries, it identifies the section in the rendered document.
func (hw *htmlWriter) section(name, heading string) {
	hw.raw(`<section class="section section-` + name + `"`)
	hw.attr("data-section", name)
	hw.raw("><h1>")
	hw.text(heading)
	hw.raw("</h1>")
}
