package chirouter

import (
	"context"
	"io"
)

type templComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

type static string

func (s static) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type wrapped struct {
	content templComponent
}

func (c wrapped) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, "<main>"); err != nil {
		return err
	}
	if err := c.content.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</main>")
	return err
}
