package routedom

import (
	"context"
	"errors"
	"io"
)

type testComponent struct {
	content string
}

func (t testComponent) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, t.content)
	return err
}

type errorComponent struct{}

func (errorComponent) Render(ctx context.Context, w io.Writer) error {
	_, _ = io.WriteString(w, "half a page")
	return errors.New("render error")
}

// wrapComponent renders content between before and after.
type wrapComponent struct {
	before, after string
	content       component
}

func (c wrapComponent) Render(ctx context.Context, w io.Writer) error {
	if _, err := io.WriteString(w, c.before); err != nil {
		return err
	}
	if err := c.content.Render(ctx, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, c.after)
	return err
}
