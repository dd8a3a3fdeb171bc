package stream

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// ContentType is the Turbo Stream media type.
const ContentType = "text/vnd.turbo-stream.html"

// ContentRenderer resolves a partial template to markup. The web layer
// provides a template-backed implementation.
type ContentRenderer interface {
	RenderPartial(name string, locals map[string]any) (string, error)
}

// Render encodes ops into the Turbo Stream wire format:
//
//	<turbo-stream action="append" target="tasks"><template>...</template></turbo-stream>
//
// Partial content is resolved through the renderer; raw markup is emitted
// verbatim. Ops are emitted in list order.
func Render(ctx context.Context, ops []Op, renderer ContentRenderer) (string, error) {
	var out strings.Builder
	for _, op := range ops {
		if err := renderOp(ctx, &out, op, renderer); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

func renderOp(ctx context.Context, out *strings.Builder, op Op, renderer ContentRenderer) error {
	if op.Action == ActionRefresh {
		out.WriteString(`<turbo-stream action="refresh"></turbo-stream>`)
		return nil
	}

	fmt.Fprintf(out, `<turbo-stream action=%q target=%q>`, string(op.Action), html.EscapeString(op.Target))
	if op.Action != ActionRemove {
		markup, err := resolveContent(ctx, op, renderer)
		if err != nil {
			return err
		}
		out.WriteString("<template>")
		out.WriteString(markup)
		out.WriteString("</template>")
	}
	out.WriteString("</turbo-stream>")
	return nil
}

func resolveContent(ctx context.Context, op Op, renderer ContentRenderer) (string, error) {
	c := op.Content
	switch {
	case c.Partial != "":
		if renderer == nil {
			return "", fmt.Errorf("stream op %s %q: no renderer for partial %q", op.Action, op.Target, c.Partial)
		}
		markup, err := renderer.RenderPartial(c.Partial, c.Locals)
		if err != nil {
			return "", fmt.Errorf("render partial %q: %w", c.Partial, err)
		}
		return markup, nil
	case c.Component != nil:
		markup, err := c.Component.Render(ctx)
		if err != nil {
			return "", fmt.Errorf("render component for target %q: %w", op.Target, err)
		}
		return markup, nil
	default:
		return c.Markup, nil
	}
}
