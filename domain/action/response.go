package action

import (
	"net/http"

	"github.com/artpar/actionkit/domain/page"
	"github.com/artpar/actionkit/domain/stream"
)

// HandlerFunc is a fully custom responder. It is invoked with the live
// response writer and the execution state.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, ex *Execution)

// RedirectFunc computes a redirect location from the execution state.
type RedirectFunc func(ex *Execution) string

// ResponderKind discriminates the Responder variants.
type ResponderKind int

const (
	KindFunc ResponderKind = iota + 1
	KindRedirect
	KindPage
	KindPartial
	KindComponent
	KindStream
)

// Responder is one registered response directive for a format.
type Responder struct {
	Kind ResponderKind

	Func      HandlerFunc
	Redirect  RedirectFunc
	Partial   string
	Locals    map[string]any
	Component page.Component
	Ops       []stream.Op
}

// HandlerSet maps output formats to registered responders for one outcome
// (success, or one error category).
type HandlerSet map[Format]Responder

// Clone returns a shallow copy of the set.
func (hs HandlerSet) Clone() HandlerSet {
	if hs == nil {
		return nil
	}
	out := make(HandlerSet, len(hs))
	for f, r := range hs {
		out[f] = r
	}
	return out
}

// ResponseBuilder assembles a HandlerSet inside an OnSuccess/OnError
// block. Format methods register a responder per format; the convenience
// directives populate the HTML slot.
type ResponseBuilder struct {
	set HandlerSet
}

func newResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{set: make(HandlerSet)}
}

// HTML registers a custom responder for the HTML format.
func (b *ResponseBuilder) HTML(fn HandlerFunc) *ResponseBuilder {
	b.set[FormatHTML] = Responder{Kind: KindFunc, Func: fn}
	return b
}

// JSON registers a custom responder for the JSON format.
func (b *ResponseBuilder) JSON(fn HandlerFunc) *ResponseBuilder {
	b.set[FormatJSON] = Responder{Kind: KindFunc, Func: fn}
	return b
}

// CSV registers a custom responder for the CSV format.
func (b *ResponseBuilder) CSV(fn HandlerFunc) *ResponseBuilder {
	b.set[FormatCSV] = Responder{Kind: KindFunc, Func: fn}
	return b
}

// XML registers a custom responder for the XML format.
func (b *ResponseBuilder) XML(fn HandlerFunc) *ResponseBuilder {
	b.set[FormatXML] = Responder{Kind: KindFunc, Func: fn}
	return b
}

// TurboStream registers an ordered list of stream ops, assembled by the
// nested builder, for the Turbo Stream format.
func (b *ResponseBuilder) TurboStream(fn func(*stream.Builder)) *ResponseBuilder {
	sb := stream.NewBuilder()
	fn(sb)
	b.set[FormatTurboStream] = Responder{Kind: KindStream, Ops: sb.Ops()}
	return b
}

// TurboStreamFunc registers a custom responder for the Turbo Stream
// format, for ops whose targets depend on the execution.
func (b *ResponseBuilder) TurboStreamFunc(fn HandlerFunc) *ResponseBuilder {
	b.set[FormatTurboStream] = Responder{Kind: KindFunc, Func: fn}
	return b
}

// RedirectTo populates the HTML slot with a fixed-location redirect.
func (b *ResponseBuilder) RedirectTo(location string) *ResponseBuilder {
	return b.RedirectToFunc(func(*Execution) string { return location })
}

// RedirectToFunc populates the HTML slot with a computed redirect.
func (b *ResponseBuilder) RedirectToFunc(fn RedirectFunc) *ResponseBuilder {
	b.set[FormatHTML] = Responder{Kind: KindRedirect, Redirect: fn}
	return b
}

// RenderPage populates the HTML slot with a render of the resolved page
// config.
func (b *ResponseBuilder) RenderPage() *ResponseBuilder {
	b.set[FormatHTML] = Responder{Kind: KindPage}
	return b
}

// RenderComponent populates the HTML slot with a component render.
func (b *ResponseBuilder) RenderComponent(c page.Component) *ResponseBuilder {
	b.set[FormatHTML] = Responder{Kind: KindComponent, Component: c}
	return b
}

// RenderPartial populates the HTML slot with a partial render.
func (b *ResponseBuilder) RenderPartial(name string, locals map[string]any) *ResponseBuilder {
	b.set[FormatHTML] = Responder{Kind: KindPartial, Partial: name, Locals: locals}
	return b
}
