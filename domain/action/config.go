package action

import (
	"context"

	"github.com/artpar/actionkit/domain/page"
	"github.com/artpar/actionkit/domain/params"
	"github.com/artpar/actionkit/domain/result"
)

// Service is the user-supplied unit of work behind an action. It receives
// the projected parameter subset (merged with the path identifier under
// "id") and returns any value convertible by result.Normalize, or an
// error for the failure path.
type Service interface {
	Call(ctx context.Context, p map[string]any) (any, error)
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context, p map[string]any) (any, error)

// Call invokes the function.
func (f ServiceFunc) Call(ctx context.Context, p map[string]any) (any, error) {
	return f(ctx, p)
}

// Page resolves a page configuration from a normalized result.
type Page interface {
	Config(ctx context.Context, res result.Result) page.Config
}

// PageFunc adapts a function to the Page interface.
type PageFunc func(ctx context.Context, res result.Result) page.Config

// Config invokes the function.
func (f PageFunc) Config(ctx context.Context, res result.Result) page.Config {
	return f(ctx, res)
}

// BeforeHook runs before service invocation with mutation rights over the
// execution scope.
type BeforeHook func(ctx context.Context, ex *Execution)

// AfterHook runs after normalization, receiving the normalized result.
type AfterHook func(ctx context.Context, ex *Execution, res result.Result)

// Execution is the per-request transient state threaded through hooks,
// the service call, and response dispatch. It is created at the start of
// an execution and discarded once the response is written.
type Execution struct {
	Action string
	Format Format

	// Payload is the raw inbound parameter map; Params is the projected
	// subset handed to the service.
	Payload map[string]any
	Params  map[string]any

	// ID is the path identifier, empty when the route carries none.
	ID string

	// Actor is the authenticated principal, if any.
	Actor any

	// Values is scratch space for hooks.
	Values map[string]any

	Raw      any
	Result   result.Result
	Err      error
	Category Category

	Page    page.Config
	HasPage bool

	Succeeded bool
}

// Config is the immutable declarative configuration of one action.
// Instances are produced by Builder.Build and owned by a Registry; they
// must not be mutated afterwards.
type Config struct {
	Name string

	Service      Service
	ParamsKey    string
	Permit       params.Filter
	Page         Page
	PageModifier page.Modifier
	Component    page.Component
	Frame        string

	Before []BeforeHook
	After  []AfterHook

	Success HandlerSet
	Errors  map[Category]HandlerSet

	SkipAuthentication bool
	SkipAuthorization  bool
}

// ErrorHandlers returns the handler set for the category, falling back to
// CategoryAny, falling back to an empty set.
func (c Config) ErrorHandlers(cat Category) HandlerSet {
	if hs, ok := c.Errors[cat]; ok {
		return hs
	}
	if hs, ok := c.Errors[CategoryAny]; ok {
		return hs
	}
	return HandlerSet{}
}
