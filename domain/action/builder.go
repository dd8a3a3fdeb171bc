package action

import (
	"github.com/artpar/actionkit/domain/page"
	"github.com/artpar/actionkit/domain/params"
)

// Builder assembles an action Config fluently. It is used once per action
// declaration; Build returns a defensively copied Config and may be
// called repeatedly with equal results.
//
// No validation happens at build time. A config without a service is
// legal and only fails when executed (fail-at-call-site policy).
type Builder struct {
	cfg Config
}

// New creates a builder for the named action.
func New(name string) *Builder {
	return &Builder{cfg: Config{Name: name}}
}

// Service sets the service invoked by the action.
func (b *Builder) Service(svc Service) *Builder {
	b.cfg.Service = svc
	return b
}

// ServiceFunc sets the service from a plain function.
func (b *Builder) ServiceFunc(fn ServiceFunc) *Builder {
	b.cfg.Service = fn
	return b
}

// ParamsKey sets the root key under which the action's parameters are
// nested in the inbound payload.
func (b *Builder) ParamsKey(key string) *Builder {
	b.cfg.ParamsKey = key
	return b
}

// Permit sets the parameter allow-list.
func (b *Builder) Permit(rules ...params.Rule) *Builder {
	b.cfg.Permit = params.Filter(rules)
	return b
}

// Page sets the page resolver invoked against the normalized result.
func (b *Builder) Page(p Page) *Builder {
	b.cfg.Page = p
	return b
}

// PageFunc sets the page resolver from a plain function.
func (b *Builder) PageFunc(fn PageFunc) *Builder {
	b.cfg.Page = fn
	return b
}

// PageModifier sets a modifier applied to a page config embedded in the
// service result.
func (b *Builder) PageModifier(m page.Modifier) *Builder {
	b.cfg.PageModifier = m
	return b
}

// Component sets the default component rendered for HTML responses.
func (b *Builder) Component(c page.Component) *Builder {
	b.cfg.Component = c
	return b
}

// Frame sets the turbo-frame identifier wrapping HTML renders.
func (b *Builder) Frame(id string) *Builder {
	b.cfg.Frame = id
	return b
}

// Before appends a before-hook. Hooks run in registration order.
func (b *Builder) Before(h BeforeHook) *Builder {
	b.cfg.Before = append(b.cfg.Before, h)
	return b
}

// After appends an after-hook. Hooks run in registration order.
func (b *Builder) After(h AfterHook) *Builder {
	b.cfg.After = append(b.cfg.After, h)
	return b
}

// OnSuccess configures the success handler set.
func (b *Builder) OnSuccess(fn func(*ResponseBuilder)) *Builder {
	rb := newResponseBuilder()
	fn(rb)
	b.cfg.Success = rb.set
	return b
}

// OnError configures the handler set for one error category. Registering
// the same category again overwrites the earlier set.
func (b *Builder) OnError(cat Category, fn func(*ResponseBuilder)) *Builder {
	rb := newResponseBuilder()
	fn(rb)
	if b.cfg.Errors == nil {
		b.cfg.Errors = make(map[Category]HandlerSet)
	}
	b.cfg.Errors[cat] = rb.set
	return b
}

// SkipAuthentication marks the action as reachable without authentication.
func (b *Builder) SkipAuthentication() *Builder {
	b.cfg.SkipAuthentication = true
	return b
}

// SkipAuthorization marks the action as exempt from authorization checks.
func (b *Builder) SkipAuthorization() *Builder {
	b.cfg.SkipAuthorization = true
	return b
}

// Build returns the assembled Config. The returned value owns copies of
// the builder's slices and maps, so further builder calls (or repeated
// Build calls) cannot alias each other's state.
func (b *Builder) Build() Config {
	cfg := b.cfg

	cfg.Permit = append(params.Filter(nil), b.cfg.Permit...)
	cfg.Before = append([]BeforeHook(nil), b.cfg.Before...)
	cfg.After = append([]AfterHook(nil), b.cfg.After...)
	cfg.Success = b.cfg.Success.Clone()

	if b.cfg.Errors != nil {
		cfg.Errors = make(map[Category]HandlerSet, len(b.cfg.Errors))
		for cat, hs := range b.cfg.Errors {
			cfg.Errors[cat] = hs.Clone()
		}
	}

	return cfg
}
