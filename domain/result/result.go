// Package result defines the structural contract for service outcomes.
// A service may return any value; Normalize adapts it into the canonical
// Result shape via a fixed set of capability interfaces, with no reliance
// on reflection beyond interface assertions.
package result

import "github.com/artpar/actionkit/domain/page"

// Capability interfaces. A service return value may implement any subset;
// Normalize extracts whatever is present.
type (
	// SuccessFlagger exposes an explicit success flag.
	SuccessFlagger interface {
		Succeeded() bool
	}

	// ResourceCarrier exposes the primary resource of the outcome.
	ResourceCarrier interface {
		Resource() any
	}

	// CollectionCarrier exposes a collection outcome.
	CollectionCarrier interface {
		Collection() []any
	}

	// ErrorCarrier exposes field-level validation errors.
	ErrorCarrier interface {
		ValidationErrors() map[string][]string
	}

	// MessageCarrier exposes a human-readable outcome message.
	MessageCarrier interface {
		Message() string
	}

	// MetaCarrier exposes response metadata.
	MetaCarrier interface {
		Meta() map[string]any
	}

	// PageCarrier exposes a page config embedded in the outcome.
	PageCarrier interface {
		PageConfig() page.Config
	}
)

// Result is the canonical, normalized outcome of a service invocation.
type Result struct {
	Resource   any
	Collection []any
	Errors     map[string][]string
	Message    string
	Meta       map[string]any

	Page    page.Config
	HasPage bool

	// Success holds the explicit flag; Flagged records whether the
	// service set one at all. An unflagged result is treated as
	// successful (see Succeeded).
	Success bool
	Flagged bool
}

// Succeeded reports the outcome. When no explicit flag was set, the result
// counts as successful; absence of an error implies success. This
// permissive default is deliberate and covered by tests.
func (r Result) Succeeded() bool {
	if r.Flagged {
		return r.Success
	}
	return true
}

// Failed is the negation of Succeeded.
func (r Result) Failed() bool {
	return !r.Succeeded()
}

// Ok builds a flagged successful result carrying a resource.
func Ok(resource any) Result {
	return Result{Resource: resource, Success: true, Flagged: true}
}

// OkCollection builds a flagged successful result carrying a collection.
func OkCollection(items []any) Result {
	return Result{Collection: items, Success: true, Flagged: true}
}

// Fail builds a flagged failed result carrying field errors and a message.
func Fail(errs map[string][]string, message string) Result {
	return Result{Errors: errs, Message: message, Flagged: true}
}

// WithMessage returns a copy of the result with the message set.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithMeta returns a copy of the result with a metadata entry set.
func (r Result) WithMeta(key string, value any) Result {
	meta := make(map[string]any, len(r.Meta)+1)
	for k, v := range r.Meta {
		meta[k] = v
	}
	meta[key] = value
	r.Meta = meta
	return r
}

// WithPage returns a copy of the result carrying an embedded page config.
func (r Result) WithPage(p page.Config) Result {
	r.Page = p
	r.HasPage = true
	return r
}
