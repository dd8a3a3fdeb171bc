// Package stream provides partial-page-update operations and their Turbo
// Stream wire encoding. A stream response is an ordered list of ops, each
// targeting a DOM id and carrying a content source.
package stream

import "github.com/artpar/actionkit/domain/page"

// ActionType is the kind of mutation an op applies to its target.
type ActionType string

const (
	ActionAppend  ActionType = "append"
	ActionPrepend ActionType = "prepend"
	ActionReplace ActionType = "replace"
	ActionUpdate  ActionType = "update"
	ActionRemove  ActionType = "remove"
	ActionBefore  ActionType = "before"
	ActionAfter   ActionType = "after"
	ActionRefresh ActionType = "refresh"
)

// Conventional target identifiers used by the composite helpers.
const (
	FlashTarget      = "flash"
	FormErrorsTarget = "form_errors"
)

// Content is the source of an op's markup: a partial template, a
// component, or raw markup. At most one should be set; remove and refresh
// ops carry none.
type Content struct {
	Partial   string
	Component page.Component
	Markup    string
	Locals    map[string]any
}

// Partial references a partial template with local variables.
func Partial(name string, locals map[string]any) Content {
	return Content{Partial: name, Locals: locals}
}

// Component references a renderable component.
func Component(c page.Component) Content {
	return Content{Component: c}
}

// Markup carries raw, pre-rendered markup.
func Markup(html string) Content {
	return Content{Markup: html}
}

// Op is one atomic partial-page-update instruction.
type Op struct {
	Action  ActionType
	Target  string
	Content Content
}
