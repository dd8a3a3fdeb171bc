package stream

// Builder accumulates stream ops in registration order, which is the wire
// emission order.
type Builder struct {
	ops []Op
}

// NewBuilder creates an empty stream builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append registers an append op for the target.
func (b *Builder) Append(target string, content Content) *Builder {
	return b.add(ActionAppend, target, content)
}

// Prepend registers a prepend op for the target.
func (b *Builder) Prepend(target string, content Content) *Builder {
	return b.add(ActionPrepend, target, content)
}

// Replace registers a replace op for the target.
func (b *Builder) Replace(target string, content Content) *Builder {
	return b.add(ActionReplace, target, content)
}

// Update registers an update op for the target.
func (b *Builder) Update(target string, content Content) *Builder {
	return b.add(ActionUpdate, target, content)
}

// Remove registers a remove op for the target. Remove ops carry no content.
func (b *Builder) Remove(target string) *Builder {
	return b.add(ActionRemove, target, Content{})
}

// Before registers an insert-before op for the target.
func (b *Builder) Before(target string, content Content) *Builder {
	return b.add(ActionBefore, target, content)
}

// After registers an insert-after op for the target.
func (b *Builder) After(target string, content Content) *Builder {
	return b.add(ActionAfter, target, content)
}

// Refresh registers a page refresh op. Refresh ops have no target and no
// content.
func (b *Builder) Refresh() *Builder {
	return b.add(ActionRefresh, "", Content{})
}

// Flash is sugar for an update of the conventional flash target, rendering
// the shared flash partial with type and message locals.
func (b *Builder) Flash(kind, message string) *Builder {
	return b.Update(FlashTarget, Partial("shared/flash", map[string]any{
		"type":    kind,
		"message": message,
	}))
}

// FormErrors is sugar for an update of the conventional form-errors
// target, rendering the shared form-errors partial with the field errors.
func (b *Builder) FormErrors(errs map[string][]string) *Builder {
	return b.Update(FormErrorsTarget, Partial("shared/form_errors", map[string]any{
		"errors": errs,
	}))
}

func (b *Builder) add(action ActionType, target string, content Content) *Builder {
	b.ops = append(b.ops, Op{Action: action, Target: target, Content: content})
	return b
}

// Ops returns a copy of the accumulated ops in registration order.
func (b *Builder) Ops() []Op {
	out := make([]Op, len(b.ops))
	copy(out, b.ops)
	return out
}
