// Package page provides page/component configuration value types.
// A page config is a keyed bag of named section configurations plus
// metadata, handed to the view-rendering layer.
package page

import "context"

// Component renders itself to HTML markup.
type Component interface {
	Render(ctx context.Context) (string, error)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(ctx context.Context) (string, error)

// Render invokes the function.
func (f ComponentFunc) Render(ctx context.Context) (string, error) {
	return f(ctx)
}

// Section configures one named region of a page. Exactly one content
// source should be set: a component, a partial template, or raw markup.
type Section struct {
	Component Component
	Partial   string
	Markup    string
	Locals    map[string]any
}

// Config is an immutable-by-convention page configuration.
type Config struct {
	Title    string
	Layout   string
	Meta     map[string]any
	Sections map[string]Section
}

// Modifier transforms a page config, returning the modified value.
type Modifier func(Config) Config

// New creates a page config with the given title.
func New(title string) Config {
	return Config{Title: title}
}

// WithSection returns a copy of the config with the named section set.
func (c Config) WithSection(name string, s Section) Config {
	out := c.clone()
	out.Sections[name] = s
	return out
}

// WithMeta returns a copy of the config with the metadata entry set.
func (c Config) WithMeta(key string, value any) Config {
	out := c.clone()
	out.Meta[key] = value
	return out
}

// SectionNames returns the configured section names (unordered).
func (c Config) SectionNames() []string {
	names := make([]string, 0, len(c.Sections))
	for name := range c.Sections {
		names = append(names, name)
	}
	return names
}

func (c Config) clone() Config {
	out := Config{Title: c.Title, Layout: c.Layout}
	out.Meta = make(map[string]any, len(c.Meta)+1)
	for k, v := range c.Meta {
		out.Meta[k] = v
	}
	out.Sections = make(map[string]Section, len(c.Sections)+1)
	for k, v := range c.Sections {
		out.Sections[k] = v
	}
	return out
}
