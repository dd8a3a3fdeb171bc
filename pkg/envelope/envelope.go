// Package envelope provides the JSON response envelope used by the JSON
// format: {"data": <payload-or-error-wrapper>, "meta": {"version": ...}}.
// The shape is a wire contract; both keys are always present.
package envelope

// Meta represents response metadata. The "version" key is reserved for
// the API version string.
type Meta map[string]any

// Document is the top-level JSON envelope.
type Document struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorObject is the error payload carried under data.error.
type ErrorObject struct {
	Type    string              `json:"type"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ErrorWrapper wraps an ErrorObject as the data payload of a failed
// response.
type ErrorWrapper struct {
	Error ErrorObject `json:"error"`
}

// Builder provides a fluent API for building Document values.
type Builder struct {
	doc Document
}

// NewDocument creates a new Builder.
func NewDocument() *Builder {
	return &Builder{doc: Document{Meta: make(Meta)}}
}

// Data sets the payload of the document.
func (b *Builder) Data(data any) *Builder {
	b.doc.Data = data
	return b
}

// Error sets an error wrapper as the payload.
func (b *Builder) Error(obj ErrorObject) *Builder {
	b.doc.Data = ErrorWrapper{Error: obj}
	return b
}

// Version sets the reserved version metadata entry.
func (b *Builder) Version(v string) *Builder {
	b.doc.Meta["version"] = v
	return b
}

// Meta adds a metadata entry.
func (b *Builder) Meta(key string, value any) *Builder {
	b.doc.Meta[key] = value
	return b
}

// MetaAll merges all entries of meta into the document metadata.
func (b *Builder) MetaAll(meta map[string]any) *Builder {
	for k, v := range meta {
		b.doc.Meta[k] = v
	}
	return b
}

// Build returns the constructed Document.
func (b *Builder) Build() Document {
	return b.doc
}
