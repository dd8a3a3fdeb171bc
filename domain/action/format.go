// Package action provides the declarative action configuration model:
// output formats, error categories, the fluent config builder, per-format
// handler sets, and the read-only action registry.
// Actions are configured once at startup; the execution engine in app/
// runs them per request.
package action

// Format identifies a negotiated output format.
type Format string

const (
	FormatHTML        Format = "html"
	FormatTurboStream Format = "turbo_stream"
	FormatJSON        Format = "json"
	FormatCSV         Format = "csv"
	FormatXML         Format = "xml"
)

// ContentType returns the response media type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatTurboStream:
		return "text/vnd.turbo-stream.html; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXML:
		return "application/xml; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatTurboStream, FormatJSON, FormatCSV, FormatXML:
		return true
	}
	return false
}

// ParseFormat maps a format name (e.g. from a query parameter or path
// extension) to a Format.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "html":
		return FormatHTML, true
	case "turbo_stream", "turbo-stream":
		return FormatTurboStream, true
	case "json":
		return FormatJSON, true
	case "csv":
		return FormatCSV, true
	case "xml":
		return FormatXML, true
	}
	return "", false
}

// Formats returns all supported formats in dispatch-preference order.
func Formats() []Format {
	return []Format{FormatHTML, FormatTurboStream, FormatJSON, FormatCSV, FormatXML}
}
