package web

import (
	"net/http"
	"strings"

	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/stream"
)

// Negotiate resolves the output format for a request, in priority order:
// explicit ?format= query parameter, path extension, Turbo Stream media
// type in Accept, then the remaining Accept media ranges. HTML is the
// default.
func Negotiate(r *http.Request) action.Format {
	if f, ok := action.ParseFormat(r.URL.Query().Get("format")); ok {
		return f
	}

	if ext := pathExtension(r.URL.Path); ext != "" {
		if f, ok := action.ParseFormat(ext); ok {
			return f
		}
	}

	accept := r.Header.Get("Accept")
	if strings.Contains(accept, stream.ContentType) {
		return action.FormatTurboStream
	}

	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mediaType {
		case "application/json":
			return action.FormatJSON
		case "text/csv":
			return action.FormatCSV
		case "application/xml", "text/xml":
			return action.FormatXML
		case "text/html", "application/xhtml+xml":
			return action.FormatHTML
		}
	}

	return action.FormatHTML
}

func pathExtension(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i+1:]
	}
	return ""
}
