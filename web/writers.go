package web

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/result"
)

// writeCSV serializes the result's collection (or a singleton list around
// its resource). Rows are derived from the items' attribute maps; the
// header order is the sorted key set of the first item.
func (h *Handler) writeCSV(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution) {
	items := collectionOf(ex.Result)
	w.Header().Set("Content-Type", action.FormatCSV.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvFilename(cfg.Name)))
	w.WriteHeader(http.StatusOK)

	if len(items) == 0 {
		return
	}

	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m := attributeMap(item); m != nil {
			rows = append(rows, m)
		}
	}
	if len(rows) == 0 {
		return
	}

	header := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		header = append(header, k)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	cw.Write(header) //nolint:errcheck
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			record[i] = fmt.Sprintf("%v", row[key])
		}
		cw.Write(record) //nolint:errcheck
	}
	cw.Flush()

	// The status line is already on the wire, so a mid-stream failure can
	// only truncate the export. Account for it rather than lose it.
	if err := cw.Error(); err != nil {
		h.logger.Error().Err(err).Str("action", cfg.Name).Msg("csv export truncated")
		if h.metrics != nil {
			h.metrics.RenderErrors.WithLabelValues(cfg.Name, string(ex.Format)).Inc()
		}
	}
}

func csvFilename(actionName string) string {
	base := actionName
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base + ".csv"
}

// writeXML serializes resource-or-collection as a generic XML document.
func (h *Handler) writeXML(w http.ResponseWriter, ex *action.Execution, status int) {
	w.Header().Set("Content-Type", action.FormatXML.ContentType())
	w.WriteHeader(status)

	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	if ex.Result.Resource != nil {
		writeXMLValue(&out, "resource", serializable(ex.Result.Resource))
	} else {
		out.WriteString("<collection>")
		for _, item := range collectionOf(ex.Result) {
			writeXMLValue(&out, "item", serializable(item))
		}
		out.WriteString("</collection>")
	}
	fmt.Fprint(w, out.String())
}

func (h *Handler) writeErrorXML(w http.ResponseWriter, ex *action.Execution, status int) {
	w.Header().Set("Content-Type", action.FormatXML.ContentType())
	w.WriteHeader(status)

	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?><error>`)
	writeXMLValue(&out, "type", string(ex.Category))
	writeXMLValue(&out, "message", errorMessage(ex))
	if len(ex.Result.Errors) > 0 {
		out.WriteString("<errors>")
		fields := make([]string, 0, len(ex.Result.Errors))
		for f := range ex.Result.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, field := range fields {
			for _, msg := range ex.Result.Errors[field] {
				fmt.Fprintf(&out, "<field name=%q>%s</field>", field, xmlEscape(msg))
			}
		}
		out.WriteString("</errors>")
	}
	out.WriteString("</error>")
	fmt.Fprint(w, out.String())
}

// writeXMLValue renders maps as nested elements with sorted keys, slices
// as repeated <item> elements, and anything else as escaped text.
func writeXMLValue(out *strings.Builder, tag string, v any) {
	fmt.Fprintf(out, "<%s>", tag)
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			writeXMLValue(out, xmlName(k), val[k])
		}
	case []any:
		for _, item := range val {
			writeXMLValue(out, "item", item)
		}
	default:
		out.WriteString(xmlEscape(fmt.Sprintf("%v", val)))
	}
	fmt.Fprintf(out, "</%s>", tag)
}

// xmlName keeps element names to a safe subset.
func xmlName(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "field"
	}
	return b.String()
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}

// collectionOf returns the result's collection, or a singleton list
// around its resource.
func collectionOf(res result.Result) []any {
	if res.Collection != nil {
		return res.Collection
	}
	if res.Resource != nil {
		return []any{res.Resource}
	}
	return nil
}

// attributeMap converts an item into a flat map for tabular output.
func attributeMap(item any) map[string]any {
	switch v := serializable(item).(type) {
	case map[string]any:
		return v
	default:
		// Fall back to the JSON shape of the value.
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return map[string]any{"value": v}
		}
		return m
	}
}
