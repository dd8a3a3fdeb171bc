package action_test

import (
	"testing"

	"github.com/artpar/actionkit/domain/action"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		want   action.Format
		wantOK bool
	}{
		{"html", action.FormatHTML, true},
		{"turbo_stream", action.FormatTurboStream, true},
		{"turbo-stream", action.FormatTurboStream, true},
		{"json", action.FormatJSON, true},
		{"csv", action.FormatCSV, true},
		{"xml", action.FormatXML, true},
		{"", "", false},
		{"yaml", "", false},
		{"JSON", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := action.ParseFormat(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormat_ContentType(t *testing.T) {
	tests := []struct {
		format action.Format
		want   string
	}{
		{action.FormatHTML, "text/html; charset=utf-8"},
		{action.FormatTurboStream, "text/vnd.turbo-stream.html; charset=utf-8"},
		{action.FormatJSON, "application/json; charset=utf-8"},
		{action.FormatCSV, "text/csv; charset=utf-8"},
		{action.FormatXML, "application/xml; charset=utf-8"},
	}
	for _, tt := range tests {
		if got := tt.format.ContentType(); got != tt.want {
			t.Errorf("%s.ContentType() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Valid(t *testing.T) {
	for _, f := range action.Formats() {
		if !f.Valid() {
			t.Errorf("%s should be valid", f)
		}
	}
	if action.Format("yaml").Valid() {
		t.Errorf("yaml should not be valid")
	}
}

func TestCategory_StatusCode(t *testing.T) {
	tests := []struct {
		cat  action.Category
		want int
	}{
		{action.CategoryValidation, 422},
		{action.CategoryNotFound, 404},
		{action.CategoryAuthorization, 403},
		{action.CategoryAny, 500},
		{action.Category("unknown"), 500},
		{action.Category(""), 500},
	}
	for _, tt := range tests {
		if got := tt.cat.StatusCode(); got != tt.want {
			t.Errorf("%q.StatusCode() = %d, want %d", tt.cat, got, tt.want)
		}
	}
}
