package envelope

import (
	"encoding/json"
	"net/http"
)

// ContentType is the JSON media type.
const ContentType = "application/json; charset=utf-8"

// Write writes an envelope document to the response.
func Write(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

// WriteData writes a success envelope around data with the given version
// and extra metadata.
func WriteData(w http.ResponseWriter, status int, data any, version string, meta map[string]any) {
	Write(w, status, NewDocument().Data(data).MetaAll(meta).Version(version).Build())
}

// WriteError writes a failure envelope. Status is derived by the caller
// from the error category.
func WriteError(w http.ResponseWriter, status int, obj ErrorObject, version string) {
	Write(w, status, NewDocument().Error(obj).Version(version).Build())
}
