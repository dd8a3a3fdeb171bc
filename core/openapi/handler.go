package openapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// Handler serves a generated spec as JSON. The spec is generated once on
// first request and cached; the registry is immutable after startup so
// regeneration is never needed.
type Handler struct {
	generator *Generator
	logger    zerolog.Logger

	once   sync.Once
	cached []byte
	err    error
}

// NewHandler creates a handler around the generator.
func NewHandler(generator *Generator, logger zerolog.Logger) *Handler {
	return &Handler{generator: generator, logger: logger}
}

// ServeHTTP writes the spec JSON.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.once.Do(func() {
		h.cached, h.err = json.MarshalIndent(h.generator.Generate(), "", "  ")
	})
	if h.err != nil {
		h.logger.Error().Err(h.err).Msg("openapi spec marshal failed")
		http.Error(w, "spec generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(h.cached) //nolint:errcheck
}
