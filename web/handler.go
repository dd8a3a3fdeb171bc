// Package web integrates the action engine with net/http: chi route
// mounting, RESTful resource scaffolding, format negotiation, response
// dispatch with per-format defaults, flash messages, and template
// rendering.
package web

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/artpar/actionkit/adapters/metrics"
	"github.com/artpar/actionkit/app"
	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/ports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler turns registered actions into HTTP handlers.
type Handler struct {
	registry      *action.Registry
	engine        *app.Engine
	templates     *Templates
	authenticator ports.Authenticator
	authorizer    ports.Authorizer
	logger        zerolog.Logger
	metrics       *metrics.Collector
	version       string
}

// Deps contains dependencies for the web handler. Templates is required
// for HTML and Turbo Stream rendering; Authenticator and Authorizer may
// be nil, in which case the corresponding checks are skipped globally.
type Deps struct {
	Registry      *action.Registry
	Engine        *app.Engine
	Templates     *Templates
	Authenticator ports.Authenticator
	Authorizer    ports.Authorizer
	Logger        zerolog.Logger
	Metrics       *metrics.Collector
	Version       string
}

// NewHandler creates a new web handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		registry:      deps.Registry,
		engine:        deps.Engine,
		templates:     deps.Templates,
		authenticator: deps.Authenticator,
		authorizer:    deps.Authorizer,
		logger:        deps.Logger,
		metrics:       deps.Metrics,
		version:       deps.Version,
	}
}

// Action returns the http.HandlerFunc for the named action. Unknown names
// yield a handler that always responds 404, matching the fail-at-call-site
// policy of the config builder.
func (h *Handler) Action(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := h.registry.Get(name)
		if !ok {
			h.logger.Error().Str("action", name).Msg("action not registered")
			http.NotFound(w, r)
			return
		}
		h.serve(w, r, cfg)
	}
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, cfg action.Config) {
	ex := &action.Execution{
		Action:  cfg.Name,
		Format:  Negotiate(r),
		Payload: h.parsePayload(r),
		ID:      memberID(r),
	}

	if h.authenticator != nil && !cfg.SkipAuthentication {
		actor, err := h.authenticator.Authenticate(r)
		if err != nil {
			h.dispatchAuthFailure(w, r, cfg, ex, err)
			return
		}
		ex.Actor = actor
	}
	if h.authorizer != nil && !cfg.SkipAuthorization {
		if err := h.authorizer.Authorize(r.Context(), ex.Actor, cfg.Name); err != nil {
			h.dispatchAuthFailure(w, r, cfg, ex, err)
			return
		}
	}

	h.engine.Execute(r.Context(), cfg, ex)

	if ex.Succeeded {
		h.respondSuccess(w, r, cfg, ex)
	} else {
		h.respondError(w, r, cfg, ex)
	}
}

// memberID resolves the {id} route parameter. A recognized format
// extension is trimmed so /tasks/42.json addresses task 42; the
// extension itself is consumed by Negotiate.
func memberID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if ext := pathExtension(id); ext != "" {
		if _, ok := action.ParseFormat(ext); ok {
			id = strings.TrimSuffix(id, "."+ext)
		}
	}
	return id
}

// dispatchAuthFailure routes authentication/authorization failures through
// the ordinary error dispatch so per-action handlers apply.
func (h *Handler) dispatchAuthFailure(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, err error) {
	ex.Err = err
	ex.Category = h.engine.Classifier().Classify(err)
	if ex.Category == action.CategoryAny {
		ex.Category = action.CategoryAuthorization
	}
	ex.Result = ex.Result.WithMessage(err.Error())
	h.respondError(w, r, cfg, ex)
}

// parsePayload merges query parameters, URL-encoded form fields, and a
// JSON body (when present) into one flat payload map. Later sources win.
func (h *Handler) parsePayload(r *http.Request) map[string]any {
	payload := make(map[string]any)

	for key, vals := range r.URL.Query() {
		payload[key] = queryValue(key, vals)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json":
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			for k, v := range body {
				payload[k] = v
			}
		} else {
			h.logger.Debug().Err(err).Msg("malformed json body ignored")
		}
	case mediaType == "application/x-www-form-urlencoded" || strings.HasPrefix(mediaType, "multipart/"):
		if err := r.ParseForm(); err == nil {
			for key, vals := range r.PostForm {
				setFormValue(payload, key, vals)
			}
		}
	}

	return payload
}

func queryValue(key string, vals []string) any {
	if len(vals) == 1 {
		return vals[0]
	}
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// setFormValue supports the bracketed nesting convention of HTML forms:
// task[title] nests under "task", tags[] and task[tags][] collect arrays.
func setFormValue(payload map[string]any, key string, vals []string) {
	isArray := strings.HasSuffix(key, "[]")
	if isArray {
		key = strings.TrimSuffix(key, "[]")
	}

	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		if isArray {
			payload[key] = anySlice(vals)
		} else {
			payload[key] = queryValue(key, vals)
		}
		return
	}

	root := key[:open]
	field := key[open+1 : len(key)-1]
	nested, ok := payload[root].(map[string]any)
	if !ok {
		nested = make(map[string]any)
		payload[root] = nested
	}
	if isArray {
		nested[field] = anySlice(vals)
	} else {
		nested[field] = queryValue(field, vals)
	}
}

func anySlice(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
