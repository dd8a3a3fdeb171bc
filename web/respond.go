package web

import (
	"fmt"
	"net/http"

	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/result"
	"github.com/artpar/actionkit/domain/stream"
	"github.com/artpar/actionkit/pkg/envelope"
)

// respondSuccess dispatches the success outcome: the registered responder
// for the negotiated format, or the per-format default.
func (h *Handler) respondSuccess(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution) {
	if responder, ok := cfg.Success[ex.Format]; ok {
		h.runResponder(w, r, cfg, ex, responder, http.StatusOK)
		return
	}

	switch ex.Format {
	case action.FormatHTML:
		h.defaultHTML(w, r, cfg, ex, http.StatusOK)
	case action.FormatTurboStream:
		// Default stream response: a single update of the flash region.
		ops := stream.NewBuilder().Flash("notice", ex.Result.Message).Ops()
		h.writeStream(w, r, cfg, ex, ops, http.StatusOK)
	case action.FormatJSON:
		envelope.WriteData(w, http.StatusOK, successPayload(ex.Result), h.version, ex.Result.Meta)
	case action.FormatCSV:
		h.writeCSV(w, r, cfg, ex)
	case action.FormatXML:
		h.writeXML(w, ex, http.StatusOK)
	}
}

// respondError selects the handler set for the classified category (with
// the any-category fallback built into Config.ErrorHandlers) and applies
// the category's status code.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution) {
	status := ex.Category.StatusCode()

	if responder, ok := cfg.ErrorHandlers(ex.Category)[ex.Format]; ok {
		h.runResponder(w, r, cfg, ex, responder, status)
		return
	}

	switch ex.Format {
	case action.FormatHTML:
		h.defaultErrorHTML(w, r, cfg, ex, status)
	case action.FormatTurboStream:
		sb := stream.NewBuilder().Flash("alert", errorMessage(ex))
		if len(ex.Result.Errors) > 0 {
			sb.FormErrors(ex.Result.Errors)
		}
		h.writeStream(w, r, cfg, ex, sb.Ops(), status)
	case action.FormatJSON:
		envelope.WriteError(w, status, errorObject(ex), h.version)
	case action.FormatCSV:
		// CSV has no structured error body; a bare status is the
		// documented behavior.
		w.WriteHeader(status)
	case action.FormatXML:
		h.writeErrorXML(w, ex, status)
	}
}

// runResponder executes one registered responder.
func (h *Handler) runResponder(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, responder action.Responder, status int) {
	switch responder.Kind {
	case action.KindFunc:
		responder.Func(w, r, ex)
	case action.KindRedirect:
		h.redirect(w, r, ex, responder.Redirect(ex))
	case action.KindPage:
		h.renderPage(w, r, cfg, ex, status)
	case action.KindPartial:
		markup, err := h.templates.RenderPartial(responder.Partial, mergedLocals(responder.Locals, ex))
		if err != nil {
			h.renderFailure(w, cfg, ex, fmt.Errorf("partial %q: %w", responder.Partial, err))
			return
		}
		h.writeHTML(w, cfg, markup, status)
	case action.KindComponent:
		markup, err := responder.Component.Render(r.Context())
		if err != nil {
			h.renderFailure(w, cfg, ex, fmt.Errorf("component: %w", err))
			return
		}
		h.writeHTML(w, cfg, markup, status)
	case action.KindStream:
		h.writeStream(w, r, cfg, ex, responder.Ops, status)
	default:
		h.logger.Error().Str("action", cfg.Name).Int("kind", int(responder.Kind)).Msg("unknown responder kind")
		w.WriteHeader(http.StatusNoContent)
	}
}

// redirect issues a 303 so a POST/PUT/DELETE submission lands on a GET,
// stashing the outcome message in the flash cookie.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, ex *action.Execution, location string) {
	if ex.Result.Message != "" {
		kind := "notice"
		if !ex.Succeeded {
			kind = "alert"
		}
		SetFlash(w, kind, ex.Result.Message)
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// defaultHTML renders the resolved page, then the configured component,
// then falls through to an empty 204-style response.
func (h *Handler) defaultHTML(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, status int) {
	switch {
	case ex.HasPage:
		h.renderPage(w, r, cfg, ex, status)
	case cfg.Component != nil:
		markup, err := cfg.Component.Render(r.Context())
		if err != nil {
			h.renderFailure(w, cfg, ex, err)
			return
		}
		h.writeHTML(w, cfg, markup, status)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) defaultErrorHTML(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, status int) {
	if ex.HasPage {
		h.renderPage(w, r, cfg, ex, status)
		return
	}
	markup, err := h.templates.RenderError(status, errorMessage(ex), ex.Result.Errors)
	if err != nil {
		h.renderFailure(w, cfg, ex, err)
		return
	}
	h.writeHTML(w, cfg, markup, status)
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, status int) {
	if !ex.HasPage {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	markup, err := h.templates.RenderPage(r.Context(), ex.Page, TakeFlash(w, r))
	if err != nil {
		h.renderFailure(w, cfg, ex, err)
		return
	}
	h.writeHTML(w, cfg, markup, status)
}

func (h *Handler) writeHTML(w http.ResponseWriter, cfg action.Config, markup string, status int) {
	if cfg.Frame != "" {
		markup = fmt.Sprintf("<turbo-frame id=%q>%s</turbo-frame>", cfg.Frame, markup)
	}
	w.Header().Set("Content-Type", action.FormatHTML.ContentType())
	w.WriteHeader(status)
	fmt.Fprint(w, markup)
}

func (h *Handler) writeStream(w http.ResponseWriter, r *http.Request, cfg action.Config, ex *action.Execution, ops []stream.Op, status int) {
	renderer := execRenderer{templates: h.templates, ex: ex}
	body, err := stream.Render(r.Context(), ops, renderer)
	if err != nil {
		h.renderFailure(w, cfg, ex, err)
		return
	}
	w.Header().Set("Content-Type", action.FormatTurboStream.ContentType())
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

// renderFailure is the terminal path for rendering errors: log, count,
// and answer 500 without recursing into error dispatch.
func (h *Handler) renderFailure(w http.ResponseWriter, cfg action.Config, ex *action.Execution, err error) {
	if h.metrics != nil {
		h.metrics.RenderErrors.WithLabelValues(cfg.Name, string(ex.Format)).Inc()
	}
	h.logger.Error().
		Str("action", cfg.Name).
		Str("format", string(ex.Format)).
		Err(err).
		Msg("response rendering failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// successPayload serializes the normalized result minus internal-only
// fields: the resource wins, then the collection, then a message object.
func successPayload(res result.Result) any {
	switch {
	case res.Resource != nil:
		return serializable(res.Resource)
	case res.Collection != nil:
		items := make([]any, len(res.Collection))
		for i, item := range res.Collection {
			items[i] = serializable(item)
		}
		return items
	case res.Message != "":
		return map[string]any{"message": res.Message}
	default:
		return map[string]any{}
	}
}

// Attributer lets domain values control their serialized shape.
type Attributer interface {
	Attributes() map[string]any
}

func serializable(v any) any {
	if a, ok := v.(Attributer); ok {
		return a.Attributes()
	}
	return v
}

func errorObject(ex *action.Execution) envelope.ErrorObject {
	return envelope.ErrorObject{
		Type:    string(ex.Category),
		Message: errorMessage(ex),
		Errors:  ex.Result.Errors,
	}
}

func errorMessage(ex *action.Execution) string {
	if ex.Result.Message != "" {
		return ex.Result.Message
	}
	if ex.Err != nil {
		return ex.Err.Error()
	}
	return "request failed"
}

// execRenderer threads execution state into stream partial locals, so
// stream ops declared at build time can still render the live result.
type execRenderer struct {
	templates *Templates
	ex        *action.Execution
}

func (r execRenderer) RenderPartial(name string, locals map[string]any) (string, error) {
	return r.templates.RenderPartial(name, mergedLocals(locals, r.ex))
}

func mergedLocals(locals map[string]any, ex *action.Execution) map[string]any {
	out := make(map[string]any, len(locals)+2)
	for k, v := range locals {
		out[k] = v
	}
	if _, ok := out["resource"]; !ok && ex.Result.Resource != nil {
		out["resource"] = ex.Result.Resource
	}
	if _, ok := out["result"]; !ok {
		out["result"] = ex.Result
	}
	return out
}
