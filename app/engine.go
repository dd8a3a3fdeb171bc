package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artpar/actionkit/adapters/metrics"
	"github.com/artpar/actionkit/domain/action"
	"github.com/artpar/actionkit/domain/page"
	"github.com/artpar/actionkit/domain/params"
	"github.com/artpar/actionkit/domain/result"
	"github.com/rs/zerolog"
)

// Engine runs configured actions. One Execute call corresponds to one
// inbound request; all mutable state lives in the passed Execution and is
// discarded afterwards. The engine itself is read-only after construction
// and safe for concurrent use.
type Engine struct {
	classifier *Classifier
	logger     zerolog.Logger
	metrics    *metrics.Collector
}

// EngineDeps contains dependencies for the engine. Classifier defaults to
// NewClassifier(); Metrics may be nil.
type EngineDeps struct {
	Classifier *Classifier
	Logger     zerolog.Logger
	Metrics    *metrics.Collector
}

// NewEngine creates an execution engine.
func NewEngine(deps EngineDeps) *Engine {
	classifier := deps.Classifier
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Engine{
		classifier: classifier,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// Classifier returns the engine's error classifier.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Execute runs cfg against the prepared execution state:
//
//  1. reset transient fields
//  2. before-hooks in registration order
//  3. project params, invoke the service, capture and classify errors
//  4. normalize the raw return into a canonical result
//  5. resolve the page config (embedded > declared > none)
//  6. after-hooks in registration order
//  7. determine success (explicit flag, else default true)
//
// Dispatching the outcome to a response handler is the caller's concern.
// Hook panics propagate; only the service call itself is recovered.
func (e *Engine) Execute(ctx context.Context, cfg action.Config, ex *action.Execution) {
	started := time.Now()
	if e.metrics != nil {
		e.metrics.ExecutionsInFlight.Inc()
		defer e.metrics.ExecutionsInFlight.Dec()
	}

	e.reset(cfg, ex)

	for _, hook := range cfg.Before {
		hook(ctx, ex)
	}

	if cfg.Service != nil {
		e.invoke(ctx, cfg, ex)
	} else {
		ex.Err = fmt.Errorf("action %q: %w", cfg.Name, ErrNoService)
		ex.Category = action.CategoryAny
		ex.Result = result.Fail(nil, ex.Err.Error())
	}

	if ex.Err == nil {
		ex.Result = result.Normalize(ex.Raw)
	}

	e.resolvePage(ctx, cfg, ex)

	for _, hook := range cfg.After {
		hook(ctx, ex, ex.Result)
	}

	ex.Succeeded = ex.Result.Succeeded()

	// A service may signal failure through the result without returning
	// an error; classify from the result shape in that case.
	if !ex.Succeeded && ex.Category == "" {
		if len(ex.Result.Errors) > 0 {
			ex.Category = action.CategoryValidation
		} else {
			ex.Category = action.CategoryAny
		}
	}

	e.observe(cfg, ex, time.Since(started))
}

func (e *Engine) reset(cfg action.Config, ex *action.Execution) {
	ex.Action = cfg.Name
	ex.Raw = nil
	ex.Err = nil
	ex.Category = ""
	ex.Result = result.Result{}
	ex.Page = page.Config{}
	ex.HasPage = false
	ex.Succeeded = false
	if ex.Values == nil {
		ex.Values = make(map[string]any)
	}
}

func (e *Engine) invoke(ctx context.Context, cfg action.Config, ex *action.Execution) {
	ex.Params = params.Project(ex.Payload, cfg.ParamsKey, cfg.Permit)
	if ex.ID != "" {
		ex.Params["id"] = ex.ID
	}

	raw, err := e.call(ctx, cfg.Service, ex.Params)
	if err != nil {
		ex.Err = err
		ex.Category = e.classifier.Classify(err)
		ex.Result = synthesizeFailure(err, ex.Category)
		e.logger.Debug().
			Str("action", cfg.Name).
			Str("category", string(ex.Category)).
			Err(err).
			Msg("service failed")
		return
	}
	ex.Raw = raw
}

// call recovers a panicking service into an error so a misbehaving service
// follows the ordinary error path instead of taking down the worker.
func (e *Engine) call(ctx context.Context, svc action.Service, p map[string]any) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("service panic: %v", r)
		}
	}()
	return svc.Call(ctx, p)
}

func (e *Engine) resolvePage(ctx context.Context, cfg action.Config, ex *action.Execution) {
	switch {
	case ex.Result.HasPage:
		pg := ex.Result.Page
		if cfg.PageModifier != nil {
			pg = cfg.PageModifier(pg)
		}
		ex.Page = pg
		ex.HasPage = true
	case cfg.Page != nil:
		ex.Page = cfg.Page.Config(ctx, ex.Result)
		ex.HasPage = true
	default:
		ex.HasPage = false
	}
}

func synthesizeFailure(err error, cat action.Category) result.Result {
	if cat == action.CategoryValidation {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return result.Fail(verr.Fields, err.Error())
		}
	}
	return result.Fail(nil, err.Error())
}

func (e *Engine) observe(cfg action.Config, ex *action.Execution, elapsed time.Duration) {
	outcome := "success"
	if !ex.Succeeded {
		outcome = "error"
	}

	if e.metrics != nil {
		e.metrics.ExecutionsTotal.WithLabelValues(cfg.Name, string(ex.Format), outcome).Inc()
		e.metrics.ExecutionDuration.WithLabelValues(cfg.Name, string(ex.Format)).Observe(elapsed.Seconds())
		if ex.Err != nil {
			e.metrics.ServiceErrors.WithLabelValues(cfg.Name, string(ex.Category)).Inc()
		}
	}

	evt := e.logger.Debug()
	if !ex.Succeeded {
		evt = e.logger.Info()
	}
	evt.
		Str("action", cfg.Name).
		Str("format", string(ex.Format)).
		Str("outcome", outcome).
		Dur("elapsed", elapsed).
		Msg("action executed")
}
