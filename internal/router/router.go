// Package router assembles the ordered handler chain and dispatches each
// query to the first handler that claims it.
package router

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/petasbytes/orpheus/handlers"
	"github.com/petasbytes/orpheus/internal/telemetry"
)

// NotHandledMessage is returned when no handler claims a query.
const NotHandledMessage = "Sorry, Architect. I don't have a handler for this task."

// Router holds the handler chain. It is built once at startup and never
// changes afterwards; the same handler instances serve every query.
type Router struct {
	chain  []handlers.Handler
	logger *zap.Logger
}

// New copies the handler list, sorts it ascending by handler name, and
// relocates the designated fallback (if any) to the final position so every
// specialised handler is consulted first.
func New(hs []handlers.Handler, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	chain := make([]handlers.Handler, len(hs))
	copy(chain, hs)
	sort.SliceStable(chain, func(i, j int) bool {
		return handlers.Name(chain[i]) < handlers.Name(chain[j])
	})
	for i, h := range chain {
		if f, ok := h.(handlers.Fallback); ok && f.Fallback() {
			chain = append(append(chain[:i], chain[i+1:]...), h)
			break
		}
	}

	logger.Info("handler chain ready", zap.Strings("handlers", names(chain)))
	return &Router{chain: chain, logger: logger}
}

// Order returns the handler names in consultation order.
func (r *Router) Order() []string { return names(r.chain) }

// Route walks the chain and returns the first claiming handler's Response.
// Exactly zero or one Process call happens per route. Handler faults stop
// here: a CanHandle panic reads as a refusal, a Process panic becomes a
// failed Response.
func (r *Router) Route(ctx context.Context, query string) handlers.Response {
	start := time.Now()
	for _, h := range r.chain {
		if !r.claims(h, query) {
			continue
		}
		name := handlers.Name(h)
		r.logger.Debug("processing query", zap.String("handler", name))
		resp := r.process(ctx, h, query)
		r.observe(ctx, name, resp, start)
		return resp
	}
	resp := handlers.New(handlers.StatusNotHandled, NotHandledMessage)
	r.observe(ctx, "", resp, start)
	return resp
}

func (r *Router) claims(h handlers.Handler, query string) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Warn("handler panicked in CanHandle",
				zap.String("handler", handlers.Name(h)), zap.Any("panic", v))
			ok = false
		}
	}()
	return h.CanHandle(query)
}

func (r *Router) process(ctx context.Context, h handlers.Handler, query string) (resp handlers.Response) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("handler panicked in Process",
				zap.String("handler", handlers.Name(h)), zap.Any("panic", v))
			resp = handlers.New(handlers.StatusFailed,
				fmt.Sprintf("The %s failed unexpectedly: %v", handlers.Name(h), v))
		}
	}()
	return h.Process(ctx, query)
}

func (r *Router) observe(ctx context.Context, handler string, resp handlers.Response, start time.Time) {
	queryID, _ := telemetry.QueryIDFromContext(ctx)
	telemetry.Emit("route", map[string]any{
		"query_id":    queryID,
		"handler":     handler,
		"status":      string(resp.Status()),
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func names(hs []handlers.Handler) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = handlers.Name(h)
	}
	return out
}
