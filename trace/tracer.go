// Package trace provides structured execution tracing for the compiler,
// cache, and evaluator, built on zap. It is strictly diagnostic: nothing
// in the predicate evaluation path depends on whether a tracer is
// attached.
package trace

import (
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Tracer logs compile/cache/eval events through a zap.Logger, filtered by
// a set of glob patterns matched against the expression string.
type Tracer struct {
	log     *zap.Logger
	enabled bool
	filters []string
	mu      sync.Mutex
}

// globalTracer is the package-level tracer used by the convenience
// functions below; engine.Engine also accepts an explicit *Tracer for
// callers that want one tracer per engine instance instead.
var globalTracer *Tracer

// New builds a Tracer backed by log. Passing a nil logger yields a
// disabled tracer whose methods are all no-ops.
func New(log *zap.Logger, filters []string) *Tracer {
	return &Tracer{log: log, enabled: log != nil, filters: filters}
}

// Init installs t as the global tracer used by the package-level
// convenience functions.
func Init(t *Tracer) {
	globalTracer = t
}

// IsEnabled reports whether the global tracer will emit anything.
func IsEnabled() bool {
	return globalTracer != nil && globalTracer.enabled
}

func (t *Tracer) matches(expr string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if ok, _ := filepath.Match(pattern, expr); ok {
			return true
		}
	}
	return false
}

// Compile logs a compiler invocation and its outcome.
func (t *Tracer) Compile(expr, schemaString string, errCode string) {
	if t == nil || !t.enabled || !t.matches(expr) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("compile",
		zap.String("expr", expr),
		zap.String("schema", schemaString),
		zap.String("code", errCode),
	)
}

// CacheHit logs a plan cache hit for expr.
func (t *Tracer) CacheHit(expr string) {
	if t == nil || !t.enabled || !t.matches(expr) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("cache_hit", zap.String("expr", expr))
}

// CacheMiss logs a plan cache miss for expr.
func (t *Tracer) CacheMiss(expr string) {
	if t == nil || !t.enabled || !t.matches(expr) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("cache_miss", zap.String("expr", expr))
}

// Evaluate logs the final boolean result of evaluating expr against one
// tuple.
func (t *Tracer) Evaluate(expr string, result bool, errCode string) {
	if t == nil || !t.enabled || !t.matches(expr) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("evaluate",
		zap.String("expr", expr),
		zap.Bool("result", result),
		zap.String("code", errCode),
	)
}

// Subexpression logs the result of one subexpression group during
// evaluation, for step-through debugging of multi-group predicates.
func (t *Tracer) Subexpression(expr string, id string, result bool) {
	if t == nil || !t.enabled || !t.matches(expr) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("subexpression",
		zap.String("expr", expr),
		zap.String("id", id),
		zap.Bool("result", result),
	)
}

// Fetch logs an attribute-fetcher invocation.
func (t *Tracer) Fetch(attribute string, errCode string) {
	if t == nil || !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.Debug("fetch", zap.String("attribute", attribute), zap.String("code", errCode))
}

// Package-level convenience wrappers over the global tracer, mirroring
// the per-call pattern used at compile/cache/eval sites that don't carry
// their own *Tracer reference.

func Compile(expr, schemaString, errCode string) { globalTracer.Compile(expr, schemaString, errCode) }
func CacheHit(expr string)                       { globalTracer.CacheHit(expr) }
func CacheMiss(expr string)                      { globalTracer.CacheMiss(expr) }
func Evaluate(expr string, result bool, errCode string) {
	globalTracer.Evaluate(expr, result, errCode)
}
func Fetch(attribute, errCode string) { globalTracer.Fetch(attribute, errCode) }
