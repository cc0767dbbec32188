// Package engine is the top-level API: it orchestrates schema parsing,
// plan caching, compilation, and evaluation behind two calls,
// EvalPredicate and GetTupleAttributeValue.
//
// An Engine owns a plan cache that is never internally synchronized.
// Construct one Engine per goroutine that evaluates predicates
// concurrently; sharing a single Engine across goroutines without
// external locking is a data race, exactly as it would be for any other
// Go value wrapping a plain map. This is the idiomatic realization of a
// thread-local plan cache in a language with no OS-thread-bound storage
// and where goroutines, not threads, are the unit of concurrency.
package engine

import (
	"predeval/cache"
	"predeval/compiler"
	"predeval/errcode"
	"predeval/eval"
	"predeval/fetcher"
	"predeval/schema"
	"predeval/trace"
	"predeval/tupleview"
)

// Engine evaluates predicates against tuples of a single schema,
// caching compiled plans by expression text. It is not safe for
// concurrent use by multiple goroutines.
type Engine struct {
	cache  *cache.Cache
	tracer *trace.Tracer
}

// New returns a ready-to-use Engine. tracer may be nil.
func New(tracer *trace.Tracer) *Engine {
	return &Engine{cache: cache.New(), tracer: tracer}
}

// EvalPredicate evaluates expr against tuple. The tuple's own canonical
// schema string (via schema.Format) is used both to validate a cache hit
// and, on a miss, to compile a fresh plan.
func (e *Engine) EvalPredicate(expr string, tuple tupleview.TupleView) (bool, errcode.Code) {
	schemaString := schema.Format(tuple)

	p, code, hit := e.cache.Lookup(expr, schemaString)
	if hit && code != errcode.AllClear {
		return false, code
	}

	if !hit {
		if e.tracer != nil {
			e.tracer.CacheMiss(expr)
		}
		paths, code := schema.Parse(schemaString)
		if code != errcode.AllClear {
			return false, code
		}
		compiled, code := compiler.Compile(expr, schemaString, paths)
		if e.tracer != nil {
			e.tracer.Compile(expr, schemaString, code.String())
		}
		if code != errcode.AllClear {
			return false, code
		}
		e.cache.Store(expr, compiled)
		p = compiled
	} else if e.tracer != nil {
		e.tracer.CacheHit(expr)
	}

	return eval.Evaluate(p, tuple, e.tracer)
}

// GetTupleAttributeValue fetches the value named by attribute (a
// registered attribute path, optionally indexed/keyed) from tuple.
func (e *Engine) GetTupleAttributeValue(tuple tupleview.TupleView, attribute string) (tupleview.TupleView, errcode.Code) {
	schemaString := schema.Format(tuple)
	paths, code := schema.Parse(schemaString)
	if code != errcode.AllClear {
		return nil, code
	}
	v, code := fetcher.Fetch(paths, tuple, attribute)
	if e.tracer != nil {
		e.tracer.Fetch(attribute, code.String())
	}
	return v, code
}

// CacheSize reports the number of distinct expressions currently cached.
func (e *Engine) CacheSize() int {
	return e.cache.Len()
}

// ClearCache drops every cached plan, forcing recompilation on next use.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}
