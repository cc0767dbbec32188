// Package cache implements the plan cache: a map from expression string
// to compiled plan, scoped to a single engine.Engine value and therefore
// never synchronized internally. The zero value is ready to use.
//
// Go has no thread-local storage and goroutines are not operating-system
// threads, so the "thread-local cache" of the original design is realized
// here as a plain, non-synchronized map owned by one Engine: callers that
// want per-goroutine caching simply construct one Engine per goroutine.
// Sharing a single Engine (and therefore a single Cache) across
// goroutines without external synchronization is a data race, the same
// way sharing any other non-synchronized Go map would be.
package cache

import (
	"predeval/errcode"
	"predeval/plan"
)

// entry pairs a compiled plan with the schema string it was compiled
// against, so a later lookup under a different schema is detected rather
// than silently returning a stale plan.
type entry struct {
	p            *plan.EvaluationPlan
	schemaString string
}

// Cache is a thread-unsafe expression-string-keyed plan cache.
type Cache struct {
	entries map[string]entry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Lookup returns the cached plan for expr if one exists and was compiled
// against schemaString. If a plan exists under a different schema
// string, SchemaMismatch is returned instead of a stale hit.
func (c *Cache) Lookup(expr, schemaString string) (*plan.EvaluationPlan, errcode.Code, bool) {
	e, ok := c.entries[expr]
	if !ok {
		return nil, errcode.AllClear, false
	}
	if e.schemaString != schemaString {
		return nil, errcode.SchemaMismatch, true
	}
	return e.p, errcode.AllClear, true
}

// Store records p under expr's schema string, replacing any previous
// entry for expr.
func (c *Cache) Store(expr string, p *plan.EvaluationPlan) {
	if c.entries == nil {
		c.entries = make(map[string]entry)
	}
	c.entries[expr] = entry{p: p, schemaString: p.SchemaString}
}

// Len reports the number of cached plans.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Clear empties the cache, forcing every subsequent lookup to recompile.
func (c *Cache) Clear() {
	c.entries = make(map[string]entry)
}
