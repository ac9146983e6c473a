// Package symvisit supplies the memoisation cache shared by structural
// passes over the expression DAG. The Visitor interface and its Visit
// dispatcher live in internal/symexpr instead of here, so that visitor
// implementations can pattern-match on the unexported node-internal
// fields of that package without an import cycle; this package only
// needs to know that whatever gets cached is addressed by a node id.
package symvisit

import "sync"

// key identifies one memoised result: a node id paired with the
// environment it was computed under. Two passes over the same node
// under different environments must not collide (the "no
// memoisation across differing value environments" ground rule for the
// symbolic evaluator), hence env is part of the key rather than
// decoration on top of it.
type key[Env comparable] struct {
	nodeID uint64
	env    Env
}

// Cache memoises Visit results keyed by (node id, env). It is safe for
// concurrent use; a miss computed by two goroutines racing on the same
// key is stored by both, and whichever Set runs last wins (the dag is
// pure, so either value is correct — this just avoids a lock held
// across the compute call).
type Cache[Env comparable, R any] struct {
	mu    sync.RWMutex
	table map[key[Env]]R
}

// NewCache returns an empty Cache.
func NewCache[Env comparable, R any]() *Cache[Env, R] {
	return &Cache[Env, R]{table: make(map[key[Env]]R)}
}

// Get returns the cached result for (nodeID, env), if present.
func (c *Cache[Env, R]) Get(nodeID uint64, env Env) (R, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.table[key[Env]{nodeID: nodeID, env: env}]
	return v, ok
}

// Set records the result for (nodeID, env).
func (c *Cache[Env, R]) Set(nodeID uint64, env Env, result R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table[key[Env]{nodeID: nodeID, env: env}] = result
}

// GetOrCompute returns the cached result for (nodeID, env), computing
// and storing it via compute on a miss.
func (c *Cache[Env, R]) GetOrCompute(nodeID uint64, env Env, compute func() R) R {
	if v, ok := c.Get(nodeID, env); ok {
		return v
	}
	v := compute()
	c.Set(nodeID, env, v)
	return v
}

// Len returns the number of memoised entries, for diagnostics/tests.
func (c *Cache[Env, R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.table)
}
