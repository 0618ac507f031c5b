package chassis

import "sync"

// OutsideRoutes is the set of paths exempted from the catch-all's not-found
// behavior: paths owned by subsystems outside the engine (an OAuth callback,
// a health endpoint on the outer mux). The catch-all defers these to the
// transport's fallback stage instead of raising a not-found error.
//
// External collaborators may keep adding paths after startup, so adds are
// safe to interleave with concurrent reads from in-flight requests.
type OutsideRoutes struct {
	mu    sync.RWMutex
	paths map[string]struct{}
}

// NewOutsideRoutes creates an empty set.
func NewOutsideRoutes() *OutsideRoutes {
	return &OutsideRoutes{paths: make(map[string]struct{})}
}

// Add exempts a path. Duplicate adds are no-ops.
func (o *OutsideRoutes) Add(path string) {
	o.mu.Lock()
	o.paths[path] = struct{}{}
	o.mu.Unlock()
}

// Contains reports whether the path is exempted.
func (o *OutsideRoutes) Contains(path string) bool {
	o.mu.RLock()
	_, ok := o.paths[path]
	o.mu.RUnlock()
	return ok
}

// Len returns the number of exempted paths.
func (o *OutsideRoutes) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.paths)
}
