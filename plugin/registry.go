package plugin

import (
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound reports that no plugin is registered under the requested id.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("plugin: %q not registered", e.ID)
}

// Registry holds the renderers available as tile targets, keyed by plugin
// id. Registration normally happens at startup; Resolve is called per
// tile render and is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under id, replacing any previous registration.
func (r *Registry) Register(id string, p Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[id] = p
}

// Resolve returns the renderer registered under id.
func (r *Registry) Resolve(id string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.renderers[id]
	if !ok {
		return nil, &ErrNotFound{ID: id}
	}
	return p, nil
}

// Hostable lists the registered plugin ids that may be placed in a tile,
// excluding the compositor's own id so a grid can never host itself.
// The result is sorted for stable presentation.
func (r *Registry) Hostable(hostID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.renderers))
	for id := range r.renderers {
		if id == hostID {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
