package refs

import (
	"maps"
	"slices"
	"sync"
)

// Host is a component instance that takes part in reference resolution.
//
// Hosts are stored and removed by identity, so implementations must be
// comparable. Pointer types are the usual choice.
type Host interface {
	// RefTag returns the reference group tag from the instance's props,
	// or "" when the instance is untagged.
	RefTag() string
}

// entry is either a single holder or an ordered collection.
type entry struct {
	multi bool
	one   Host
	many  []Host
}

// Registry maps reference group keys to the component instances tagged
// with them. A page owns one Registry through its Scope.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// Register adds h under key. With multi set, h is appended to the ordered
// collection at key; otherwise h becomes the sole holder of key, replacing
// any earlier holder.
func (r *Registry) Register(key string, h Host, multi bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*entry)
	}

	if !multi {
		r.entries[key] = &entry{one: h}
		return
	}

	e, ok := r.entries[key]
	if !ok || !e.multi {
		e = &entry{multi: true}
		r.entries[key] = e
	}
	e.many = append(e.many, h)
}

// Unregister removes h from key and reports whether anything was removed.
//
// For collections the first occurrence of h is removed. A single entry is
// deleted only when it still holds h, so a stale instance cannot clear a
// newer registration that reused the key.
func (r *Registry) Unregister(key string, h Host) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return false
	}

	if !e.multi {
		if e.one != h {
			return false
		}
		delete(r.entries, key)
		return true
	}

	idx := slices.Index(e.many, h)
	if idx == -1 {
		return false
	}
	e.many = slices.Delete(e.many, idx, idx+1)
	if len(e.many) == 0 {
		delete(r.entries, key)
	}
	return true
}

// One returns the sole holder of key.
func (r *Registry) One(key string) (Host, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok || e.multi {
		return nil, false
	}
	return e.one, true
}

// All returns a copy of the collection at key in registration order.
func (r *Registry) All(key string) []Host {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok || !e.multi {
		return nil
	}
	return slices.Clone(e.many)
}

// Len returns the number of keys with at least one registered instance.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// Clear drops every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}
