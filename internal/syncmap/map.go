package syncmap

import (
	"sort"
	"sync"
)

// Map is a thread-safe generic map structure
type Map[T any] struct {
	mux sync.RWMutex
	m   map[string]T
}

// New creates a new instance of Map
func New[T any]() *Map[T] {
	return &Map[T]{
		m: make(map[string]T),
	}
}

// Lookup retrieves an item by name and reports whether it was present
func (r *Map[T]) Lookup(name string) (T, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[name]
	return v, ok
}

// Has reports whether name is present
func (r *Map[T]) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Set adds or updates an item by name
func (r *Map[T]) Set(name string, value T) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.m[name] = value
}

// Delete removes an item by name
func (r *Map[T]) Delete(name string) {
	r.mux.Lock()
	defer r.mux.Unlock()
	delete(r.m, name)
}

// Keys returns sorted names of all items
func (r *Map[T]) Keys() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.m))
	for k := range r.m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Len returns number of items
func (r *Map[T]) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.m)
}
