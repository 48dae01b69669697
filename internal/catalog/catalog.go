// Package catalog keeps the named datasets a session works with. The
// registry is the only shared mutable structure in the system; the
// datasets it holds are immutable.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tabuladb/tabula/internal/dataset"
)

// Registry is a thread-safe name-to-dataset map.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]*dataset.Dataset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		datasets: make(map[string]*dataset.Dataset),
	}
}

// Register stores ds under name, replacing any dataset already there.
// The stored copy carries the registered name.
func (r *Registry) Register(name string, ds *dataset.Dataset) error {
	if name == "" {
		return fmt.Errorf("dataset name must not be empty")
	}
	if ds == nil {
		return fmt.Errorf("cannot register a nil dataset as %q", name)
	}
	if ds.Name() != name {
		ds = ds.Renamed(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[name] = ds
	return nil
}

// Get looks up a dataset by name.
func (r *Registry) Get(name string) (*dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasets[name]
	if !ok {
		return nil, fmt.Errorf("dataset %q not found", name)
	}
	return ds, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Drop removes a dataset. Dropping an unknown name is an error.
func (r *Registry) Drop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[name]; !ok {
		return fmt.Errorf("dataset %q not found", name)
	}
	delete(r.datasets, name)
	return nil
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.datasets)
}
