// Package library keeps named materials in memory.
package library

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/zoobzio/isotope"
)

// ErrNotFound indicates no material is stored under a name.
var ErrNotFound = errors.New("material not found")

// Library is a named collection of materials. It is safe for concurrent use.
// Materials are cloned on the way in and out, so callers never share state
// with the library.
type Library struct {
	mu        sync.RWMutex
	materials map[string]*isotope.Material
}

// New returns an empty library.
func New() *Library {
	return &Library{materials: make(map[string]*isotope.Material)}
}

// Put stores a copy of m under name, replacing any previous entry.
func (l *Library) Put(name string, m *isotope.Material) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return isotope.InvalidArgument("library name is required")
	}
	if m == nil {
		return isotope.InvalidArgument("library material %q is nil", name)
	}
	c := m.Clone()
	l.mu.Lock()
	l.materials[name] = c
	l.mu.Unlock()
	return nil
}

// Get returns a copy of the material stored under name.
func (l *Library) Get(name string) (*isotope.Material, error) {
	l.mu.RLock()
	m, ok := l.materials[name]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return m.Clone(), nil
}

// Delete removes name. Deleting a missing name is not an error.
func (l *Library) Delete(name string) {
	l.mu.Lock()
	delete(l.materials, name)
	l.mu.Unlock()
}

// Names returns the stored names in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.materials))
}

// Len returns the number of stored materials.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.materials)
}

// Range calls fn for each material in name order until fn returns false.
// fn receives copies and may call back into the library.
func (l *Library) Range(fn func(name string, m *isotope.Material) bool) {
	for _, name := range l.Names() {
		m, err := l.Get(name)
		if err != nil {
			continue // deleted since Names
		}
		if !fn(name, m) {
			return
		}
	}
}
