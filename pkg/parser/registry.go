package parser

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNoSuchParser is matched (via errors.Is) by the error Register returns
// when the requested anchor does not exist.
var ErrNoSuchParser = errors.New("no such parser")

// NoSuchParserError reports a registration anchored on an unknown name.
type NoSuchParserError struct {
	Name string
}

// Error implements the error interface.
func (e *NoSuchParserError) Error() string {
	return fmt.Sprintf("no such parser: %q", e.Name)
}

// Is makes errors.Is(err, ErrNoSuchParser) succeed.
func (e *NoSuchParserError) Is(target error) bool {
	return target == ErrNoSuchParser
}

// Named is implemented by everything stored in a Registry.
type Named interface {
	Name() string
}

// Registry is an ordered collection of named parsers.
// Order is precedence: earlier entries win ties between grammars that
// match at the same position.
type Registry[T Named] struct {
	mu     sync.RWMutex
	items  []T
	byName map[string]T
}

// NewRegistry creates an empty registry.
func NewRegistry[T Named]() *Registry[T] {
	return &Registry[T]{byName: make(map[string]T)}
}

// Register appends item, or inserts it immediately before the entry named
// before when before is non-empty. An item whose name is already registered
// replaces the existing entry in place and before is ignored.
func (r *Registry[T]) Register(item T, before string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := item.Name()
	if _, exists := r.byName[name]; exists {
		idx := r.indexOf(name)
		r.items[idx] = item
		r.byName[name] = item
		return nil
	}

	if before == "" {
		r.items = append(r.items, item)
		r.byName[name] = item
		return nil
	}

	idx := r.indexOf(before)
	if idx < 0 {
		return &NoSuchParserError{Name: before}
	}
	r.items = slices.Insert(r.items, idx, item)
	r.byName[name] = item
	return nil
}

// MustRegister is Register for built-in wiring; it panics on error.
func (r *Registry[T]) MustRegister(item T, before string) {
	if err := r.Register(item, before); err != nil {
		panic(err)
	}
}

// Lookup returns the entry registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.byName[name]
	return item, ok
}

// All returns a snapshot of the entries in precedence order.
func (r *Registry[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Names returns the registered names in precedence order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for _, item := range r.items {
		names = append(names, item.Name())
	}
	return names
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry[T]) indexOf(name string) int {
	return slices.IndexFunc(r.items, func(item T) bool {
		return item.Name() == name
	})
}
