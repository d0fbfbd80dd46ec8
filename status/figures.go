package status

import (
	"iter"
	"slices"
	"sync"
)

// Figures is a keyed set of live values of type T, created on first use
// A handed-out pointer never moves, so writers cache it and store lock-free
type Figures[T any] struct {
	slots sync.Map // string -> *T

	mu   sync.Mutex
	keys []string // sorted, grows on insert only
}

func NewFigures[T any]() *Figures[T] {
	return &Figures[T]{}
}

// Get returns the value for key, allocating a zero value on first use
func (f *Figures[T]) Get(key string) *T {
	if v, ok := f.slots.Load(key); ok {
		return v.(*T)
	}
	v, loaded := f.slots.LoadOrStore(key, new(T))
	if !loaded {
		f.mu.Lock()
		i, _ := slices.BinarySearch(f.keys, key)
		f.keys = slices.Insert(f.keys, i, key)
		f.mu.Unlock()
	}
	return v.(*T)
}

// Lookup returns the value for key without creating it
func (f *Figures[T]) Lookup(key string) (*T, bool) {
	v, ok := f.slots.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// Keys returns a sorted copy of the registered keys
func (f *Figures[T]) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.keys)
}

func (f *Figures[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

// All yields entries in key order from a snapshot of the keys
// Entries added during iteration are not visited
func (f *Figures[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for _, k := range f.Keys() {
			v, _ := f.slots.Load(k)
			if !yield(k, v.(*T)) {
				return
			}
		}
	}
}
