package obo

import "iter"

// Pool interns values by canonical text so that equal values share one
// allocation for the lifetime of a parse result. A Pool is owned by a single
// parse and is not safe for concurrent use.
type Pool[T any] struct {
	entries map[string]*T
	hits    int
}

// NewPool creates an empty Pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{entries: make(map[string]*T)}
}

// Intern returns the value pooled under key. On first sight of key it calls
// build with a private copy of key and stores the result. A build error leaves
// the pool unchanged.
func (pool *Pool[T]) Intern(key []byte, build func(key string) (*T, error)) (*T, error) {
	// The string conversion in a map index does not allocate.
	if value, ok := pool.entries[string(key)]; ok {
		pool.hits++

		return value, nil
	}

	owned := string(key)

	value, err := build(owned)
	if err != nil {
		return nil, err
	}

	pool.entries[owned] = value

	return value, nil
}

// Insert stores value under key unless key is already pooled.
func (pool *Pool[T]) Insert(key string, value *T) {
	if _, ok := pool.entries[key]; !ok {
		pool.entries[key] = value
	}
}

// Lookup returns the value pooled under key, if any.
func (pool *Pool[T]) Lookup(key string) (*T, bool) {
	value, ok := pool.entries[key]

	return value, ok
}

// Len returns the number of distinct values.
func (pool *Pool[T]) Len() int {
	return len(pool.entries)
}

// Hits returns how many Intern calls were served from the pool.
func (pool *Pool[T]) Hits() int {
	return pool.hits
}

// All iterates over every pooled key and value in unspecified order.
func (pool *Pool[T]) All() iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		for key, value := range pool.entries {
			if !yield(key, value) {
				return
			}
		}
	}
}
