package interpolutil

import (
	"sync"
	"sync/atomic"
)

// Lazy holds a value that's constructed by init on first use, and which can be
// replaced at any time. Once the value exists, Get is a single atomic load.
type Lazy[T any] struct {
	once sync.Once
	init func() T
	val  atomic.Pointer[T]
}

// NewLazy returns a lazy value constructed by init.
func NewLazy[T any](init func() T) *Lazy[T] {
	return &Lazy[T]{init: init}
}

// Get returns the current value, constructing it if necessary.
func (l *Lazy[T]) Get() T {
	if p := l.val.Load(); p != nil {
		return *p
	}

	// A Set racing with the first Get wins over init.
	l.once.Do(func() {
		val := l.init()
		l.val.CompareAndSwap(nil, &val)
	})

	return *l.val.Load()
}

// Set replaces the current value with val, and returns the previous value, if
// any. A value set before the first Get means init is never called.
func (l *Lazy[T]) Set(val T) (prev T, ok bool) {
	if p := l.val.Swap(&val); p != nil {
		return *p, true
	}
	return prev, false
}
