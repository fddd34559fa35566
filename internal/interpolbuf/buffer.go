package interpolbuf

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfMemory is returned when the buffer can't reserve room for another
// value. The buffer is left exactly as it was before the failed append.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator returns an empty slice with a capacity of at least n values, or an
// error if the allocation can't be satisfied.
type Allocator[T any] func(n int) ([]T, error)

// Buffer is an append-only sequence of values, safe for concurrent use. Growth
// is explicit and fallible: before an append that would exceed the current
// capacity, the buffer reserves room for twice as many values, and reports
// ErrOutOfMemory instead of crashing if that reservation fails.
type Buffer[T any] struct {
	mtx   sync.Mutex
	buf   []T
	max   int // maximum number of values, 0 means no limit
	alloc Allocator[T]
}

// MinCapacity is the capacity reserved by the first append to an empty buffer.
const MinCapacity = 64

// NewBuffer returns an empty buffer which will hold at most max values. A max of
// zero or less means no limit. If alloc is nil, DefaultAllocator is used.
func NewBuffer[T any](max int, alloc Allocator[T]) *Buffer[T] {
	if max < 0 {
		max = 0
	}
	if alloc == nil {
		alloc = DefaultAllocator[T]
	}
	return &Buffer[T]{
		max:   max,
		alloc: alloc,
	}
}

// Append adds val to the end of the buffer. The lock is held only to grow the
// backing storage, when necessary, and to write the value.
func (b *Buffer[T]) Append(val T) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	// Reserve first, so a failure leaves existing values untouched.
	if len(b.buf) == cap(b.buf) {
		if err := b.reserve(); err != nil {
			return err
		}
	}

	b.buf = append(b.buf, val)
	return nil
}

func (b *Buffer[T]) reserve() error {
	n := len(b.buf)

	// Safety first.
	if b.max > 0 && n >= b.max {
		return fmt.Errorf("%w: limit of %d values reached", ErrOutOfMemory, b.max)
	}

	// Double the current length, within the limits.
	want := 2 * n
	if want < MinCapacity {
		want = MinCapacity
	}
	if b.max > 0 && want > b.max {
		want = b.max
	}

	next, err := b.alloc(want)
	if err != nil {
		return fmt.Errorf("%w: reserve %d values: %w", ErrOutOfMemory, want, err)
	}
	if cap(next) <= n {
		return fmt.Errorf("%w: reserve %d values: allocator returned capacity %d", ErrOutOfMemory, want, cap(next))
	}

	b.buf = append(next[:0], b.buf...)
	return nil
}

// Len returns the number of values in the buffer.
func (b *Buffer[T]) Len() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.buf)
}

// Cap returns the number of values the buffer can hold without growing.
func (b *Buffer[T]) Cap() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return cap(b.buf)
}

// Snapshot returns a copy of every value in the buffer, oldest first. The copy
// is taken under the same lock as Append, so it reflects every append that
// completed before Snapshot was called.
func (b *Buffer[T]) Snapshot() []T {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	res := make([]T, len(b.buf))
	copy(res, b.buf)
	return res
}

// DefaultAllocator allocates with make, converting the runtime panic raised for
// impossible sizes into an error. Exhaustion of the Go heap itself is fatal to
// the runtime and can't be recovered; callers that need a hard bound should set
// a max on the buffer.
func DefaultAllocator[T any](n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("allocate %d values: %v", n, r)
		}
	}()
	return make([]T, 0, n), nil
}
