package interpolrec

import (
	"fmt"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolbuf"
)

// ErrOutOfMemory is returned, wrapped in a [*RegisterError], when the registry
// can't reserve space for another event.
var ErrOutOfMemory = interpolbuf.ErrOutOfMemory

// Allocator returns a slice with length zero and capacity at least n, or an
// error if that much memory can't be obtained.
type Allocator = interpolbuf.Allocator[interpol.Event]

// Registry is the in-memory sequence of events recorded by one process, in
// insertion order. It's safe for concurrent use.
//
// Events can be added and counted. They're read only by the recorder, to
// persist them at finalize.
type Registry struct {
	buf *interpolbuf.Buffer[interpol.Event]
}

// NewRegistry returns an empty registry which holds at most maxEvents events.
// If maxEvents is zero or less, the registry is limited only by available
// memory. If alloc is nil, a default allocator is used.
func NewRegistry(maxEvents int, alloc Allocator) *Registry {
	return &Registry{
		buf: interpolbuf.NewBuffer[interpol.Event](maxEvents, alloc),
	}
}

// Register appends ev to the registry. If the registry is full, it first tries
// to double its capacity; if that fails, Register returns a *RegisterError
// wrapping ErrOutOfMemory, and the events already registered are unaffected.
// Events that aren't validly populated are rejected with a *RegisterError
// wrapping the *interpol.BuildError.
func (r *Registry) Register(ev interpol.Event) error {
	if ev == nil {
		return &RegisterError{Err: fmt.Errorf("nil event")}
	}

	if err := interpol.Validate(ev); err != nil {
		return &RegisterError{Kind: ev.Kind(), Len: r.buf.Len(), Err: err}
	}

	if err := r.buf.Append(ev); err != nil {
		return &RegisterError{Kind: ev.Kind(), Len: r.buf.Len(), Err: err}
	}

	return nil
}

// Len returns the number of registered events.
func (r *Registry) Len() int {
	return r.buf.Len()
}

// snapshot returns a copy of every registered event, in insertion order.
func (r *Registry) snapshot() []interpol.Event {
	return r.buf.Snapshot()
}

// RegisterError is returned when an event can't be added to a registry.
type RegisterError struct {
	Kind interpol.Kind
	Len  int // events in the registry at the time of the failure
	Err  error
}

// Error implements the error interface.
func (e *RegisterError) Error() string {
	return fmt.Sprintf("register %s (%d events): %v", e.Kind, e.Len, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegisterError) Unwrap() error {
	return e.Err
}
