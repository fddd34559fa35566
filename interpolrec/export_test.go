package interpolrec

import "github.com/interpol/interpol"

// Snapshot exposes the registered events to tests.
func (r *Registry) Snapshot() []interpol.Event {
	return r.snapshot()
}
