package interpolrec

import "sync/atomic"

// Counters track the outcome of every call made to a recorder.
type Counters struct {
	Registered  atomic.Uint64 // events added to the registry
	BuildFailed atomic.Uint64 // calls that didn't describe a valid event
	OutOfMemory atomic.Uint64 // valid events the registry couldn't hold
	Ignored     atomic.Uint64 // calls of an unknown kind
	Persisted   atomic.Uint64 // successful writes of the per-rank trace file
	Failed      atomic.Uint64 // other failures, e.g. persistence errors
}

// CounterValues is a point-in-time copy of [Counters].
type CounterValues struct {
	Registered  uint64 `json:"registered"`
	BuildFailed uint64 `json:"build_failed"`
	OutOfMemory uint64 `json:"out_of_memory"`
	Ignored     uint64 `json:"ignored"`
	Persisted   uint64 `json:"persisted"`
	Failed      uint64 `json:"failed"`
}

// Values returns the current values of the counters.
func (c *Counters) Values() CounterValues {
	return CounterValues{
		Registered:  c.Registered.Load(),
		BuildFailed: c.BuildFailed.Load(),
		OutOfMemory: c.OutOfMemory.Load(),
		Ignored:     c.Ignored.Load(),
		Persisted:   c.Persisted.Load(),
		Failed:      c.Failed.Load(),
	}
}

// Dropped returns the number of calls that didn't result in a registered event,
// excluding calls of an unknown kind.
func (v CounterValues) Dropped() uint64 {
	return v.BuildFailed + v.OutOfMemory
}
