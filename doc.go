// Package interpol models the calls a parallel process makes to its
// communication library (MPI) as a closed set of timestamped events.
//
// Each traced operation kind has exactly one concrete [Event] type, built
// through a validating constructor like [NewSend]. Constructors take every
// field explicitly, and return a [*BuildError] naming the offending field
// rather than a partially populated event.
//
// Events from different ranks are compared only by [Event.Timestamp], a cycle
// counter sampled when the call was entered. Serialized traces are JSON arrays
// of objects tagged with a "type" field, see [Events], so that a mixed sequence
// can be written by one process and read back by another.
//
// Most programs should not record events directly. The recording buffer and the
// entry points used by an interposition layer live in
// [github.com/interpol/interpol/interpolrec] and
// [github.com/interpol/interpol/ezinterpol]. Merging per-rank traces into one
// globally ordered trace is done by
// [github.com/interpol/interpol/interpolmerge].
package interpol
