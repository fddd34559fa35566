// Package interpolrec records the calls made by one process to the
// communication library.
//
// A [Recorder] validates each call, appends the resulting event to its
// [Registry], and on finalize writes every registered event to the per-rank
// trace file in its directory. Programs driven by an interposition layer
// normally use the process-wide recorder in package ezinterpol rather than
// constructing their own.
package interpolrec
