// Package interpolmerge combines the per-rank trace files written by every
// process of a job into one consolidated trace, ordered by timestamp.
//
// Events are ordered solely by their timestamps, which are cycle counter values
// sampled independently by each process. The order is only meaningful if every
// process shares a synchronized time base, for example when all ranks run on a
// single node with an invariant counter. Merging traces from ranks on different
// machines produces a valid file whose global order may not reflect reality.
package interpolmerge
