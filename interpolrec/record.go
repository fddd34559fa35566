package interpolrec

import "github.com/interpol/interpol"

// RecordInit records an init call.
func (r *Recorder) RecordInit(rank int32, tsc uint64, wallTime float64) error {
	ev, err := interpol.NewInit(rank, tsc, wallTime)
	return r.record(interpol.KindInit, rank, ev, err)
}

// RecordInitThread records an init call with a requested level of thread
// support.
func (r *Recorder) RecordInitThread(rank, required, provided int32, tsc uint64, wallTime float64) error {
	ev, err := interpol.NewInitThread(rank, required, provided, tsc, wallTime)
	return r.record(interpol.KindInitThread, rank, ev, err)
}

// RecordFinalize records a finalize call, and persists the events registered so
// far to the trace file for the rank.
func (r *Recorder) RecordFinalize(rank int32, tsc uint64, wallTime float64) error {
	ev, err := interpol.NewFinalize(rank, tsc, wallTime)
	return r.record(interpol.KindFinalize, rank, ev, err)
}

// RecordSend records a blocking send.
func (r *Recorder) RecordSend(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) error {
	ev, err := interpol.NewSend(rank, partner, bytes, comm, tag, tsc, duration)
	return r.record(interpol.KindSend, rank, ev, err)
}

// RecordRecv records a blocking receive.
func (r *Recorder) RecordRecv(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) error {
	ev, err := interpol.NewRecv(rank, partner, bytes, comm, tag, tsc, duration)
	return r.record(interpol.KindRecv, rank, ev, err)
}

// RecordIsend records a non-blocking send.
func (r *Recorder) RecordIsend(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) error {
	ev, err := interpol.NewIsend(rank, partner, bytes, comm, req, tag, tsc, duration)
	return r.record(interpol.KindIsend, rank, ev, err)
}

// RecordIrecv records a non-blocking receive.
func (r *Recorder) RecordIrecv(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) error {
	ev, err := interpol.NewIrecv(rank, partner, bytes, comm, req, tag, tsc, duration)
	return r.record(interpol.KindIrecv, rank, ev, err)
}

// RecordTest records a completion test.
func (r *Recorder) RecordTest(rank, req int32, finished bool, tsc, duration uint64) error {
	ev, err := interpol.NewTest(rank, req, finished, tsc, duration)
	return r.record(interpol.KindTest, rank, ev, err)
}

// RecordWait records a completion wait.
func (r *Recorder) RecordWait(rank, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewWait(rank, req, tsc, duration)
	return r.record(interpol.KindWait, rank, ev, err)
}

// RecordBarrier records a blocking barrier.
func (r *Recorder) RecordBarrier(rank, comm int32, tsc, duration uint64) error {
	ev, err := interpol.NewBarrier(rank, comm, tsc, duration)
	return r.record(interpol.KindBarrier, rank, ev, err)
}

// RecordIbarrier records a non-blocking barrier.
func (r *Recorder) RecordIbarrier(rank, comm, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewIbarrier(rank, comm, req, tsc, duration)
	return r.record(interpol.KindIbarrier, rank, ev, err)
}

// RecordIbcast records a non-blocking broadcast from root.
func (r *Recorder) RecordIbcast(rank, root int32, bytes uint32, comm, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewIbcast(rank, root, bytes, comm, req, tsc, duration)
	return r.record(interpol.KindIbcast, rank, ev, err)
}

// RecordIgather records a non-blocking gather to root.
func (r *Recorder) RecordIgather(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewIgather(rank, root, bytesSend, bytesRecv, comm, req, tsc, duration)
	return r.record(interpol.KindIgather, rank, ev, err)
}

// RecordIreduce records a non-blocking reduction to root.
func (r *Recorder) RecordIreduce(rank, root int32, bytes uint32, op interpol.Op, comm, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewIreduce(rank, root, bytes, op, comm, req, tsc, duration)
	return r.record(interpol.KindIreduce, rank, ev, err)
}

// RecordIscatter records a non-blocking scatter from root.
func (r *Recorder) RecordIscatter(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) error {
	ev, err := interpol.NewIscatter(rank, root, bytesSend, bytesRecv, comm, req, tsc, duration)
	return r.record(interpol.KindIscatter, rank, ev, err)
}
