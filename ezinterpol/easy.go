// Package ezinterpol provides the process-wide recorder used by an
// interposition layer, and one entry point per intercepted call.
//
// The recorder is created on first use, configured from the environment.
//
//	INTERPOL_DIR         directory for trace files (default "interpol")
//	INTERPOL_OUTPUT      "readable" for indented JSON, otherwise compact
//	INTERPOL_LOG         debug, info, warn (default), error, or none
//	INTERPOL_MAX_EVENTS  maximum number of events to hold (default unlimited)
//
// Entry points never return errors and never panic. Failures are logged to
// stderr and reflected in the recorder's counters, and the host program
// continues unaffected.
package ezinterpol

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolfile"
	"github.com/interpol/interpol/internal/interpolutil"
	"github.com/interpol/interpol/interpolrec"
)

var recorder = interpolutil.NewLazy(func() *interpolrec.Recorder {
	return NewRecorderFromEnv(os.Getenv)
})

// Default returns the process-wide recorder.
func Default() *interpolrec.Recorder {
	return recorder.Get()
}

// SetDefault replaces the process-wide recorder, and returns the previous one,
// which is nil if the default was never used. If r is nil, a recorder
// configured from the environment is installed. It's meant for tests and for
// programs that configure recording explicitly.
func SetDefault(r *interpolrec.Recorder) *interpolrec.Recorder {
	if r == nil {
		r = NewRecorderFromEnv(os.Getenv)
	}
	prev, _ := recorder.Set(r)
	return prev
}

// NewRecorderFromEnv returns a recorder configured by the INTERPOL_ variables
// read through getenv. Invalid values fall back to defaults, with a warning.
func NewRecorderFromEnv(getenv func(string) string) *interpolrec.Recorder {
	logger, err := interpolutil.NewLogger(os.Stderr, valueOr(getenv("INTERPOL_LOG"), "warn"), false)
	if err != nil {
		logger, _ = interpolutil.NewLogger(os.Stderr, "warn", false)
		logger.Warn("using default log level", zap.Error(err))
	}
	logger = logger.Named("interpol")

	var maxEvents int
	if s := getenv("INTERPOL_MAX_EVENTS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			logger.Warn("ignoring invalid INTERPOL_MAX_EVENTS", zap.String("value", s))
		} else {
			maxEvents = n
		}
	}

	return interpolrec.NewRecorder(interpolrec.RecorderConfig{
		Dir:       valueOr(getenv("INTERPOL_DIR"), interpolfile.DefaultDir),
		Format:    interpol.ParseFormat(getenv("INTERPOL_OUTPUT")),
		Logger:    logger,
		MaxEvents: maxEvents,
	})
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Call records an intercepted call given in its flat form.
func Call(call interpolrec.CallDescription) {
	_ = Default().Dispatch(call)
}

// Init records an init call.
func Init(rank int32, tsc uint64, wallTime float64) {
	_ = Default().RecordInit(rank, tsc, wallTime)
}

// InitThread records an init call with a requested level of thread support.
func InitThread(rank, required, provided int32, tsc uint64, wallTime float64) {
	_ = Default().RecordInitThread(rank, required, provided, tsc, wallTime)
}

// Finalize records a finalize call, and writes the per-rank trace file.
func Finalize(rank int32, tsc uint64, wallTime float64) {
	_ = Default().RecordFinalize(rank, tsc, wallTime)
}

// Send records a blocking send.
func Send(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) {
	_ = Default().RecordSend(rank, partner, bytes, comm, tag, tsc, duration)
}

// Recv records a blocking receive.
func Recv(rank, partner int32, bytes uint32, comm, tag int32, tsc, duration uint64) {
	_ = Default().RecordRecv(rank, partner, bytes, comm, tag, tsc, duration)
}

// Isend records a non-blocking send.
func Isend(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) {
	_ = Default().RecordIsend(rank, partner, bytes, comm, req, tag, tsc, duration)
}

// Irecv records a non-blocking receive.
func Irecv(rank, partner int32, bytes uint32, comm, req, tag int32, tsc, duration uint64) {
	_ = Default().RecordIrecv(rank, partner, bytes, comm, req, tag, tsc, duration)
}

// Test records a completion test.
func Test(rank, req int32, finished bool, tsc, duration uint64) {
	_ = Default().RecordTest(rank, req, finished, tsc, duration)
}

// Wait records a completion wait.
func Wait(rank, req int32, tsc, duration uint64) {
	_ = Default().RecordWait(rank, req, tsc, duration)
}

// Barrier records a blocking barrier.
func Barrier(rank, comm int32, tsc, duration uint64) {
	_ = Default().RecordBarrier(rank, comm, tsc, duration)
}

// Ibarrier records a non-blocking barrier.
func Ibarrier(rank, comm, req int32, tsc, duration uint64) {
	_ = Default().RecordIbarrier(rank, comm, req, tsc, duration)
}

// Ibcast records a non-blocking broadcast.
func Ibcast(rank, root int32, bytes uint32, comm, req int32, tsc, duration uint64) {
	_ = Default().RecordIbcast(rank, root, bytes, comm, req, tsc, duration)
}

// Igather records a non-blocking gather.
func Igather(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) {
	_ = Default().RecordIgather(rank, root, bytesSend, bytesRecv, comm, req, tsc, duration)
}

// Ireduce records a non-blocking reduction.
func Ireduce(rank, root int32, bytes uint32, op interpol.Op, comm, req int32, tsc, duration uint64) {
	_ = Default().RecordIreduce(rank, root, bytes, op, comm, req, tsc, duration)
}

// Iscatter records a non-blocking scatter.
func Iscatter(rank, root int32, bytesSend, bytesRecv uint32, comm, req int32, tsc, duration uint64) {
	_ = Default().RecordIscatter(rank, root, bytesSend, bytesRecv, comm, req, tsc, duration)
}
