package interpolrec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolfile"
)

// Recorder turns intercepted calls into events, registers them, and writes the
// registered events to a per-rank trace file when the process finalizes.
//
// Recording is synchronous and safe for concurrent use. Errors are returned to
// the caller, logged, and counted; nothing a caller passes to a recorder can
// cause it to panic.
type Recorder struct {
	dir      string
	format   interpol.Format
	logger   *zap.Logger
	registry *Registry
	counters Counters
}

// RecorderConfig defines the configuration parameters for a recorder.
type RecorderConfig struct {
	// Dir is where the per-rank trace file is written. Optional. By default,
	// the directory "interpol", relative to the working directory.
	Dir string

	// Format of the per-rank trace file. Optional. By default, compact.
	Format interpol.Format

	// Logger receives diagnostics. Optional. By default, nothing is logged.
	Logger *zap.Logger

	// MaxEvents is the maximum number of events the recorder will hold.
	// Optional. By default, there's no limit other than available memory.
	MaxEvents int

	// Allocator is used to grow the registry. Optional. By default, memory
	// is allocated with make, and allocation failures are reported as errors.
	Allocator Allocator
}

// NewRecorder returns an empty recorder based on the provided config.
func NewRecorder(cfg RecorderConfig) *Recorder {
	if cfg.Dir == "" {
		cfg.Dir = interpolfile.DefaultDir
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.MaxEvents < 0 {
		cfg.MaxEvents = 0
	}

	return &Recorder{
		dir:      cfg.Dir,
		format:   cfg.Format,
		logger:   cfg.Logger,
		registry: NewRegistry(cfg.MaxEvents, cfg.Allocator),
	}
}

// Registry returns the registry holding the recorded events.
func (r *Recorder) Registry() *Registry {
	return r.registry
}

// Dir returns the directory where per-rank trace files are written.
func (r *Recorder) Dir() string {
	return r.dir
}

// Counters returns the current values of the recorder's counters.
func (r *Recorder) Counters() CounterValues {
	return r.counters.Values()
}

// Dispatch records the call. Calls of an unknown kind are ignored, and return
// nil. A finalize call also persists every event registered so far. Any error
// is returned as a *RecordError.
func (r *Recorder) Dispatch(call CallDescription) (err error) {
	kind, ok := call.Kind.Kind()
	if !ok {
		r.counters.Ignored.Add(1)
		r.logger.Debug("ignoring call of unknown kind",
			zap.Int32("rank", call.CurrentRank),
			zap.Int8("kind", int8(call.Kind)),
		)
		return nil
	}

	defer r.recoverPanic(kind, call.CurrentRank, &err)

	ev, _, buildErr := call.event()
	return r.record(kind, call.CurrentRank, ev, buildErr)
}

// Persist writes every event registered so far to the trace file for the given
// rank, replacing any previous version of that file. Any error is returned as a
// *PersistError.
func (r *Recorder) Persist(rank int32) error {
	path := filepath.Join(r.dir, interpolfile.RankName(rank))

	if rank < 0 {
		r.counters.Failed.Add(1)
		return &PersistError{Rank: rank, Path: path, Err: fmt.Errorf("invalid rank")}
	}

	events := r.registry.snapshot()
	if err := interpolfile.WriteFile(path, func(w io.Writer) error {
		return interpol.EncodeEvents(w, events, r.format)
	}); err != nil {
		r.counters.Failed.Add(1)
		return &PersistError{Rank: rank, Path: path, Err: err}
	}

	r.counters.Persisted.Add(1)
	r.logger.Debug("persisted trace",
		zap.Int32("rank", rank),
		zap.String("path", path),
		zap.Int("events", len(events)),
	)

	return nil
}

func (r *Recorder) record(kind interpol.Kind, rank int32, ev interpol.Event, buildErr error) (err error) {
	defer r.recoverPanic(kind, rank, &err)

	err = r.register(kind, rank, ev, buildErr)

	// Finalize is the last call a rank makes, so whatever has been registered
	// is written out even if the finalize event itself was dropped.
	if kind == interpol.KindFinalize && rank >= 0 {
		if persistErr := r.Persist(rank); persistErr != nil {
			r.logger.Warn("persist failed",
				zap.Int32("rank", rank),
				zap.Stringer("kind", kind),
				zap.Error(persistErr),
			)
			err = errors.Join(err, persistErr)
		}
	}

	if err != nil {
		return &RecordError{Rank: rank, Kind: kind, Err: err}
	}

	return nil
}

func (r *Recorder) register(kind interpol.Kind, rank int32, ev interpol.Event, buildErr error) error {
	if buildErr != nil {
		r.counters.BuildFailed.Add(1)
		r.logger.Warn("invalid call dropped",
			zap.Int32("rank", rank),
			zap.Stringer("kind", kind),
			zap.Error(buildErr),
		)
		return buildErr
	}

	if err := r.registry.Register(ev); err != nil {
		if errors.Is(err, ErrOutOfMemory) {
			r.counters.OutOfMemory.Add(1)
		} else {
			r.counters.Failed.Add(1)
		}
		r.logger.Warn("event dropped",
			zap.Int32("rank", rank),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		return err
	}

	r.counters.Registered.Add(1)
	return nil
}

func (r *Recorder) recoverPanic(kind interpol.Kind, rank int32, err *error) {
	v := recover()
	if v == nil {
		return
	}

	r.counters.Failed.Add(1)
	r.logger.Error("recording panicked",
		zap.Int32("rank", rank),
		zap.Stringer("kind", kind),
		zap.Any("panic", v),
	)
	*err = &RecordError{Rank: rank, Kind: kind, Err: fmt.Errorf("panic: %v", v)}
}

//
//
//

// RecordError is returned when a call can't be recorded. It wraps a
// [*interpol.BuildError], a [*RegisterError], a [*PersistError], or a
// combination of the last two.
type RecordError struct {
	Rank int32
	Kind interpol.Kind
	Err  error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s (rank %d): %v", e.Kind, e.Rank, e.Err)
}

// Unwrap returns the underlying error.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// PersistError is returned when a per-rank trace file can't be written.
type PersistError struct {
	Rank int32
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	return fmt.Sprintf("persist rank %d to %s: %v", e.Rank, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}
