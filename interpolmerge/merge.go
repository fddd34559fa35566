package interpolmerge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolfile"
)

// Config defines the parameters of a merge.
type Config struct {
	// Dir containing the per-rank trace files. The consolidated trace is
	// written to the same directory. Optional. By default, "interpol".
	Dir string

	// Format of the consolidated trace. Optional. By default, compact.
	Format interpol.Format

	// Logger receives diagnostics. Optional. By default, nothing is logged.
	Logger *zap.Logger

	// Concurrency is the maximum number of files decoded at once. Optional.
	// By default, GOMAXPROCS.
	Concurrency int
}

// Result describes a completed merge.
type Result struct {
	Path     string          `json:"path"`
	Files    []string        `json:"files"`
	Events   interpol.Events `json:"-"`
	Stats    *Stats          `json:"stats"`
	Duration time.Duration   `json:"duration"`
}

// Merge reads every per-rank trace file in the configured directory, sorts all
// of their events by timestamp, and writes the result to the consolidated trace
// file in the same directory, replacing any previous version. Any failure
// aborts the merge, and is returned as a *MergeError.
func Merge(ctx context.Context, cfg Config) (*Result, error) {
	begin := time.Now()

	if cfg.Dir == "" {
		cfg.Dir = interpolfile.DefaultDir
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}

	files, err := interpolfile.ListRankFiles(cfg.Dir)
	if err != nil {
		return nil, &MergeError{Op: "list", Path: cfg.Dir, Err: err}
	}

	if len(files) <= 0 {
		cfg.Logger.Warn("no per-rank trace files found", zap.String("dir", cfg.Dir))
	}

	// A consolidated trace from an earlier run is never an input.
	path := filepath.Join(cfg.Dir, interpolfile.MergedName)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &MergeError{Op: "remove", Path: path, Err: err}
	}

	perFile, err := readAll(ctx, files, cfg.Concurrency, cfg.Logger)
	if err != nil {
		return nil, err
	}

	var (
		total int
		paths = make([]string, len(files))
	)
	for i := range files {
		total += len(perFile[i])
		paths[i] = files[i].Path
	}

	events := make([]interpol.Event, 0, total)
	for _, evs := range perFile {
		events = append(events, evs...)
	}

	SortEvents(events)

	if err := ctx.Err(); err != nil {
		return nil, &MergeError{Op: "sort", Path: cfg.Dir, Err: err}
	}

	if err := interpolfile.WriteFile(path, func(w io.Writer) error {
		return interpol.EncodeEvents(w, events, cfg.Format)
	}); err != nil {
		return nil, &MergeError{Op: "write", Path: path, Err: err}
	}

	stats := NewStats()
	stats.Observe(events...)

	took := time.Since(begin)
	cfg.Logger.Info("merged traces",
		zap.String("path", path),
		zap.Int("files", len(files)),
		zap.Int("events", len(events)),
		zap.Duration("took", took),
	)

	return &Result{
		Path:     path,
		Files:    paths,
		Events:   events,
		Stats:    stats,
		Duration: took,
	}, nil
}

// readAll decodes the given files concurrently, returning their events in the
// same order as the files.
func readAll(ctx context.Context, files []interpolfile.RankFile, concurrency int, logger *zap.Logger) ([]interpol.Events, error) {
	perFile := make([]interpol.Events, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &MergeError{Op: "read", Path: file.Path, Err: err}
			}

			evs, err := ReadTraceFile(file.Path)
			if err != nil {
				return &MergeError{Op: "read", Path: file.Path, Err: err}
			}

			for _, ev := range evs {
				if ev.Rank() != file.Rank {
					logger.Warn("event rank doesn't match file",
						zap.String("path", file.Path),
						zap.Int32("rank", ev.Rank()),
						zap.Stringer("kind", ev.Kind()),
					)
					break
				}
			}

			logger.Debug("read trace file",
				zap.String("path", file.Path),
				zap.Int32("rank", file.Rank),
				zap.Int("events", len(evs)),
			)

			perFile[i] = evs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return perFile, nil
}

// ReadTraceFile decodes the trace file at path, which may be either a per-rank
// or a consolidated trace.
func ReadTraceFile(path string) (interpol.Events, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	evs, err := interpol.DecodeEvents(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return evs, nil
}

// MergeError is returned when a merge fails.
type MergeError struct {
	Op   string // list, remove, read, sort, or write
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MergeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *MergeError) Unwrap() error {
	return e.Err
}
