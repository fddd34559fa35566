package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"
	"go.uber.org/zap"

	"github.com/interpol/interpol/internal/interpolutil"
	"github.com/interpol/interpol/interpolmerge"
)

const mergeLongHelp = `Merge reads every rank<N>_traces.json file in --dir, orders their events by
timestamp, and writes them to interpol_traces.json in the same directory,
replacing any previous merge.

Timestamps are cycle counter values sampled independently by each process.
The merged order is only meaningful if every rank shared a synchronized time
base, for example by running on a single node.`

type mergeConfig struct {
	*rootConfig

	concurrency int
}

func (cfg *mergeConfig) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{ShortName: 'c', LongName: "concurrency", Value: ffval.NewValue(&cfg.concurrency), Usage: "files decoded at once, 0 for GOMAXPROCS", NoDefault: true})
}

func (cfg *mergeConfig) Exec(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments %v", args)
	}

	cfg.logger.Debug("merging",
		zap.String("dir", cfg.dir),
		zap.Stringer("output", cfg.traceFormat()),
		zap.Int("concurrency", cfg.concurrency),
	)

	var (
		g   run.Group
		res *interpolmerge.Result
	)

	{
		ctx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			var err error
			res, err = interpolmerge.Merge(ctx, interpolmerge.Config{
				Dir:         cfg.dir,
				Format:      cfg.traceFormat(),
				Logger:      cfg.logger,
				Concurrency: cfg.concurrency,
			})
			return err
		}, func(error) {
			cancel()
		})
	}

	{
		g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
	}

	if err := g.Run(); err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	if cfg.format != "text" {
		return cfg.writeJSON(res)
	}

	fmt.Fprintf(cfg.stdout, "merged %d events from %d files into %s (%s)\n",
		len(res.Events),
		len(res.Files),
		res.Path,
		interpolutil.HumanizeDuration(res.Duration),
	)

	return nil
}
