package main

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"
	"go.uber.org/zap"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolfile"
	"github.com/interpol/interpol/internal/interpolutil"
	"github.com/interpol/interpol/interpolmerge"
)

type statsConfig struct {
	*rootConfig

	ranks bool
}

func (cfg *statsConfig) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{ShortName: 'r', LongName: "ranks", Value: ffval.NewValue(&cfg.ranks), Usage: "include per-rank stats in text output", NoDefault: true})
}

func (cfg *statsConfig) Exec(ctx context.Context, args []string) error {
	files := args
	if len(files) <= 0 {
		files = []string{filepath.Join(cfg.dir, interpolfile.MergedName)}
	}

	// One set of stats per file, merged into the total.
	stats := interpolmerge.NewStats()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		evs, err := interpolmerge.ReadTraceFile(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		fileStats := interpolmerge.NewStats()
		fileStats.Observe(evs...)
		stats.Merge(fileStats)

		cfg.logger.Debug("read trace file", zap.String("path", file), zap.Int("events", len(evs)), zap.Int("ranks", len(fileStats.Ranks)))
	}

	if cfg.format != "text" {
		return cfg.writeJSON(stats)
	}

	return cfg.writeText(stats)
}

func (cfg *statsConfig) writeText(stats *interpolmerge.Stats) error {
	tw := tabwriter.NewWriter(cfg.stdout, 0, 2, 2, ' ', 0)

	fmt.Fprintf(tw, "EVENTS\tRANKS\tSENT\tRECEIVED\tSPAN\n")
	fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
		stats.Overall.Events,
		len(stats.Ranks),
		interpolutil.HumanizeBytes(stats.Overall.BytesSent),
		interpolutil.HumanizeBytes(stats.Overall.BytesRecv),
		interpolutil.HumanizeCount(stats.Overall.Span()),
	)
	fmt.Fprintf(tw, "\n")

	fmt.Fprintf(tw, "KIND\tCOUNT\n")
	for _, kind := range interpol.AllKinds() {
		if n := stats.Kinds[kind.String()]; n > 0 {
			fmt.Fprintf(tw, "%s\t%d\n", kind, n)
		}
	}

	if cfg.ranks {
		fmt.Fprintf(tw, "\n")
		fmt.Fprintf(tw, "RANK\tEVENTS\tSENT\tRECEIVED\tCYCLES\tFIRST\tLAST\n")
		for _, rank := range stats.RankList() {
			rs := stats.Ranks[rank]
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%d\t%d\n",
				rank,
				rs.Events,
				interpolutil.HumanizeBytes(rs.BytesSent),
				interpolutil.HumanizeBytes(rs.BytesRecv),
				interpolutil.HumanizeCount(rs.Cycles),
				rs.First,
				rs.Last,
			)
		}
	}

	return tw.Flush()
}
