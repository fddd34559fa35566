// interpol is a CLI tool for working with the trace files written by processes
// recorded with interpol.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/interpol/interpol/internal/interpolutil"
)

func main() {
	var (
		ctx    = context.Background()
		stdin  = os.Stdin
		stdout = os.Stdout
		stderr = os.Stderr
		args   = os.Args[1:]
	)
	err := exec(ctx, stdin, stdout, stderr, args)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.As(err, &(run.SignalError{})):
		os.Exit(0)
	case err != nil:
		fmt.Fprintf(stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func exec(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) (err error) {
	rootConfig := &rootConfig{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	rootFlags := ff.NewFlagSet("interpol")
	rootConfig.register(rootFlags)

	rootCommand := &ff.Command{
		Name:      "interpol",
		ShortHelp: "work with interpol trace files",
		Flags:     rootFlags,
	}

	// Config for `interpol merge`.
	mergeConfig := &mergeConfig{rootConfig: rootConfig}
	mergeFlags := ff.NewFlagSet("merge").SetParent(rootFlags)
	mergeConfig.register(mergeFlags)
	mergeCommand := &ff.Command{
		Name:      "merge",
		ShortHelp: "merge per-rank trace files into one trace",
		LongHelp:  mergeLongHelp,
		Flags:     mergeFlags,
		Exec:      mergeConfig.Exec,
	}
	rootCommand.Subcommands = append(rootCommand.Subcommands, mergeCommand)

	// Config for `interpol stats`.
	statsConfig := &statsConfig{rootConfig: rootConfig}
	statsFlags := ff.NewFlagSet("stats").SetParent(rootFlags)
	statsConfig.register(statsFlags)
	statsCommand := &ff.Command{
		Name:      "stats",
		Usage:     "interpol stats [FLAGS] [FILE ...]",
		ShortHelp: "summarize the events in one or more trace files",
		LongHelp:  "Summarize the given trace files, or the merged trace in --dir if none are given.",
		Flags:     statsFlags,
		Exec:      statsConfig.Exec,
	}
	rootCommand.Subcommands = append(rootCommand.Subcommands, statsCommand)

	// Print help when appropriate.
	showHelp := true
	defer func() {
		errHelp := errors.Is(err, ff.ErrHelp) || errors.Is(err, ff.ErrNoExec)
		if showHelp || errHelp {
			fmt.Fprintf(stderr, "\n%s\n", ffhelp.Command(rootCommand))
		}
		if errHelp {
			err = nil
		}
	}()

	// Initial parsing.
	if err := rootCommand.Parse(args,
		ff.WithEnvVarPrefix("INTERPOL"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		return err
	}

	// Validation and set-up.
	{
		logger, err := interpolutil.NewLogger(stderr, rootConfig.logLevel, true)
		if err != nil {
			return err
		}
		rootConfig.logger = logger
	}

	// Run errors shouldn't show help by default.
	showHelp = false

	// Run the selected command.
	return rootCommand.Run(ctx)
}
