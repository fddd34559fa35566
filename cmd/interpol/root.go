package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffval"
	"go.uber.org/zap"

	"github.com/interpol/interpol"
	"github.com/interpol/interpol/internal/interpolfile"
	"github.com/interpol/interpol/internal/interpolutil"
)

type rootConfig struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	dir        string
	output     string
	logLevel   string
	format     string
	configFile string

	logger *zap.Logger
}

func (cfg *rootConfig) register(fs *ff.FlagSet) {
	fs.AddFlag(ff.FlagConfig{ShortName: 'd', LongName: "dir" /*    */, Value: ffval.NewValueDefault(&cfg.dir, interpolfile.DefaultDir) /*                          */, Usage: "directory containing trace files" /*                    */, Placeholder: "DIR"})
	fs.AddFlag(ff.FlagConfig{ShortName: 'o', LongName: "output" /* */, Value: ffval.NewValueDefault(&cfg.output, "compact") /*                                       */, Usage: "layout of written traces: readable, or compact" /*      */, Placeholder: "LAYOUT"})
	fs.AddFlag(ff.FlagConfig{ShortName: 'l', LongName: "log" /*    */, Value: ffval.NewEnum(&cfg.logLevel, logLevels()...) /*                                             */, Usage: "log level: i/info, d/debug, w/warn, e/error, n/none" /* */, Placeholder: "LEVEL"})
	fs.AddFlag(ff.FlagConfig{ShortName: 'f', LongName: "format" /* */, Value: ffval.NewEnum(&cfg.format, "text", "ndjson", "prettyjson") /*                        */, Usage: "result format: text, ndjson, prettyjson" /*             */, Placeholder: "FORMAT"})
	fs.AddFlag(ff.FlagConfig{ShortName: 0x0, LongName: "config" /* */, Value: ffval.NewValue(&cfg.configFile) /*                                                   */, Usage: "config file with one 'flag value' pair per line" /*     */, Placeholder: "FILE", NoDefault: true})
}

// logLevels returns the accepted --log values and their short forms, with the
// default first. INTERPOL_LOG configures both this flag and recording, so the
// two must accept the same names.
func logLevels() []string {
	levels := []string{"info", "i"}
	for _, level := range interpolutil.LogLevels {
		if level != "info" {
			levels = append(levels, level, level[:1])
		}
	}
	return levels
}

func (cfg *rootConfig) traceFormat() interpol.Format {
	return interpol.ParseFormat(cfg.output)
}

func (cfg *rootConfig) writeJSON(v any) error {
	enc := json.NewEncoder(cfg.stdout)
	switch cfg.format {
	case "prettyjson":
		enc.SetIndent("", "    ")
	case "ndjson":
		//
	default:
		//
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return nil
}
