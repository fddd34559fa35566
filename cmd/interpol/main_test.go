package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interpol/interpol/interpolmerge"
	"github.com/interpol/interpol/interpolrec"
)

func recordJob(t *testing.T, dir string) {
	t.Helper()

	for rank := int32(0); rank < 2; rank++ {
		r := interpolrec.NewRecorder(interpolrec.RecorderConfig{Dir: dir})
		must(t, r.RecordInit(rank, 0, 0))
		if rank == 0 {
			must(t, r.RecordSend(0, 1, 8, 0, 0, 10, 2))
		} else {
			must(t, r.RecordRecv(1, 0, 8, 0, 0, 12, 3))
		}
		must(t, r.RecordFinalize(rank, 50+5*uint64(rank), 1))
	}
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outbuf, errbuf bytes.Buffer
	err = exec(context.Background(), strings.NewReader(""), &outbuf, &errbuf, args)
	return outbuf.String(), errbuf.String(), err
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)

	stdout, _, err := runCommand(t, "merge", "--dir", dir, "--log", "none")
	must(t, err)

	path := filepath.Join(dir, "interpol_traces.json")
	if want := "merged 6 events from 2 files into " + path; !strings.HasPrefix(stdout, want) {
		t.Fatalf("want prefix %q, have %q", want, stdout)
	}

	evs, err := interpolmerge.ReadTraceFile(path)
	must(t, err)
	if len(evs) != 6 {
		t.Fatalf("want 6 events, have %d", len(evs))
	}
}

func TestMergeReadableFromEnv(t *testing.T) {
	dir := t.TempDir()
	recordJob(t, dir)

	t.Setenv("INTERPOL_DIR", dir)
	t.Setenv("INTERPOL_OUTPUT", "readable")
	t.Setenv("INTERPOL_LOG", "none")

	_, _, err := runCommand(t, "merge")
	must(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "interpol_traces.json"))
	must(t, err)
	if !bytes.HasPrefix(data, []byte("[\n  {\n")) {
		t.Fatalf("want readable output, have %q", data)
	}
}

func TestMergeLogLevelFromEnv(t *testing.T) {
	for _, level := range []string{"error", "e", "warn", "none"} {
		t.Run(level, func(t *testing.T) {
			dir := t.TempDir()
			recordJob(t, dir)

			t.Setenv("INTERPOL_LOG", level)

			stdout, stderr, err := runCommand(t, "merge", "--dir", dir)
			must(t, err)
			if want := "merged 6 events"; !strings.HasPrefix(stdout, want) {
				t.Fatalf("want prefix %q, have %q (stderr %q)", want, stdout, stderr)
			}
		})
	}
}

func TestMergeJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)

	stdout, _, err := runCommand(t, "merge", "-d", dir, "-l", "n", "--format", "prettyjson")
	must(t, err)

	var res struct {
		Path  string              `json:"path"`
		Files []string            `json:"files"`
		Stats *interpolmerge.Stats `json:"stats"`
	}
	must(t, json.Unmarshal([]byte(stdout), &res))

	if want, have := filepath.Join(dir, "interpol_traces.json"), res.Path; want != have {
		t.Errorf("path: want %q, have %q", want, have)
	}
	if want, have := 2, len(res.Files); want != have {
		t.Errorf("files: want %d, have %d", want, have)
	}
	if want, have := 6, res.Stats.Overall.Events; want != have {
		t.Errorf("events: want %d, have %d", want, have)
	}
}

func TestMergeError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)
	must(t, os.WriteFile(filepath.Join(dir, "rank7_traces.json"), []byte("[{"), 0o644))

	stdout, stderr, err := runCommand(t, "merge", "--dir", dir, "--log", "none")
	if err == nil {
		t.Fatalf("want error, have none")
	}
	if !strings.Contains(err.Error(), "rank7_traces.json") {
		t.Errorf("error doesn't name the bad file: %v", err)
	}
	if stdout != "" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if stderr != "" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)

	_, _, err := runCommand(t, "merge", "--dir", dir, "--log", "none")
	must(t, err)

	stdout, _, err := runCommand(t, "stats", "--dir", dir, "--log", "none", "--ranks")
	must(t, err)
	for _, want := range []string{"EVENTS", "MpiInit", "MpiSend", "MpiRecv", "MpiFinalize", "RANK"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output doesn't contain %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = runCommand(t, "stats", "--log", "none", "--format", "ndjson", filepath.Join(dir, "rank0_traces.json"), filepath.Join(dir, "rank1_traces.json"))
	must(t, err)

	var stats interpolmerge.Stats
	must(t, json.Unmarshal([]byte(stdout), &stats))
	if want, have := 6, stats.Overall.Events; want != have {
		t.Errorf("events: want %d, have %d", want, have)
	}
	if want, have := 2, stats.Kinds["MpiInit"]; want != have {
		t.Errorf("MpiInit: want %d, have %d", want, have)
	}
	if want, have := uint64(8), stats.Ranks[1].BytesRecv; want != have {
		t.Errorf("rank 1 bytes received: want %d, have %d", want, have)
	}
}

func TestStatsAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)

	_, _, err := runCommand(t, "merge", "--dir", dir, "--log", "none")
	must(t, err)

	merged, _, err := runCommand(t, "stats", "--dir", dir, "--log", "none", "--format", "ndjson")
	must(t, err)

	perRank, _, err := runCommand(t, "stats", "--log", "none", "--format", "ndjson", filepath.Join(dir, "rank1_traces.json"), filepath.Join(dir, "rank0_traces.json"))
	must(t, err)

	if merged != perRank {
		t.Fatalf("stats differ\nmerged:   %s\nper rank: %s", merged, perRank)
	}
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	recordJob(t, dir)

	config := filepath.Join(t.TempDir(), "interpol.conf")
	must(t, os.WriteFile(config, []byte("dir "+dir+"\nlog none\noutput readable\n"), 0o644))

	_, _, err := runCommand(t, "merge", "--config", config)
	must(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "interpol_traces.json"))
	must(t, err)
	if !bytes.HasPrefix(data, []byte("[\n  {\n")) {
		t.Fatalf("want readable output, have %q", data)
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{}, {"-h"}, {"merge", "--help"}} {
		_, stderr, err := runCommand(t, args...)
		if err != nil {
			t.Errorf("%v: %v", args, err)
		}
		if !strings.Contains(stderr, "merge") {
			t.Errorf("%v: help doesn't mention merge: %q", args, stderr)
		}
	}
}

func TestInvalidFlags(t *testing.T) {
	t.Parallel()

	if _, _, err := runCommand(t, "merge", "--log", "loud"); err == nil {
		t.Errorf("--log loud: want error")
	}
	if _, _, err := runCommand(t, "merge", "--format", "xml"); err == nil {
		t.Errorf("--format xml: want error")
	}
	if _, _, err := runCommand(t, "merge", "--dir", t.TempDir(), "--log", "none", "extra"); err == nil {
		t.Errorf("extra argument: want error")
	}
}
