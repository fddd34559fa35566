// Package interpolfile names, lists, and atomically writes trace files.
package interpolfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/oklog/ulid/v2"
)

const (
	// DefaultDir is the working directory shared by every rank.
	DefaultDir = "interpol"

	// MergedName is the name of the consolidated trace file.
	MergedName = "interpol_traces.json"
)

// RankName returns the name of the trace file written by the given rank.
func RankName(rank int32) string {
	return fmt.Sprintf("rank%d_traces.json", rank)
}

var rankNameRegexp = regexp.MustCompile(`^rank(\d+)_traces\.json$`)

// ParseRankName returns the rank encoded in a trace file name, and false if the
// name isn't a per-rank trace file.
func ParseRankName(name string) (int32, bool) {
	m := rankNameRegexp.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	rank, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(rank), true
}

// RankFile is a per-rank trace file found in a working directory.
type RankFile struct {
	Rank int32
	Path string
}

// ListRankFiles returns every per-rank trace file in dir, ordered by rank. Other
// files, including the consolidated trace, are ignored.
func ListRankFiles(dir string) ([]RankFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []RankFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		rank, ok := ParseRankName(entry.Name())
		if !ok {
			continue
		}
		files = append(files, RankFile{
			Rank: rank,
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Rank < files[j].Rank
	})

	return files, nil
}

// WriteFile creates or replaces the file at path with whatever write produces.
// The parent directory is created if necessary. Content goes to a uniquely
// named temporary file in the same directory, which is renamed over path only
// after write succeeds, so readers never observe a partial file.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), ulid.Make()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}
