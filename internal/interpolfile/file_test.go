package interpolfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseRankName(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]int32{
		"rank0_traces.json":   0,
		"rank17_traces.json":  17,
		"rank007_traces.json": 7,
	} {
		have, ok := ParseRankName(name)
		if !ok || have != want {
			t.Errorf("%s: want %d, have %d (%v)", name, want, have, ok)
		}
	}

	for _, name := range []string{
		MergedName,
		"rank_traces.json",
		"rank-1_traces.json",
		"rank1_traces.json.tmp",
		".rank1_traces.json.01H.tmp",
		"rank99999999999_traces.json",
	} {
		if rank, ok := ParseRankName(name); ok {
			t.Errorf("%s: want no match, have rank %d", name, rank)
		}
	}

	if have, ok := ParseRankName(RankName(42)); !ok || have != 42 {
		t.Errorf("RankName(42) doesn't parse: %d %v", have, ok)
	}
}

func TestListRankFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"rank10_traces.json", "rank2_traces.json", MergedName, "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "rank3_traces.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ListRankFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []RankFile{
		{Rank: 2, Path: filepath.Join(dir, "rank2_traces.json")},
		{Rank: 10, Path: filepath.Join(dir, "rank10_traces.json")},
	}
	if !cmp.Equal(want, files) {
		t.Fatal(cmp.Diff(want, files))
	}

	if _, err := ListRankFiles(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, have %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "out.json")

	for _, content := range []string{"first version", "second"} {
		content := content
		if err := WriteFile(path, func(w io.Writer) error {
			_, err := io.WriteString(w, content)
			return err
		}); err != nil {
			t.Fatal(err)
		}

		have, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(have) != content {
			t.Fatalf("want %q, have %q", content, have)
		}
	}

	assertOnlyFiles(t, dir, "out.json")
}

func TestWriteFileError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	err := WriteFile(path, func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("want %v, have %v", errBoom, err)
	}

	have, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(have) != "original" {
		t.Fatalf("file was modified: %q", have)
	}

	assertOnlyFiles(t, dir, "out.json")
}

func assertOnlyFiles(t *testing.T, dir string, names ...string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var have []string
	for _, e := range entries {
		have = append(have, e.Name())
	}
	if !cmp.Equal(names, have) {
		t.Fatal(cmp.Diff(names, have))
	}
}
