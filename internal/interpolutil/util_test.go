package interpolutil

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestHumanizeBytes(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    uint64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{2048, "2.0KB"},
		{200 * 1024, "200KB"},
		{3 * 1024 * 1024, "3.0MB"},
		{5 * 1024 * 1024 * 1024, "5.0GB"},
	} {
		if have := HumanizeBytes(tc.n); have != tc.want {
			t.Errorf("%d: want %q, have %q", tc.n, tc.want, have)
		}
	}
}

func TestHumanizeCount(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{5142, "5.1K"},
		{32756, "33K"},
		{2_500_000, "2.5M"},
		{750_000_000, "750M"},
		{3_000_000_000, "3.0G"},
	} {
		if have := HumanizeCount(tc.n); have != tc.want {
			t.Errorf("%d: want %q, have %q", tc.n, tc.want, have)
		}
	}
}

func TestHumanizeDuration(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{1234 * time.Millisecond, "1.23s"},
		{2*time.Hour + 3*time.Minute + 4*time.Second, "2h3m"},
		{1500 * time.Nanosecond, "1µs"},
	} {
		if have := HumanizeDuration(tc.d); have != tc.want {
			t.Errorf("%v: want %q, have %q", tc.d, tc.want, have)
		}
	}
}

func TestLazy(t *testing.T) {
	t.Parallel()

	var calls int
	l := NewLazy(func() int { calls++; return 42 })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if have := l.Get(); have != 42 {
				t.Errorf("want 42, have %d", have)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("init called %d times", calls)
	}

	prev, ok := l.Set(7)
	if prev != 42 || !ok {
		t.Fatalf("Set: have %d %v", prev, ok)
	}
	if have := l.Get(); have != 7 {
		t.Fatalf("want 7, have %d", have)
	}
}

func TestLazySetBeforeGet(t *testing.T) {
	t.Parallel()

	l := NewLazy(func() string { t.Error("init called"); return "init" })

	prev, ok := l.Set("set")
	if prev != "" || ok {
		t.Fatalf("Set: have %q %v", prev, ok)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if have := l.Get(); have != "set" {
				t.Errorf("want set, have %q", have)
			}
		}()
	}
	wg.Wait()
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	for s, want := range map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"D":     zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		" e ":   zapcore.ErrorLevel,
	} {
		have, enabled, err := ParseLogLevel(s)
		if err != nil || !enabled || have != want {
			t.Errorf("%q: want %v, have %v (%v, %v)", s, want, have, enabled, err)
		}
	}

	if _, enabled, err := ParseLogLevel("none"); err != nil || enabled {
		t.Errorf("none: have %v, %v", enabled, err)
	}

	if _, _, err := ParseLogLevel("loud"); err == nil {
		t.Errorf("loud: want error")
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", false)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, have %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["msg"] != "shown" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %v", entry)
	}

	buf.Reset()
	nop, err := NewLogger(&buf, "none", true)
	if err != nil {
		t.Fatal(err)
	}
	nop.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("want no output, have %q", buf.String())
	}
}
