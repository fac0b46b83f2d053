// Package logging provides tests for loggers, run logs and tail output.
package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "warn", Format: "logfmt"})

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected logfmt output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"WARNING", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	if ParseFormatter("json") != log.JSONFormatter {
		t.Error("json")
	}
	if ParseFormatter("logfmt") != log.LogfmtFormatter {
		t.Error("logfmt")
	}
	if ParseFormatter("anything") != log.TextFormatter {
		t.Error("default should be text")
	}
}

func TestNewRunLogger(t *testing.T) {
	t.Run("creates nested directory and file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs", "nested")

		rl, err := NewRunLogger(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer rl.Close()

		if rl.RunID == "" {
			t.Error("expected RunID to be set")
		}
		if filepath.Dir(rl.LogPath) != dir {
			t.Errorf("LogPath %s not inside %s", rl.LogPath, dir)
		}
		if !strings.HasSuffix(rl.LogPath, LogExt) {
			t.Errorf("LogPath %s missing %s suffix", rl.LogPath, LogExt)
		}
		if _, err := os.Stat(rl.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty dir returns error", func(t *testing.T) {
		if _, err := NewRunLogger(""); err == nil {
			t.Fatal("expected error for empty dir")
		}
	})

	t.Run("writer receives log output", func(t *testing.T) {
		rl, err := NewRunLogger(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		New(rl.Writer(), Options{}).Info("task added", "id", "t1")
		if err := rl.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		data, err := os.ReadFile(rl.LogPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "task added") {
			t.Errorf("log file content: %q", data)
		}
	})
}

func TestRunLoggerCloseNil(t *testing.T) {
	var rl *RunLogger
	if err := rl.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestRunID(t *testing.T) {
	parts := strings.Split(runID(), "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts separated by '-', got %v", parts)
	}
	if _, err := time.Parse("20060102", parts[0]); err != nil {
		t.Errorf("first part not a valid date: %v", err)
	}
	if _, err := time.Parse("150405", parts[1]); err != nil {
		t.Errorf("second part not a valid time: %v", err)
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("picks newest log file", func(t *testing.T) {
		dir := t.TempDir()
		old := filepath.Join(dir, "20250101-120000-1.log")
		newer := filepath.Join(dir, "20250101-120001-2.log")
		os.WriteFile(old, []byte("a"), 0644)
		os.WriteFile(newer, []byte("b"), 0644)
		past := time.Now().Add(-time.Hour)
		os.Chtimes(old, past, past)

		latest, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if latest != newer {
			t.Errorf("latest: got %s, want %s", latest, newer)
		}
	})

	t.Run("ignores other files and directories", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644)
		os.Mkdir(filepath.Join(dir, "sub.log"), 0755)

		latest, err := FindLatestLog(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if latest != "" {
			t.Errorf("expected no log, got %s", latest)
		}
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		latest, err := FindLatestLog(filepath.Join(t.TempDir(), "missing"))
		if err != nil || latest != "" {
			t.Errorf("got %q, %v", latest, err)
		}
	})
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTailLog(t *testing.T) {
	ctx := context.Background()

	t.Run("whole file when n is zero", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		content := "line1\nline2\nline3\n"
		os.WriteFile(path, []byte(content), 0644)

		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 0, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != content {
			t.Errorf("got %q, want %q", buf.String(), content)
		}
	})

	t.Run("last lines of a large file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		var b strings.Builder
		for i := 0; i < 500; i++ {
			b.WriteString(strings.Repeat("x", 120))
			b.WriteString("\n")
		}
		b.WriteString("final line\n")
		os.WriteFile(path, []byte(b.String()), 0644)

		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, path, 2, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasSuffix(buf.String(), "final line\n") {
			t.Error("expected last line to be present")
		}
		if buf.Len() >= len(b.String()) {
			t.Error("expected only the tail of the file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, filepath.Join(t.TempDir(), "none.log"), 0, false); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("follow picks up appended data and stops on cancel", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")
		os.WriteFile(path, []byte("initial\n"), 0644)

		ctx, cancel := context.WithCancel(context.Background())
		var buf syncBuffer
		done := make(chan error, 1)
		go func() {
			done <- TailLog(ctx, &buf, path, 0, true)
		}()

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			t.Fatal(err)
		}
		f.WriteString("appended\n")
		f.Close()

		deadline := time.Now().Add(2 * time.Second)
		for !strings.Contains(buf.String(), "appended") && time.Now().Before(deadline) {
			time.Sleep(20 * time.Millisecond)
		}
		cancel()

		if err := <-done; err != nil {
			t.Fatalf("TailLog: %v", err)
		}
		got := buf.String()
		if !strings.Contains(got, "initial") || !strings.Contains(got, "appended") {
			t.Errorf("follow output: %q", got)
		}
	})
}
