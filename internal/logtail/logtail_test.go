package logtail

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read missing = %v, %v", lines, err)
	}
}

func TestParseSlogRecord(t *testing.T) {
	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Warn("reload after add failed",
		slog.String("error", "timeout"),
		slog.Int64("user_id", 7),
	)

	rec, ok := Parse(strings.TrimSpace(buf.String()))
	if !ok {
		t.Fatalf("Parse rejected %q", buf.String())
	}
	if rec.Level != slog.LevelWarn || rec.Message != "reload after add failed" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Time.IsZero() {
		t.Fatalf("time not parsed")
	}
	if rec.Attrs["error"] != "timeout" || rec.Attrs["user_id"] != float64(7) {
		t.Fatalf("attrs = %v", rec.Attrs)
	}

	if _, ok := Parse("plain text"); ok {
		t.Fatalf("Parse accepted plain text")
	}
	if _, ok := Parse(`{"level":"INFO"}`); ok {
		t.Fatalf("Parse accepted a record without msg")
	}
}

func TestFormat(t *testing.T) {
	rec := Record{
		Time:    time.Date(2026, 10, 16, 8, 30, 0, 0, time.Local),
		Level:   slog.LevelInfo,
		Message: "logged in",
		Attrs:   map[string]any{"user_id": float64(7), "base_url": "https://api"},
	}
	want := "08:30:00 INFO  logged in base_url=https://api user_id=7"
	if got := Format(rec); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatLinesFiltersByLevel(t *testing.T) {
	input := []string{
		`{"time":"2026-10-16T08:30:00Z","level":"DEBUG","msg":"refresh failed","errors":1}`,
		`{"time":"2026-10-16T08:30:01Z","level":"ERROR","msg":"metrics server stopped"}`,
		"",
		"panic: something else",
	}
	got := FormatLines(input, slog.LevelInfo)
	if len(got) != 2 {
		t.Fatalf("FormatLines() = %q", got)
	}
	if !strings.Contains(got[0], "ERROR metrics server stopped") {
		t.Errorf("first line = %q", got[0])
	}
	if got[1] != "panic: something else" {
		t.Errorf("passthrough = %q", got[1])
	}
}
