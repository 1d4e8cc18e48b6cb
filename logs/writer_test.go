package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteCreatesAndAppendsHexEncodedLines(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)

	if err := w.Write("substation-04", []byte{0x02, 'a', 0x03}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write("substation-04", []byte{0x06}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	logs, err := w.ListLogs("substation-04")
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d log files, want 1: %v", len(logs), logs)
	}

	data, err := os.ReadFile(w.GetLogPath("substation-04", logs[0]))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), data)
	}
	if !strings.Contains(lines[0], "026103") {
		t.Fatalf("got %q, want hex-encoded frame", lines[0])
	}
}

func TestRotateCreatesNewFileAndSymlink(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)
	defer w.Close()

	w.Write("m1", []byte{1})
	name, err := w.RotateWithName("m1", "archive-1")
	if err != nil {
		t.Fatalf("RotateWithName: %v", err)
	}
	if name != "archive-1.log" {
		t.Fatalf("got %q, want archive-1.log", name)
	}

	w.Write("m1", []byte{2})

	logsList, err := w.ListLogs("m1")
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logsList) != 2 {
		t.Fatalf("got %d logs, want 2 (pre- and post-rotation): %v", len(logsList), logsList)
	}
}

func TestCanRotateRespectsCooldown(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)
	defer w.Close()

	if !w.CanRotate("m1") {
		t.Fatal("expected CanRotate true before any rotation")
	}
	if _, err := w.RotateWithName("m1", "first"); err != nil {
		t.Fatalf("RotateWithName: %v", err)
	}
	if w.CanRotate("m1") {
		t.Fatal("expected CanRotate false immediately after a rotation")
	}
}

func TestCleanupRemovesOldLogsOnly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 1)

	meterDir := filepath.Join(dir, "m1")
	if err := os.MkdirAll(meterDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	oldPath := filepath.Join(meterDir, "old.log")
	if err := os.WriteFile(oldPath, []byte("x"), 0644); err != nil {
		t.Fatalf("write old log: %v", err)
	}
	old := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(oldPath, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	newPath := filepath.Join(meterDir, "new.log")
	if err := os.WriteFile(newPath, []byte("y"), 0644); err != nil {
		t.Fatalf("write new log: %v", err)
	}

	w.Cleanup()

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Fatal("expected old log to be removed")
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatal("expected new log to survive cleanup")
	}
}

func TestListLogsEmptyMeterDirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 30)

	logs, err := w.ListLogs("never-seen")
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("got %v, want empty", logs)
	}
}
