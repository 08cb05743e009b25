package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func logsDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "state", "logs")
}

func TestWriteAndRead(t *testing.T) {
	dir := logsDir(t)

	e1 := Entry{Timestamp: "2026-01-01T10:00:00Z", Command: "sync", Root: "/c/go", Status: StatusOK, Duration: 100}
	e2 := Entry{Timestamp: "2026-01-01T10:01:00Z", Command: "set", Root: "/c/go", Status: StatusOK, Duration: 2}
	e3 := Entry{Timestamp: "2026-01-01T10:02:00Z", Command: "mark", Root: "/c/go", Status: StatusError, Message: "invalid video number"}

	for _, e := range []Entry{e1, e2, e3} {
		if err := Write(dir, OpsFile, e); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Read() got %d entries, want 3", len(entries))
	}
	if entries[0].Command != "mark" {
		t.Errorf("entries[0].Command = %q, want %q", entries[0].Command, "mark")
	}
	if entries[2].Command != "sync" {
		t.Errorf("entries[2].Command = %q, want %q", entries[2].Command, "sync")
	}
	if entries[0].Message != "invalid video number" {
		t.Errorf("entries[0].Message = %q", entries[0].Message)
	}
}

func TestReadWithLimit(t *testing.T) {
	dir := logsDir(t)

	for i := 0; i < 10; i++ {
		e := Entry{Timestamp: "2026-01-01T10:00:00Z", Command: "sync", Status: StatusOK}
		if err := Write(dir, OpsFile, e); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}

	entries, err := Read(dir, OpsFile, 3)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Read(limit=3) got %d entries, want 3", len(entries))
	}
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(logsDir(t), OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if entries != nil {
		t.Errorf("Read() on non-existent file should return nil, got %v", entries)
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	dir := logsDir(t)
	if err := Write(dir, OpsFile, Entry{Command: "sync", Status: StatusOK}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(filepath.Join(dir, OpsFile), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{broken\n\n")
	f.Close()
	if err := Write(dir, OpsFile, Entry{Command: "set", Status: StatusOK}); err != nil {
		t.Fatal(err)
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "set" || entries[1].Command != "sync" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestClear(t *testing.T) {
	dir := logsDir(t)

	if err := Write(dir, OpsFile, Entry{Command: "sync", Status: StatusOK}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := Clear(dir, OpsFile); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() after clear error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Read() after clear got %d entries, want 0", len(entries))
	}
}

func TestClearNonExistent(t *testing.T) {
	if err := Clear(logsDir(t), OpsFile); err != nil {
		t.Errorf("Clear() on non-existent file should not error, got: %v", err)
	}
}

func TestWriteWithArgs(t *testing.T) {
	dir := logsDir(t)

	e := Entry{
		Timestamp: "2026-01-01T10:00:00Z",
		Command:   "set",
		Args:      map[string]any{"video": "s1/intro.mp4", "value": "50%"},
		Status:    StatusOK,
	}
	if err := Write(dir, OpsFile, e); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Args["video"] != "s1/intro.mp4" {
		t.Errorf("Args[video] = %v", entries[0].Args["video"])
	}
	if entries[0].Args["value"] != "50%" {
		t.Errorf("Args[value] = %v", entries[0].Args["value"])
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("sync", "/c/rust", StatusOK, 350*time.Millisecond)
	if e.Command != "sync" || e.Root != "/c/rust" || e.Status != StatusOK {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Duration != 350 {
		t.Errorf("Duration = %d, want 350", e.Duration)
	}
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", e.Timestamp, err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", e.ID, err)
	}
	if other := NewEntry("sync", "", StatusOK, 0); other.ID == e.ID {
		t.Error("entries must get distinct ids")
	}
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := logsDir(t)
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("logs dir should not exist before Write()")
	}

	if err := Write(dir, OpsFile, Entry{Command: "sync", Status: StatusOK}); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("logs dir should exist after Write(), got: %v", err)
	}
}

func TestWriteRejectsFileAsDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, OpsFile, Entry{Command: "sync"}); err == nil {
		t.Fatal("expected error when logs dir is a regular file")
	}
}

func TestWriteWithLimit_Truncates(t *testing.T) {
	dir := logsDir(t)
	maxEntries := 10
	// threshold = 10 + 10/5 = 12; entry 13 triggers truncation
	total := 13

	for i := 0; i < total; i++ {
		e := Entry{
			Timestamp: fmt.Sprintf("2026-01-01T10:%02d:00Z", i),
			Command:   fmt.Sprintf("cmd-%d", i),
			Status:    StatusOK,
		}
		if err := WriteWithLimit(dir, OpsFile, e, maxEntries); err != nil {
			t.Fatalf("WriteWithLimit() error on entry %d: %v", i, err)
		}
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != maxEntries {
		t.Fatalf("got %d entries, want %d", len(entries), maxEntries)
	}
	if entries[0].Command != "cmd-12" {
		t.Errorf("newest entry = %q, want %q", entries[0].Command, "cmd-12")
	}
	if entries[len(entries)-1].Command != "cmd-3" {
		t.Errorf("oldest kept entry = %q, want %q", entries[len(entries)-1].Command, "cmd-3")
	}
}

func TestWriteWithLimit_ZeroMeansUnlimited(t *testing.T) {
	dir := logsDir(t)

	for i := 0; i < 20; i++ {
		if err := WriteWithLimit(dir, OpsFile, Entry{Command: "sync", Status: StatusOK}, 0); err != nil {
			t.Fatalf("WriteWithLimit() error: %v", err)
		}
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("got %d entries, want 20 (unlimited)", len(entries))
	}
}

func TestWriteWithLimit_HysteresisAvoidsTruncation(t *testing.T) {
	dir := logsDir(t)

	for i := 0; i < 11; i++ {
		e := Entry{Command: fmt.Sprintf("cmd-%d", i), Status: StatusOK}
		if err := WriteWithLimit(dir, OpsFile, e, 10); err != nil {
			t.Fatalf("WriteWithLimit() error: %v", err)
		}
	}

	entries, err := Read(dir, OpsFile, 0)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(entries) != 11 {
		t.Errorf("got %d entries, want 11 (hysteresis should prevent truncation)", len(entries))
	}
}
