// Package oplog records one JSONL line per state-changing command so the
// operator can see what was synced, set or marked, and where.
package oplog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
)

// OpsFile is the operation log file name inside the logs directory.
const OpsFile = "operations.log"

// Status values.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusPartial = "partial"
)

// Entry is one log line.
type Entry struct {
	ID        string         `json:"id"`
	Timestamp string         `json:"ts"`
	Command   string         `json:"cmd"`
	Root      string         `json:"root,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	Status    string         `json:"status"`
	Message   string         `json:"msg,omitempty"`
	Duration  int64          `json:"ms,omitempty"`
}

// NewEntry creates an Entry with a fresh id and the current timestamp.
func NewEntry(cmd, root, status string, duration time.Duration) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   cmd,
		Root:      root,
		Status:    status,
		Duration:  duration.Milliseconds(),
	}
}

// Write appends a single entry to dir/filename, creating dir when needed.
func Write(dir, filename string, e Entry) error {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return &os.PathError{Op: "mkdir", Path: dir, Err: os.ErrInvalid}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(e)
}

// WriteWithLimit appends an entry and trims the file to the newest
// maxEntries once it grows 20% past that. maxEntries <= 0 means unlimited.
func WriteWithLimit(dir, filename string, e Entry, maxEntries int) error {
	if err := Write(dir, filename, e); err != nil {
		return err
	}
	if maxEntries <= 0 {
		return nil
	}

	threshold := maxEntries + maxEntries/5
	path := filepath.Join(dir, filename)
	entries, err := readAllEntries(path)
	if err != nil || len(entries) <= threshold {
		return nil
	}
	return rewriteEntries(path, entries[len(entries)-maxEntries:])
}

// readAllEntries returns entries in file order (oldest first), skipping
// lines that do not parse.
func readAllEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		all = append(all, e)
	}
	return all, scanner.Err()
}

func rewriteEntries(path string, entries []Entry) error {
	var buf []byte
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode log entry: %w", err)
		}
		buf = append(buf, data...)
		buf = append(buf, '\n')
	}
	return renameio.WriteFile(path, buf, 0644)
}

// Read returns the last limit entries of dir/filename, newest first.
// limit <= 0 returns everything. A missing file is not an error.
func Read(dir, filename string, limit int) ([]Entry, error) {
	all, err := readAllEntries(filepath.Join(dir, filename))
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Clear truncates dir/filename.
func Clear(dir, filename string) error {
	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Truncate(path, 0)
}
