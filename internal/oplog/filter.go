package oplog

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Filter narrows log entries. Zero fields match everything.
type Filter struct {
	Cmd   string    // command name, case-insensitive
	Root  string    // course root, compared after cleaning
	Since time.Time // entries before this are dropped
}

// IsEmpty returns true when no criteria are set.
func (f Filter) IsEmpty() bool {
	return f.Cmd == "" && f.Root == "" && f.Since.IsZero()
}

// FilterEntries returns the entries matching f, in the original order.
func FilterEntries(entries []Entry, f Filter) []Entry {
	if f.IsEmpty() {
		return entries
	}

	cmd := strings.ToLower(f.Cmd)
	root := ""
	if f.Root != "" {
		root = filepath.Clean(f.Root)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if cmd != "" && strings.ToLower(e.Command) != cmd {
			continue
		}
		if root != "" && (e.Root == "" || filepath.Clean(e.Root) != root) {
			continue
		}
		if !f.Since.IsZero() {
			ts, err := time.Parse(time.RFC3339, e.Timestamp)
			if err != nil || ts.Before(f.Since) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// ParseSince accepts "30m", "2h", "2d", "1w", a date (2006-01-02) or RFC3339.
func ParseSince(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if len(s) >= 2 {
		if n, err := strconv.Atoi(s[:len(s)-1]); err == nil && n > 0 {
			now := time.Now()
			switch s[len(s)-1] {
			case 'm':
				return now.Add(-time.Duration(n) * time.Minute), nil
			case 'h':
				return now.Add(-time.Duration(n) * time.Hour), nil
			case 'd':
				return now.AddDate(0, 0, -n), nil
			case 'w':
				return now.AddDate(0, 0, -n*7), nil
			}
		}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time format %q (use: 30m, 2h, 2d, 1w, 2006-01-02, or RFC3339)", s)
}
