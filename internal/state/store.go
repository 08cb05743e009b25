package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	mlog "mirava/internal/log"
)

// FileName is the state file kept at the course root.
const FileName = ".mirava_data.json"

// Path returns the state file path for the given course root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

type courseFile struct {
	CourseName string      `json:"course_name"`
	Videos     []videoFile `json:"videos"`
}

type videoFile struct {
	Path        string `json:"path"`
	DurationSec int64  `json:"duration_sec"`
	WatchedSec  int64  `json:"watched_sec"`
}

// Load reads the state file at root. A missing or unparsable file yields an
// empty Course: both mean "first run" for this course.
func Load(root string) (*Course, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Course{}, nil
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	c, err := Decode(data)
	if err != nil {
		logger := mlog.WithComponent("state")
		logger.Warn().Err(err).Str("path", path).Msg("state file unparsable, starting fresh")
		return &Course{}, nil
	}
	return c, nil
}

// Decode parses a state document. Unknown fields are ignored, records that
// don't carry a string path are dropped, and a non-string course_name is
// treated as unset.
func Decode(data []byte) (*Course, error) {
	var raw struct {
		CourseName json.RawMessage   `json:"course_name"`
		Videos     []json.RawMessage `json:"videos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	c := &Course{}
	if len(raw.CourseName) > 0 {
		var name string
		if err := json.Unmarshal(raw.CourseName, &name); err == nil {
			c.Name = name
		}
	}

	logger := mlog.WithComponent("state")
	for i, msg := range raw.Videos {
		var rec struct {
			Path        *string         `json:"path"`
			DurationSec json.RawMessage `json:"duration_sec"`
			WatchedSec  json.RawMessage `json:"watched_sec"`
		}
		if err := json.Unmarshal(msg, &rec); err != nil || rec.Path == nil {
			logger.Debug().Int("index", i).Msg("skipping video record without a path")
			continue
		}
		c.Videos = append(c.Videos, Video{
			Path:        *rec.Path,
			DurationSec: max(lenientSeconds(rec.DurationSec), 0),
			WatchedSec:  max(lenientSeconds(rec.WatchedSec), 0),
		})
	}
	return c, nil
}

// lenientSeconds reads a numeric field. Fractions are truncated; strings,
// nulls, out-of-range values and anything else read as 0.
func lenientSeconds(raw json.RawMessage) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	if v, err := n.Int64(); err == nil {
		return v
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0
	}
	return int64(f)
}

// Encode renders the course in the on-disk format: two-space indentation and
// a trailing newline.
func Encode(c *Course) ([]byte, error) {
	out := courseFile{
		CourseName: c.Name,
		Videos:     make([]videoFile, 0, len(c.Videos)),
	}
	for _, v := range c.Videos {
		out.Videos = append(out.Videos, videoFile{
			Path:        v.Path,
			DurationSec: v.DurationSec,
			WatchedSec:  v.WatchedSec,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save replaces the state file at root with the encoded course. The write
// goes through a temp file in root and a rename, so a failure leaves the
// previous file as it was.
func Save(root string, c *Course) error {
	path := Path(root)
	data, err := Encode(c)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(root),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger := mlog.WithComponent("state")
			logger.Debug().Err(err).Msg("cleanup pending state file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
