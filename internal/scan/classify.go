package scan

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Classifier decides whether a file is a video.
type Classifier interface {
	IsVideo(path string) bool
}

// DefaultExtensions is the built-in allow-list, without dots, lower case.
var DefaultExtensions = []string{"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v"}

// ExtClassifier matches by extension first and, when Sniff is set, falls back
// to content detection for files whose extension is not on the list.
type ExtClassifier struct {
	exts  map[string]struct{}
	Sniff bool

	detect func(path string) (*mimetype.MIME, error)
}

// NewExtClassifier builds a classifier from the default list plus extra.
// Extra entries may be written with or without the leading dot.
func NewExtClassifier(extra []string, sniff bool) *ExtClassifier {
	exts := make(map[string]struct{}, len(DefaultExtensions)+len(extra))
	for _, e := range DefaultExtensions {
		exts[e] = struct{}{}
	}
	for _, e := range extra {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts[e] = struct{}{}
		}
	}
	return &ExtClassifier{exts: exts, Sniff: sniff, detect: mimetype.DetectFile}
}

func (c *ExtClassifier) IsVideo(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := c.exts[ext]; ok && ext != "" {
		return true
	}
	if !c.Sniff {
		return false
	}
	detect := c.detect
	if detect == nil {
		detect = mimetype.DetectFile
	}
	mt, err := detect(path)
	if err != nil || mt == nil {
		return false
	}
	return strings.HasPrefix(mt.String(), "video/")
}
