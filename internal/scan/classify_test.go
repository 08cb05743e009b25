package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabriel-vasile/mimetype"
)

func TestExtClassifier_Extensions(t *testing.T) {
	c := NewExtClassifier([]string{".TS", "mpg", " "}, false)

	tests := []struct {
		path string
		want bool
	}{
		{"a.mp4", true},
		{"b.MKV", true},
		{"dir/c.webm", true},
		{"d.m4v", true},
		{"e.ts", true},
		{"f.mpg", true},
		{"notes.txt", false},
		{"mp4", false},
		{"archive.mp4.zip", false},
		{".mp4", true},
	}
	for _, tt := range tests {
		if got := c.IsVideo(tt.path); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExtClassifier_SniffFallback(t *testing.T) {
	c := NewExtClassifier(nil, true)

	dir := t.TempDir()
	// ISO base media header with an "isom" brand.
	clip := filepath.Join(dir, "clip.bin")
	header := []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	}
	if err := os.WriteFile(clip, header, 0644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "readme")
	if err := os.WriteFile(text, []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}

	if !c.IsVideo(clip) {
		t.Error("expected sniffed mp4 to be a video")
	}
	if c.IsVideo(text) {
		t.Error("plain text must not be a video")
	}
}

func TestExtClassifier_SniffErrorIsNotVideo(t *testing.T) {
	c := NewExtClassifier(nil, true)
	c.detect = func(string) (*mimetype.MIME, error) {
		return nil, errors.New("permission denied")
	}
	if c.IsVideo("locked.bin") {
		t.Error("detection failure must not classify as video")
	}
}

func TestExtClassifier_SniffDisabled(t *testing.T) {
	c := NewExtClassifier(nil, false)
	called := false
	c.detect = func(string) (*mimetype.MIME, error) {
		called = true
		return nil, nil
	}
	c.IsVideo("file.bin")
	if called {
		t.Error("detect called with sniffing disabled")
	}
}
