package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mirava/internal/config"
	"mirava/internal/probe"
	"mirava/internal/state"
	"mirava/internal/ui"
)

// captureUI redirects ui output for the duration of the test.
func captureUI(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := ui.Out, ui.ErrOut
	ui.Out, ui.ErrOut = out, errOut
	t.Cleanup(func() { ui.Out, ui.ErrOut = prevOut, prevErr })
	return out, errOut
}

// isolateEnv keeps config and operation logs inside the test's temp dir.
func isolateEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MIRAVA_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("MIRAVA_FFPROBE_BIN", "")
	t.Setenv("MIRAVA_LOG_LEVEL", "")
}

// stubProber makes every sync in the test use fixed durations by base name.
func stubProber(t *testing.T, durations map[string]int64) {
	t.Helper()
	prev := newProber
	newProber = func(*config.Config) (probe.Prober, error) {
		return probe.ProberFunc(func(_ context.Context, path string) (int64, error) {
			if d, ok := durations[filepath.Base(path)]; ok {
				return d, nil
			}
			return 0, errors.New("unsupported container")
		}), nil
	}
	t.Cleanup(func() { newProber = prev })
}

func stubPrompt(t *testing.T, input string) {
	t.Helper()
	prev := promptInput
	promptInput = strings.NewReader(input)
	t.Cleanup(func() { promptInput = prev })
}

func writeFiles(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func saveCourse(t *testing.T, root string, c *state.Course) {
	t.Helper()
	if err := state.Save(root, c); err != nil {
		t.Fatalf("save course: %v", err)
	}
}

func loadCourse(t *testing.T, root string) *state.Course {
	t.Helper()
	c, err := state.Load(root)
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	return c
}

func readState(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(state.Path(root))
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	return string(data)
}

func testRuntime(root string) *runtime {
	return &runtime{cfg: &config.Config{}, root: root, found: true}
}
