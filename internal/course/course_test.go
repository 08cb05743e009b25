package course

import (
	"os"
	"path/filepath"
	"testing"

	"mirava/internal/state"
)

func TestLocate_FindsAncestor(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(state.Path(root), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "section-1", "part-a")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}

	got, found, err := Locate(deep)
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if !found {
		t.Fatal("expected state file to be found")
	}
	if got != root {
		t.Errorf("Locate() = %q, want %q", got, root)
	}
}

func TestLocate_CurrentDirWins(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "inner")
	if err := os.MkdirAll(inner, 0755); err != nil {
		t.Fatal(err)
	}
	for _, d := range []string{outer, inner} {
		if err := os.WriteFile(state.Path(d), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got, found, err := Locate(inner)
	if err != nil || !found {
		t.Fatalf("Locate() found=%v err=%v", found, err)
	}
	if got != inner {
		t.Errorf("Locate() = %q, want nearest %q", got, inner)
	}
}

func TestLocate_NotFoundReturnsCwd(t *testing.T) {
	cwd := filepath.Join(t.TempDir(), "fresh")
	if err := os.MkdirAll(cwd, 0755); err != nil {
		t.Fatal(err)
	}

	got, found, err := Locate(cwd)
	if err != nil {
		t.Fatalf("Locate should not fail: %v", err)
	}
	if found {
		t.Skip("a state file exists above the temp dir on this machine")
	}
	if got != cwd {
		t.Errorf("Locate() = %q, want %q", got, cwd)
	}
	if _, err := os.Stat(state.Path(cwd)); !os.IsNotExist(err) {
		t.Error("Locate must not create the state file")
	}
}

func TestLocate_IgnoresDirectoryNamedLikeStateFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(state.Path(root), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	child := filepath.Join(root, "child")
	if err := os.MkdirAll(filepath.Join(child, state.FileName), 0755); err != nil {
		t.Fatal(err)
	}

	got, found, err := Locate(child)
	if err != nil || !found {
		t.Fatalf("Locate() found=%v err=%v", found, err)
	}
	if got != root {
		t.Errorf("Locate() = %q, want %q (directory must not count)", got, root)
	}
}

func TestRelativize(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name string
		abs  string
		root string
		want string
	}{
		{"direct child", sep + "c" + sep + "a.mp4", sep + "c", "a.mp4"},
		{"nested", filepath.Join(sep+"c", "s1", "b.mp4"), sep + "c", "s1/b.mp4"},
		{"root with trailing separator", sep + "c" + sep + "a.mp4", sep + "c" + sep, "a.mp4"},
		{"outside root unchanged", sep + "x" + sep + "a.mp4", sep + "c", sep + "x" + sep + "a.mp4"},
		{"empty root unchanged", "a.mp4", "", "a.mp4"},
		{"filesystem root", sep + "a.mp4", sep, "a.mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relativize(tt.abs, tt.root); got != tt.want {
				t.Errorf("Relativize(%q, %q) = %q, want %q", tt.abs, tt.root, got, tt.want)
			}
		})
	}
}
