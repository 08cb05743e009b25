// Package course finds the course root and maps files under it to the
// relative paths used as video identities.
package course

import (
	"fmt"
	"os"
	"path/filepath"

	"mirava/internal/state"
)

// Locate walks upward from cwd looking for the state file. It returns the
// first directory (cwd included) that holds it as a regular file, with
// found=true. When the filesystem root is reached without a match, cwd is
// returned with found=false: a new course starts there.
func Locate(cwd string) (root string, found bool, err error) {
	start, err := filepath.Abs(cwd)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	start = filepath.Clean(start)

	dir := start
	for {
		if hasStateFile(dir) {
			return dir, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start, false, nil
		}
		dir = parent
	}
}

func hasStateFile(dir string) bool {
	info, err := os.Stat(state.Path(dir))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
