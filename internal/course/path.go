package course

import (
	"os"
	"path/filepath"
	"strings"
)

// Relativize turns an absolute path under root into the course-relative key.
// When abs starts with root, the prefix and one following separator are
// stripped; otherwise abs comes back unchanged. This is a textual operation:
// two symlinked aliases of the same file produce two different keys.
func Relativize(abs, root string) string {
	if root == "" || !strings.HasPrefix(abs, root) {
		return abs
	}
	rel := abs[len(root):]
	if len(rel) > 0 && os.IsPathSeparator(rel[0]) {
		rel = rel[1:]
	}
	return filepath.ToSlash(rel)
}
