//go:build unix

package scan

import "golang.org/x/sys/unix"

type dirKey struct {
	dev uint64
	ino uint64
}

// identify follows symlinks, so an alias and its target share a key.
func identify(path string) (any, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, err
	}
	return dirKey{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}
