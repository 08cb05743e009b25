//go:build !unix

package scan

import "path/filepath"

func identify(path string) (any, error) {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(real)
	if err != nil {
		return nil, err
	}
	return filepath.Clean(abs), nil
}
