//go:build !unix

package project

import "path/filepath"

// isMountPoint only recognises the volume root on platforms without device ids.
func isMountPoint(dir string) (bool, error) {
	return filepath.Dir(dir) == dir, nil
}
