//go:build unix

package project

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// isMountPoint reports whether dir is the filesystem root or sits on a
// different device than its parent.
func isMountPoint(dir string) (bool, error) {
	parent := filepath.Dir(dir)
	if parent == dir {
		return true, nil
	}

	var st, pst unix.Stat_t
	if err := unix.Stat(dir, &st); err != nil {
		return false, err
	}
	if err := unix.Stat(parent, &pst); err != nil {
		return false, err
	}

	return st.Dev != pst.Dev || st.Ino == pst.Ino, nil
}
