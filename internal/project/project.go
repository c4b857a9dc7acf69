// Package project locates the root of a pipeline project.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	stageerr "github.com/next-trace/scg-pipeline-error/error"
)

const (
	// DirName is the marker directory at the project root.
	DirName = ".dvc"
	// ConfigName is the config file inside DirName.
	ConfigName = "config"
)

// Dir returns the marker directory of root.
func Dir(root string) string { return filepath.Join(root, DirName) }

// ConfigPath returns the config file path of root.
func ConfigPath(root string) string { return filepath.Join(root, DirName, ConfigName) }

// FindRoot walks up from start to the nearest directory holding DirName.
// The walk does not cross the mount point of start; when nothing is found
// the error is a NotAProject naming that mount point.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", start, err)
	}

	for {
		ok, err := isProject(dir)
		if err != nil {
			return "", err
		}
		if ok {
			return dir, nil
		}

		mount, err := isMountPoint(dir)
		if err != nil {
			return "", fmt.Errorf("stat %q: %w", dir, err)
		}
		if mount {
			return "", stageerr.NewNotAProject(dir)
		}
		dir = filepath.Dir(dir)
	}
}

func isProject(dir string) (bool, error) {
	fi, err := os.Stat(Dir(dir))
	switch {
	case err == nil:
		return fi.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", Dir(dir), err)
	}
}
