// Package paths expands and prepares filesystem locations taken from config.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// Expand expands $VARS and a leading ~ to the current user's home directory
func Expand(path string) string {
	path = os.ExpandEnv(path)

	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	return filepath.Join(usr.HomeDir, path[2:])
}

// EnsureDir creates the parent directory of a file path
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}

// EnsureDirPath creates dirPath itself
func EnsureDirPath(dirPath string) error {
	return os.MkdirAll(dirPath, 0o700)
}

// Exists returns true if the path exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile returns true if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
