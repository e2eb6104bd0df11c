package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetProjectRootDir returns the absolute path of the directory holding go.mod.
//
// $PROJECT_ROOT wins when set. Otherwise the search walks up from the
// directory this file was compiled from, which works for `go run` and
// `go test` alike regardless of the working directory.
func GetProjectRootDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return filepath.Clean(root)
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("GetProjectRootDir: runtime.Caller failed")
	}

	for dir := filepath.Dir(thisFile); ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		if parent := filepath.Dir(dir); parent == dir {
			panic("GetProjectRootDir: go.mod not found above " + filepath.Dir(thisFile))
		}
	}
}

// ProjectPath joins elem onto the project root.
func ProjectPath(elem ...string) string {
	return filepath.Join(append([]string{GetProjectRootDir()}, elem...)...)
}
