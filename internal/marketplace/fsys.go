package marketplace

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem capability the validators need. Existence checks,
// document reads and the orphan walk go through it so rule logic stays
// testable without touching the pure checks.
type FS interface {
	FileExists(path string) bool
	ReadFile(path string) ([]byte, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OSFS is the real filesystem.
var OSFS FS = osFS{}

type osFS struct{}

func (osFS) FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func (osFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (osFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}
