package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the subset of filesystem operations used to inspect link state
type FS interface {
	// Stat follows symlinks
	Stat(name string) (fs.FileInfo, error)

	// Lstat does not follow symlinks
	Lstat(name string) (fs.FileInfo, error)

	// ReadDir returns entries sorted by filename
	ReadDir(name string) ([]fs.DirEntry, error)

	Readlink(name string) (string, error)
}

// NewOS returns an FS backed by the os package
func NewOS() FS {
	return hostFS{}
}

type hostFS struct{}

func (hostFS) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (hostFS) Lstat(name string) (fs.FileInfo, error)     { return os.Lstat(name) }
func (hostFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (hostFS) Readlink(name string) (string, error)       { return os.Readlink(name) }

// LinkDestination returns where the symlink at path points, made absolute
// against the link's directory. The destination need not exist.
func LinkDestination(fsys FS, path string) (string, error) {
	dest, err := fsys.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return filepath.Clean(dest), nil
}
