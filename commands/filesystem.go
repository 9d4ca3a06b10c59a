package commands

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileSystem is the read-only view used to validate and complete load paths.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
}

type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// FS adapts an fs.FS, names are resolved relative to its root.
type FS struct {
	fs.FS
}

var _ FileSystem = FS{}

func (f FS) Stat(name string) (fs.FileInfo, error) {
	return fs.Stat(f.FS, fsName(name))
}

func (f FS) ReadDir(name string) ([]fs.DirEntry, error) {
	return fs.ReadDir(f.FS, fsName(name))
}

func fsName(name string) string {
	name = path.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return name
}
