// Package filesystem is the seam between the shell and the host
// filesystem. Everything above it talks to the Filesystem interface so it
// can run against the OS, an in-memory tree, a dry-run decorator or a
// mock.
package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// File is the subset of *os.File the engine needs.
type File interface {
	io.ReadWriteCloser
	Name() string
	Sync() error
}

type Filesystem interface {
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	Getwd() (string, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Mkdir(name string, perm os.FileMode) error
	MkdirAll(name string, perm os.FileMode) error
	Remove(name string) error
	RemoveAll(name string) error
	Rename(oldname, newname string) error
	Chmod(name string, mode os.FileMode) error
	Open(name string) (File, error)
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	CreateTemp(dir, pattern string) (File, error)
	EvalSymlinks(name string) (string, error)

	// Walk visits root and everything below it without following
	// symlinks. fn is never invoked concurrently. Visit order is
	// unspecified.
	Walk(root string, fn fs.WalkDirFunc) error
}
