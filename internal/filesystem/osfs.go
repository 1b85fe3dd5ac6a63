package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// OsFs is the host filesystem. Walks are parallelised with fastwalk;
// Workers <= 0 uses the library default.
type OsFs struct {
	Workers int
}

func (o *OsFs) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (o *OsFs) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

func (o *OsFs) Getwd() (string, error) {
	return os.Getwd()
}

func (o *OsFs) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *OsFs) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(name, perm)
}

func (o *OsFs) MkdirAll(name string, perm os.FileMode) error {
	return os.MkdirAll(name, perm)
}

func (o *OsFs) Remove(name string) error {
	return os.Remove(name)
}

func (o *OsFs) RemoveAll(name string) error {
	return os.RemoveAll(name)
}

func (o *OsFs) Rename(oldname, newname string) error {
	return os.Rename(oldname, newname)
}

func (o *OsFs) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (o *OsFs) Open(name string) (File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *OsFs) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *OsFs) CreateTemp(dir, pattern string) (File, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o *OsFs) EvalSymlinks(name string) (string, error) {
	return filepath.EvalSymlinks(name)
}

func (o *OsFs) Walk(root string, fn fs.WalkDirFunc) error {
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: o.Workers,
	}

	// fastwalk calls back from several goroutines.
	var mu sync.Mutex
	return fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		mu.Lock()
		defer mu.Unlock()
		return fn(path, d, err)
	})
}
