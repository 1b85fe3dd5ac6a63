package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoFs adapts any afero.Fs. It backs the --in-memory scratch mode and
// most engine tests.
type AferoFs struct {
	Fs afero.Fs

	// Wd is reported by Getwd; defaults to the filesystem root.
	Wd string
}

// NewMemFs returns an empty in-memory filesystem rooted at "/".
func NewMemFs() *AferoFs {
	return &AferoFs{Fs: afero.NewMemMapFs(), Wd: string(filepath.Separator)}
}

func (a *AferoFs) Stat(name string) (os.FileInfo, error) {
	return a.Fs.Stat(name)
}

func (a *AferoFs) Lstat(name string) (os.FileInfo, error) {
	if l, ok := a.Fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.Fs.Stat(name)
}

func (a *AferoFs) Getwd() (string, error) {
	if a.Wd == "" {
		return string(filepath.Separator), nil
	}
	return a.Wd, nil
}

func (a *AferoFs) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.Fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *AferoFs) Mkdir(name string, perm os.FileMode) error {
	return a.Fs.Mkdir(name, perm)
}

func (a *AferoFs) MkdirAll(name string, perm os.FileMode) error {
	return a.Fs.MkdirAll(name, perm)
}

func (a *AferoFs) Remove(name string) error {
	return a.Fs.Remove(name)
}

func (a *AferoFs) RemoveAll(name string) error {
	return a.Fs.RemoveAll(name)
}

func (a *AferoFs) Rename(oldname, newname string) error {
	return a.Fs.Rename(oldname, newname)
}

func (a *AferoFs) Chmod(name string, mode os.FileMode) error {
	return a.Fs.Chmod(name, mode)
}

func (a *AferoFs) Open(name string) (File, error) {
	f, err := a.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a *AferoFs) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	f, err := a.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (a *AferoFs) CreateTemp(dir, pattern string) (File, error) {
	f, err := afero.TempFile(a.Fs, dir, pattern)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// EvalSymlinks only checks existence; in-memory trees carry no links.
func (a *AferoFs) EvalSymlinks(name string) (string, error) {
	if _, err := a.Fs.Stat(name); err != nil {
		return "", err
	}
	return filepath.Clean(name), nil
}

func (a *AferoFs) Walk(root string, fn fs.WalkDirFunc) error {
	return afero.Walk(a.Fs, root, func(path string, info os.FileInfo, err error) error {
		var d fs.DirEntry
		if info != nil {
			d = fs.FileInfoToDirEntry(info)
		}
		return fn(path, d, err)
	})
}
