package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DryRunFs passes reads through to Base and turns every mutation into a
// log line. Writes land in a discard file.
type DryRunFs struct {
	Base Filesystem
	Log  *logrus.Entry
}

func NewDryRunFs(base Filesystem, log *logrus.Entry) *DryRunFs {
	return &DryRunFs{Base: base, Log: log}
}

func (d *DryRunFs) would(action string, fields logrus.Fields) {
	d.Log.WithFields(fields).Infof("dry-run: would %s", action)
}

func (d *DryRunFs) Stat(name string) (os.FileInfo, error) {
	return d.Base.Stat(name)
}

func (d *DryRunFs) Lstat(name string) (os.FileInfo, error) {
	return d.Base.Lstat(name)
}

func (d *DryRunFs) Getwd() (string, error) {
	return d.Base.Getwd()
}

func (d *DryRunFs) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.Base.ReadDir(name)
}

func (d *DryRunFs) Mkdir(name string, _ os.FileMode) error {
	d.would("create directory", logrus.Fields{"path": name})
	return nil
}

func (d *DryRunFs) MkdirAll(name string, _ os.FileMode) error {
	d.would("create directory tree", logrus.Fields{"path": name})
	return nil
}

func (d *DryRunFs) Remove(name string) error {
	d.would("remove", logrus.Fields{"path": name})
	return nil
}

func (d *DryRunFs) RemoveAll(name string) error {
	d.would("remove recursively", logrus.Fields{"path": name})
	return nil
}

func (d *DryRunFs) Rename(oldname, newname string) error {
	d.would("rename", logrus.Fields{"from": oldname, "to": newname})
	return nil
}

func (d *DryRunFs) Chmod(name string, mode os.FileMode) error {
	d.would("change mode", logrus.Fields{"path": name, "mode": mode})
	return nil
}

func (d *DryRunFs) Open(name string) (File, error) {
	return d.Base.Open(name)
}

func (d *DryRunFs) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) == 0 {
		return d.Base.OpenFile(name, flag, perm)
	}
	d.would("write", logrus.Fields{"path": name})
	return &discardFile{name: name}, nil
}

func (d *DryRunFs) CreateTemp(dir, pattern string) (File, error) {
	return &discardFile{name: filepath.Join(dir, pattern)}, nil
}

func (d *DryRunFs) EvalSymlinks(name string) (string, error) {
	return d.Base.EvalSymlinks(name)
}

func (d *DryRunFs) Walk(root string, fn fs.WalkDirFunc) error {
	return d.Base.Walk(root, fn)
}

type discardFile struct {
	name string
}

func (f *discardFile) Read([]byte) (int, error)    { return 0, fs.ErrInvalid }
func (f *discardFile) Write(p []byte) (int, error) { return len(p), nil }
func (f *discardFile) Close() error                { return nil }
func (f *discardFile) Name() string                { return f.name }
func (f *discardFile) Sync() error                 { return nil }
