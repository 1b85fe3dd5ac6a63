package filesystem

import (
	"io/fs"
	"os"

	"github.com/stretchr/testify/mock"
)

type MockFs struct {
	mock.Mock
}

func (m *MockFs) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	return fileInfoArg(args, 0), args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) Lstat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	return fileInfoArg(args, 0), args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) Getwd() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) ReadDir(name string) ([]fs.DirEntry, error) {
	args := m.Called(name)
	entries, _ := args.Get(0).([]fs.DirEntry)
	return entries, args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) Mkdir(name string, perm os.FileMode) error {
	return m.Called(name, perm).Error(0) //nolint:wrapcheck
}

func (m *MockFs) MkdirAll(name string, perm os.FileMode) error {
	return m.Called(name, perm).Error(0) //nolint:wrapcheck
}

func (m *MockFs) Remove(name string) error {
	return m.Called(name).Error(0) //nolint:wrapcheck
}

func (m *MockFs) RemoveAll(name string) error {
	return m.Called(name).Error(0) //nolint:wrapcheck
}

func (m *MockFs) Rename(oldname, newname string) error {
	return m.Called(oldname, newname).Error(0) //nolint:wrapcheck
}

func (m *MockFs) Chmod(name string, mode os.FileMode) error {
	return m.Called(name, mode).Error(0) //nolint:wrapcheck
}

func (m *MockFs) Open(name string) (File, error) {
	args := m.Called(name)
	f, _ := args.Get(0).(File)
	return f, args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	args := m.Called(name, flag, perm)
	f, _ := args.Get(0).(File)
	return f, args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) CreateTemp(dir, pattern string) (File, error) {
	args := m.Called(dir, pattern)
	f, _ := args.Get(0).(File)
	return f, args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) EvalSymlinks(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (m *MockFs) Walk(root string, fn fs.WalkDirFunc) error {
	return m.Called(root, fn).Error(0) //nolint:wrapcheck
}

func fileInfoArg(args mock.Arguments, i int) os.FileInfo {
	info, _ := args.Get(i).(os.FileInfo)
	return info
}
