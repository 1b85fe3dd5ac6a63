package filesystem

import (
	"io/fs"
	"time"
)

// FakeFileInfo is a canned fs.FileInfo for mocks. The zero value is a
// one-byte regular file named "filename.ext".
type FakeFileInfo struct {
	FName    string
	FSize    int64
	FMode    fs.FileMode
	FModTime time.Time
	FSys     any
}

func (f *FakeFileInfo) Name() string {
	if f.FName == "" {
		return "filename.ext"
	}
	return f.FName
}

func (f *FakeFileInfo) Size() int64 {
	if f.FSize == 0 && !f.FMode.IsDir() {
		return 1
	}
	return f.FSize
}

func (f *FakeFileInfo) Mode() fs.FileMode {
	return f.FMode
}

func (f *FakeFileInfo) ModTime() time.Time {
	return f.FModTime
}

func (f *FakeFileInfo) IsDir() bool {
	return f.FMode.IsDir()
}

func (f *FakeFileInfo) Sys() any {
	return f.FSys
}
