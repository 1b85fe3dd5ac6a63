// Copyright 2024 uwu-tools Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/fserr"
)

func newReader(fsys filesystem.Filesystem) *Reader {
	return NewReader(fsys, clock.NewClockMock())
}

func TestPermissionsString(t *testing.T) {
	tests := []struct {
		name     string
		perm     Permissions
		expected string
	}{
		{"plain file", Permissions{Bits: 0o644}, "-rw-r--r--"},
		{"directory", Permissions{Bits: 0o755, Directory: true}, "drwxr-xr-x"},
		{"nothing", Permissions{}, "----------"},
		{"everything", Permissions{Bits: 0o777}, "-rwxrwxrwx"},
		{"owner only exec", Permissions{Bits: 0o100}, "---x------"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.perm.String())
		})
	}
}

func TestReadRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o640))

	md, err := newReader(&filesystem.OsFs{}).Read(path)
	require.NoError(t, err)

	assert.Equal(t, "a.txt", md.Name)
	assert.Equal(t, path, md.AbsolutePath)
	assert.Equal(t, RegularFile, md.Kind)
	assert.EqualValues(t, 5, md.SizeBytes)
	assert.False(t, md.Permissions.Directory)
	assert.Equal(t, clock.MockEpoch, md.ReadAt)
	assert.Equal(t, 0, md.ModifiedAt.Nanosecond())
	assert.NotEmpty(t, md.OwnerName)
	assert.NotEmpty(t, md.GroupName)
}

func TestReadDirectoryHasZeroSize(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "f"), make([]byte, 4096), 0o644))

	md, err := newReader(&filesystem.OsFs{}).Read(sub)
	require.NoError(t, err)

	assert.Equal(t, Directory, md.Kind)
	assert.True(t, md.IsDir())
	assert.Zero(t, md.SizeBytes)
	assert.True(t, md.Permissions.Directory)
	assert.Equal(t, "d", md.Permissions.String()[:1])
}

func TestReadSymlinkIsOther(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	r := newReader(&filesystem.OsFs{})

	md, err := r.Read(link)
	require.NoError(t, err)
	assert.Equal(t, Other, md.Kind)

	followed, err := r.ReadFollow(link)
	require.NoError(t, err)
	assert.Equal(t, RegularFile, followed.Kind)
	assert.Equal(t, "link", followed.Name)
}

func TestReadNotFound(t *testing.T) {
	_, err := newReader(&filesystem.OsFs{}).Read(filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fserr.ErrNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestReadAccessDenied(t *testing.T) {
	mfs := &filesystem.MockFs{}
	mfs.On("Lstat", "/secret").Return(nil, &fs.PathError{Op: "lstat", Path: "/secret", Err: fs.ErrPermission})

	_, err := newReader(mfs).Read("/secret")

	assert.True(t, errors.Is(err, fserr.ErrAccessDenied))
	mfs.AssertExpectations(t)
}

func TestUnknownOwnerDoesNotFailRead(t *testing.T) {
	mfs := &filesystem.MockFs{}
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 600, time.UTC)
	mfs.On("Lstat", "/x/file").Return(&filesystem.FakeFileInfo{
		FName:    "file",
		FSize:    42,
		FMode:    0o600,
		FModTime: mtime,
	}, nil)

	readAt := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	md, err := NewReader(mfs, clock.NewClockMockAt(readAt)).Read("/x/file")
	require.NoError(t, err)

	assert.Equal(t, readAt, md.ReadAt)
	assert.Equal(t, Unknown, md.OwnerName)
	assert.Equal(t, Unknown, md.GroupName)
	assert.EqualValues(t, 42, md.SizeBytes)
	assert.Equal(t, mtime.Truncate(time.Second), md.ModifiedAt)
	assert.Equal(t, "-rw-------", md.Permissions.String())
}

func TestOtherKindForDevices(t *testing.T) {
	mfs := &filesystem.MockFs{}
	mfs.On("Lstat", "/dev/null").Return(&filesystem.FakeFileInfo{
		FName: "null",
		FMode: fs.ModeDevice | fs.ModeCharDevice | 0o666,
	}, nil)

	md, err := NewReaderWithOwners(mfs, clock.NewClockMock(), StaticOwners{Owner: "root", Group: "root"}).Read("/dev/null")
	require.NoError(t, err)

	assert.Equal(t, Other, md.Kind)
	assert.Equal(t, "root", md.OwnerName)
}
