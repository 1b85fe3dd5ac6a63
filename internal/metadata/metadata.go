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

// Package metadata reads point-in-time snapshots of filesystem entries.
package metadata

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/fserr"
)

// Unknown is reported for owner or group when the id cannot be mapped to
// a name.
const Unknown = "unknown"

// Kind is the coarse type of an entry.
type Kind int

const (
	RegularFile Kind = iota
	Directory
	// Other covers symlinks, devices, sockets and pipes. It is listed but
	// most operations refuse to act on it.
	Other
)

func (k Kind) String() string {
	switch k {
	case RegularFile:
		return "file"
	case Directory:
		return "dir"
	default:
		return "other"
	}
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsDir():
		return Directory
	case mode.IsRegular():
		return RegularFile
	default:
		return Other
	}
}

// Permissions is the owner/group/other rwx triad plus the directory flag.
type Permissions struct {
	Bits      fs.FileMode
	Directory bool
}

func permissionsOf(mode fs.FileMode) Permissions {
	return Permissions{Bits: mode.Perm(), Directory: mode.IsDir()}
}

// String renders the ls-style form, e.g. "drwxr-xr-x".
func (p Permissions) String() string {
	const rwx = "rwxrwxrwx"
	var b strings.Builder
	b.Grow(10)
	if p.Directory {
		b.WriteByte('d')
	} else {
		b.WriteByte('-')
	}
	for i := 0; i < 9; i++ {
		if p.Bits&(1<<uint(8-i)) != 0 {
			b.WriteByte(rwx[i])
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// FileMetadata is an immutable snapshot. It says nothing about the
// entry after ReadAt.
type FileMetadata struct {
	Name         string
	AbsolutePath string
	Kind         Kind
	SizeBytes    int64
	Permissions  Permissions
	OwnerName    string
	GroupName    string
	ModifiedAt   time.Time
	ReadAt       time.Time
}

// IsDir reports whether the snapshot is of a directory.
func (m FileMetadata) IsDir() bool {
	return m.Kind == Directory
}

// Reader produces FileMetadata for absolute paths.
type Reader struct {
	fs     filesystem.Filesystem
	clock  clock.Clock
	owners OwnerLookup
}

// NewReader returns a Reader using the host's user and group databases.
func NewReader(fsys filesystem.Filesystem, clk clock.Clock) *Reader {
	return NewReaderWithOwners(fsys, clk, NewSystemOwners())
}

func NewReaderWithOwners(fsys filesystem.Filesystem, clk clock.Clock, owners OwnerLookup) *Reader {
	return &Reader{fs: fsys, clock: clk, owners: owners}
}

// Read snapshots path without following a final symlink, so links are
// reported as Other.
func (r *Reader) Read(path string) (FileMetadata, error) {
	info, err := r.fs.Lstat(path)
	if err != nil {
		return FileMetadata{}, fserr.FromOS("stat", path, err)
	}
	return r.FromInfo(path, info), nil
}

// ReadFollow snapshots the entry path points to, following symlinks.
func (r *Reader) ReadFollow(path string) (FileMetadata, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return FileMetadata{}, fserr.FromOS("stat", path, err)
	}
	return r.FromInfo(path, info), nil
}

// FromInfo builds a snapshot from an already obtained FileInfo.
func (r *Reader) FromInfo(path string, info fs.FileInfo) FileMetadata {
	kind := kindOf(info.Mode())

	var size int64
	if kind != Directory {
		size = info.Size()
	}

	owner, group := r.owners.Lookup(info)

	name := info.Name()
	if name == "" || name == "." {
		name = filepath.Base(path)
	}

	return FileMetadata{
		Name:         name,
		AbsolutePath: path,
		Kind:         kind,
		SizeBytes:    size,
		Permissions:  permissionsOf(info.Mode()),
		OwnerName:    owner,
		GroupName:    group,
		ModifiedAt:   info.ModTime().Truncate(time.Second),
		ReadAt:       r.clock.Now(),
	}
}
