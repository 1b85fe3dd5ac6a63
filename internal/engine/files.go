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

package engine

import (
	"bytes"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// CreateDirectory creates name (or the whole chain when createParents is
// set). The target must not exist.
func (e *Engine) CreateDirectory(name string, createParents bool) (string, error) {
	if name == "" {
		return "", fserr.Wrap(fserr.UsageError, "mkdir", "", errEmptyName)
	}
	target := e.resolve(name)

	if _, err := e.fs.Lstat(target); err == nil {
		return "", fserr.New(fserr.AlreadyExists, "mkdir", target)
	}

	var err error
	if createParents {
		err = e.fs.MkdirAll(target, dirPerm)
	} else {
		err = e.fs.Mkdir(target, dirPerm)
	}
	if err != nil {
		return "", fserr.FromOS("mkdir", target, err)
	}

	e.log.WithFields(logrus.Fields{"path": target, "parents": createParents}).Debug("created directory")
	return target, nil
}

// CreateFile creates an empty regular file. The target must not exist.
func (e *Engine) CreateFile(name string) (string, error) {
	if name == "" {
		return "", fserr.Wrap(fserr.UsageError, "touch", "", errEmptyName)
	}
	target := e.resolve(name)

	f, err := e.fs.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, filePerm)
	if err != nil {
		return "", fserr.FromOS("touch", target, err)
	}
	if err := f.Close(); err != nil {
		return "", fserr.FromOS("touch", target, err)
	}

	e.log.WithField("path", target).Debug("created file")
	return target, nil
}

// ReadFile returns the content of a regular file.
func (e *Engine) ReadFile(path string) ([]byte, error) {
	target := e.resolve(path)

	md, err := e.reader.ReadFollow(target)
	if err != nil {
		return nil, withOp("read", err)
	}
	if err := requireRegular("read", md); err != nil {
		return nil, err
	}

	f, err := e.fs.Open(target)
	if err != nil {
		return nil, fserr.FromOS("read", target, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fserr.FromOS("read", target, err)
	}
	return b, nil
}

// WriteFile stores content in name. With appendMode the content is
// appended, creating the file if needed. Otherwise an existing file is
// only replaced when overwrite is set, and the replacement is atomic.
func (e *Engine) WriteFile(name string, content []byte, appendMode, overwrite bool) (string, error) {
	if name == "" {
		return "", fserr.Wrap(fserr.UsageError, "write", "", errEmptyName)
	}
	target := e.resolve(name)

	md, err := e.reader.ReadFollow(target)
	exists := err == nil
	if err != nil && !fserr.IsKind(err, fserr.NotFound) {
		return "", withOp("write", err)
	}
	if exists {
		if err := requireRegular("write", md); err != nil {
			return "", err
		}
	}

	if appendMode {
		f, err := e.fs.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
		if err != nil {
			return "", fserr.FromOS("write", target, err)
		}
		if _, err := f.Write(content); err != nil {
			f.Close()
			return "", fserr.FromOS("write", target, err)
		}
		if err := f.Close(); err != nil {
			return "", fserr.FromOS("write", target, err)
		}
		return target, nil
	}

	if exists && !overwrite {
		return "", confirmation("write", target, fserr.AlreadyExists)
	}

	mode, writeTo := filePerm, target
	if exists {
		mode, writeTo = md.Permissions.Bits, e.realPath(target)
	}
	if err := e.writeAtomic("write", writeTo, bytes.NewReader(content), mode); err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"path": target, "bytes": len(content)}).Debug("wrote file")
	return target, nil
}

// Remove deletes path. A directory is only removed, with all its
// content, when recursive is set; without it the caller gets a
// ConfirmationRequired error that also matches IsADirectory and nothing
// is touched. Symlinks are removed, never followed.
func (e *Engine) Remove(path string, recursive bool) (string, error) {
	if path == "" {
		return "", fserr.Wrap(fserr.UsageError, "rm", "", errEmptyName)
	}
	target := e.resolve(path)

	md, err := e.reader.Read(target)
	if err != nil {
		return "", withOp("rm", err)
	}

	if md.IsDir() {
		if !recursive {
			return "", confirmation("rm", target, fserr.IsADirectory)
		}
		if err := e.retry(func() error { return e.fs.RemoveAll(target) }); err != nil {
			return "", fserr.FromOS("rm", target, err)
		}
	} else {
		if err := e.retry(func() error { return e.fs.Remove(target) }); err != nil {
			return "", fserr.FromOS("rm", target, err)
		}
	}

	e.log.WithFields(logrus.Fields{"path": target, "recursive": recursive}).Debug("removed")
	return target, nil
}

func requireRegular(op string, md metadata.FileMetadata) error {
	switch md.Kind {
	case metadata.RegularFile:
		return nil
	case metadata.Directory:
		return fserr.New(fserr.IsADirectory, op, md.AbsolutePath)
	default:
		return fserr.Wrap(fserr.IOError, op, md.AbsolutePath, errNotRegular)
	}
}
