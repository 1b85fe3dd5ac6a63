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
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
	"github.com/uwu-tools/fshell/internal/paths"
)

const tempPattern = ".fshell-*.tmp"

// CopyFile copies the regular file src to dst. When dst is an existing
// directory the copy is placed inside it under src's base name. An
// existing target is only replaced when overwrite is set; otherwise a
// ConfirmationRequired error (also matching AlreadyExists) is returned
// and nothing is written. An existing symlink destination is written
// through to its target. The copy is staged in a temporary file next to
// the target and renamed into place, so the target is either fully
// replaced or left untouched.
func (e *Engine) CopyFile(src, dst string, overwrite bool) (string, error) {
	if src == "" || dst == "" {
		return "", fserr.Wrap(fserr.UsageError, "cp", "", errEmptyName)
	}
	srcPath := e.resolve(src)

	srcMd, err := e.reader.ReadFollow(srcPath)
	if err != nil {
		return "", withOp("cp", err)
	}
	if err := requireRegular("cp", srcMd); err != nil {
		return "", err
	}

	target := e.realTarget(srcPath, e.resolve(dst))
	if target == srcPath {
		return "", fserr.Wrap(fserr.IOError, "cp", target, errSameFile)
	}

	writeTo := target
	if existing, err := e.reader.ReadFollow(target); err == nil {
		if existing.IsDir() {
			return "", fserr.New(fserr.IsADirectory, "cp", target)
		}
		writeTo = e.realPath(target)
		if writeTo == e.realPath(srcPath) {
			return "", fserr.Wrap(fserr.IOError, "cp", target, errSameFile)
		}
		if !overwrite {
			return "", confirmation("cp", target, fserr.AlreadyExists)
		}
	}

	if err := e.copyRegular("cp", srcPath, writeTo, srcMd.Permissions.Bits); err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"from": srcPath, "to": target}).Debug("copied file")
	return target, nil
}

// MoveFile renames src to dst using the same destination rule as
// CopyFile. Directories and symlinks move as themselves. When the rename
// crosses filesystems the entry is copied and the source removed
// afterwards; a failed copy removes the partial target.
func (e *Engine) MoveFile(src, dst string, overwrite bool) (string, error) {
	if src == "" || dst == "" {
		return "", fserr.Wrap(fserr.UsageError, "mv", "", errEmptyName)
	}
	srcPath := e.resolve(src)

	srcMd, err := e.reader.Read(srcPath)
	if err != nil {
		return "", withOp("mv", err)
	}

	target := e.realTarget(srcPath, e.resolve(dst))
	if target == srcPath {
		return "", fserr.Wrap(fserr.IOError, "mv", target, errSameFile)
	}
	if srcMd.IsDir() && paths.Within(srcPath, target) {
		return "", fserr.Wrap(fserr.IOError, "mv", target, errIntoItself)
	}

	if existing, err := e.reader.Read(target); err == nil {
		if !overwrite {
			return "", confirmation("mv", target, fserr.AlreadyExists)
		}
		// rename(2) replaces files atomically but not directories.
		if existing.IsDir() {
			if err := e.retry(func() error { return e.fs.RemoveAll(target) }); err != nil {
				return "", fserr.FromOS("mv", target, err)
			}
		}
	}

	err = e.retry(func() error { return e.fs.Rename(srcPath, target) })
	if errors.Is(err, syscall.EXDEV) {
		e.log.WithFields(logrus.Fields{"from": srcPath, "to": target}).Debug("rename crosses devices; copying")
		err = e.moveAcrossDevices(srcPath, target, srcMd)
	}
	if err != nil {
		return "", fserr.FromOS("mv", srcPath, err)
	}

	e.log.WithFields(logrus.Fields{"from": srcPath, "to": target}).Debug("moved")
	return target, nil
}

// realTarget appends src's base name when dst is an existing directory.
func (e *Engine) realTarget(src, dst string) string {
	if md, err := e.reader.ReadFollow(dst); err == nil && md.IsDir() {
		return filepath.Join(dst, filepath.Base(src))
	}
	return dst
}

// realPath follows every symlink in an existing path, so a replacement
// lands on the link's target and the link survives.
func (e *Engine) realPath(path string) string {
	if real, err := e.fs.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

func (e *Engine) copyRegular(op, src, target string, mode os.FileMode) error {
	in, err := e.fs.Open(src)
	if err != nil {
		return fserr.FromOS(op, src, err)
	}
	defer in.Close()

	return e.writeAtomic(op, target, in, mode)
}

// writeAtomic streams r into a temporary sibling of target and renames it
// over target.
func (e *Engine) writeAtomic(op, target string, r io.Reader, mode os.FileMode) error {
	tmp, err := e.fs.CreateTemp(filepath.Dir(target), tempPattern)
	if err != nil {
		return fserr.FromOS(op, target, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := e.fs.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			e.log.WithError(rmErr).WithField("path", tmpName).Warn("leaving temporary file behind")
		}
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		cleanup()
		return fserr.FromOS(op, target, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fserr.FromOS(op, target, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fserr.FromOS(op, target, err)
	}
	if err := e.fs.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fserr.FromOS(op, target, err)
	}
	if err := e.retry(func() error { return e.fs.Rename(tmpName, target) }); err != nil {
		cleanup()
		return fserr.FromOS(op, target, err)
	}
	return nil
}

func (e *Engine) moveAcrossDevices(src, target string, md metadata.FileMetadata) error {
	switch md.Kind {
	case metadata.RegularFile:
		if err := e.copyRegular("mv", src, target, md.Permissions.Bits); err != nil {
			return err
		}
		return e.retry(func() error { return e.fs.Remove(src) })
	case metadata.Directory:
		if err := e.copyTree(src, target); err != nil {
			if rmErr := e.fs.RemoveAll(target); rmErr != nil {
				e.log.WithError(rmErr).WithField("path", target).Warn("removing partial copy")
			}
			return err
		}
		return e.retry(func() error { return e.fs.RemoveAll(src) })
	default:
		return fserr.Wrap(fserr.IOError, "mv", src, errNotRegular)
	}
}

// copyTree recreates the directory src at target. Symlinks and special
// files inside the tree are not supported and fail the copy.
func (e *Engine) copyTree(src, target string) error {
	return e.fs.Walk(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(target, rel)

		switch {
		case d.IsDir():
			return e.fs.MkdirAll(dest, dirPerm)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := e.fs.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
				return err
			}
			return e.copyRegular("mv", path, dest, info.Mode().Perm())
		default:
			return fserr.Wrap(fserr.IOError, "mv", path, errNotRegular)
		}
	})
}
