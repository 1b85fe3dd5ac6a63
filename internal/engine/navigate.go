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
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
)

// List returns a snapshot of every direct child of the directory at path
// (the current directory when path is empty), in the order the
// filesystem yields them. Children that vanish or cannot be read between
// the directory read and their own stat are skipped.
func (e *Engine) List(path string) ([]metadata.FileMetadata, error) {
	target := e.resolve(path)

	md, err := e.reader.ReadFollow(target)
	if err != nil {
		return nil, withOp("list", err)
	}
	if !md.IsDir() {
		return nil, fserr.New(fserr.NotADirectory, "list", target)
	}

	entries, err := e.fs.ReadDir(target)
	if err != nil {
		return nil, fserr.FromOS("list", target, err)
	}

	out := make([]metadata.FileMetadata, 0, len(entries))
	for _, entry := range entries {
		child := filepath.Join(target, entry.Name())
		cm, err := e.reader.Read(child)
		if err != nil {
			e.log.WithError(err).WithField("path", child).Debug("skipping unreadable entry")
			continue
		}
		out = append(out, cm)
	}

	e.log.WithFields(logrus.Fields{"path": target, "entries": len(out)}).Debug("listed directory")
	return out, nil
}

// ChangeDirectory moves the session to path, resolved and with symlinks
// dereferenced. On failure the session is unchanged.
func (e *Engine) ChangeDirectory(path string) (string, error) {
	if path == "" {
		return "", fserr.Wrap(fserr.UsageError, "cd", "", errEmptyName)
	}

	cwd, err := e.canonicalDir("cd", e.resolve(path))
	if err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"from": e.session.cwd, "to": cwd}).Debug("changed directory")
	e.session.cwd = cwd
	return cwd, nil
}

// Stat returns the metadata of path without following a final symlink.
func (e *Engine) Stat(path string) (metadata.FileMetadata, error) {
	md, err := e.reader.Read(e.resolve(path))
	if err != nil {
		return metadata.FileMetadata{}, withOp("stat", err)
	}
	return md, nil
}
