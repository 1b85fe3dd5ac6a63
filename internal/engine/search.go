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
	"errors"
	"io"
	"io/fs"
	"iter"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/fserr"
)

// maxSearchFileSize caps how much of one file content search will load.
const maxSearchFileSize = 64 << 20

var errStopWalk = errors.New("stop walk")

// FindByName walks the tree under the current directory and returns the
// absolute paths of regular files whose base name matches pattern. A
// pattern containing wildcards (* or ?) must match the whole name;
// any other pattern matches as a substring. Unreadable subdirectories
// are skipped. Results are sorted.
func (e *Engine) FindByName(pattern string) ([]string, error) {
	match, err := nameMatcher("find", pattern)
	if err != nil {
		return nil, err
	}

	root, err := e.canonicalDir("find", e.session.cwd)
	if err != nil {
		return nil, err
	}

	var out []string
	for path := range e.regularFiles(root) {
		if match(filepath.Base(path)) {
			out = append(out, path)
		}
	}
	sort.Strings(out)

	e.log.WithFields(logrus.Fields{"pattern": pattern, "root": root, "matches": len(out)}).Debug("find finished")
	return out, nil
}

// FindInFiles walks the tree under the current directory and returns the
// paths of regular files matching filePattern whose content contains
// text. Binary files, oversized files and unreadable files are skipped.
// An empty filePattern means "*". Results are sorted.
func (e *Engine) FindInFiles(text, filePattern string) ([]string, error) {
	if text == "" {
		return nil, fserr.Wrap(fserr.UsageError, "grep", "", errEmptyText)
	}
	if filePattern == "" {
		filePattern = "*"
	}
	match, err := nameMatcher("grep", filePattern)
	if err != nil {
		return nil, err
	}

	root, err := e.canonicalDir("grep", e.session.cwd)
	if err != nil {
		return nil, err
	}

	needle := []byte(text)
	var out []string
	for path := range e.regularFiles(root) {
		if !match(filepath.Base(path)) {
			continue
		}
		found, err := e.fileContains(path, needle)
		if err != nil {
			e.log.WithError(err).WithField("path", path).Warn("skipping unreadable file")
			continue
		}
		if found {
			out = append(out, path)
		}
	}
	sort.Strings(out)

	e.log.WithFields(logrus.Fields{"text": text, "pattern": filePattern, "matches": len(out)}).Debug("grep finished")
	return out, nil
}

// regularFiles lazily yields every regular file under root. Walk errors
// are logged and skipped; the walk never aborts on them.
func (e *Engine) regularFiles(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		stopped := false
		err := e.fs.Walk(root, func(path string, d fs.DirEntry, err error) error {
			if stopped {
				return errStopWalk
			}
			if err != nil {
				e.log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d == nil || !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				stopped = true
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			e.log.WithError(err).WithField("root", root).Debug("walk ended early")
		}
	}
}

func (e *Engine) fileContains(path string, needle []byte) (bool, error) {
	f, err := e.fs.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxSearchFileSize+1))
	if err != nil {
		return false, err
	}
	if len(content) > maxSearchFileSize {
		e.log.WithField("path", path).Debug("skipping oversized file")
		return false, nil
	}
	if !isText(content) {
		return false, nil
	}
	return bytes.Contains(content, needle), nil
}

func isText(content []byte) bool {
	for mtype := mimetype.Detect(content); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}
	return false
}

// globEscaper quotes the doublestar metacharacters that are not wildcards
// in the find/grep pattern language.
var globEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`)

// nameMatcher compiles pattern into a predicate over base names. Only *
// and ? are wildcards; every other character matches itself.
func nameMatcher(op, pattern string) (func(string) bool, error) {
	if pattern == "" {
		return nil, fserr.Wrap(fserr.UsageError, op, "", errEmptyPattern)
	}
	if !strings.ContainsAny(pattern, "*?") {
		return func(name string) bool {
			return strings.Contains(name, pattern)
		}, nil
	}
	glob := globEscaper.Replace(pattern)
	return func(name string) bool {
		ok, _ := doublestar.Match(glob, name)
		return ok
	}, nil
}
