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

// Package engine implements the shell's filesystem operations. Every
// operation resolves its arguments against the session's current
// directory, validates them with a single metadata read, and reports
// failures as *fserr.Error values. The engine never prompts: destructive
// branches return a ConfirmationRequired error and are re-invoked by the
// caller with an explicit overwrite or recursive flag.
package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
	"github.com/uwu-tools/fshell/internal/paths"
	"github.com/uwu-tools/fshell/internal/retry"
)

// Session holds the virtual working directory. It is only changed by a
// successful ChangeDirectory and may go stale if the directory is
// removed behind the shell's back.
type Session struct {
	cwd string
}

// CurrentDirectory returns the canonical absolute working directory.
func (s *Session) CurrentDirectory() string {
	return s.cwd
}

// Config carries the collaborators of an Engine. Only Filesystem is
// required.
type Config struct {
	Filesystem filesystem.Filesystem
	Reader     *metadata.Reader
	Log        *logrus.Entry

	// StartDir seeds the session; empty means the filesystem's working
	// directory.
	StartDir string

	// RetryTimeout bounds retries of transient rename/remove failures.
	RetryTimeout time.Duration
}

// Engine is the FileOperationEngine. It is not safe for concurrent use;
// the shell runs one operation at a time.
type Engine struct {
	fs           filesystem.Filesystem
	reader       *metadata.Reader
	log          *logrus.Entry
	session      *Session
	retryTimeout time.Duration
}

// New validates the start directory and returns an engine whose session
// points at its canonical form.
func New(cfg Config) (*Engine, error) {
	if cfg.Filesystem == nil {
		return nil, errFilesystemRequired
	}

	e := &Engine{
		fs:           cfg.Filesystem,
		reader:       cfg.Reader,
		log:          cfg.Log,
		retryTimeout: cfg.RetryTimeout,
	}
	if e.reader == nil {
		e.reader = metadata.NewReader(cfg.Filesystem, clock.NewRealClock())
	}
	if e.log == nil {
		e.log = logrus.NewEntry(logrus.StandardLogger())
	}

	start := cfg.StartDir
	if !filepath.IsAbs(start) {
		wd, err := cfg.Filesystem.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		start = paths.Resolve(start, wd)
	}

	cwd, err := e.canonicalDir("open", filepath.Clean(start))
	if err != nil {
		return nil, err
	}
	e.session = &Session{cwd: cwd}

	e.log.WithField("cwd", cwd).Debug("session started")
	return e, nil
}

// Session exposes the engine's session.
func (e *Engine) Session() *Session {
	return e.session
}

// Cwd is shorthand for Session().CurrentDirectory().
func (e *Engine) Cwd() string {
	return e.session.cwd
}

// Reader returns the metadata reader used by the engine.
func (e *Engine) Reader() *metadata.Reader {
	return e.reader
}

func (e *Engine) resolve(input string) string {
	return paths.Resolve(input, e.session.cwd)
}

// canonicalDir checks that path is an existing directory and returns it
// with symlinks resolved.
func (e *Engine) canonicalDir(op, path string) (string, error) {
	md, err := e.reader.ReadFollow(path)
	if err != nil {
		return "", withOp(op, err)
	}
	if !md.IsDir() {
		return "", fserr.New(fserr.NotADirectory, op, path)
	}
	canonical, err := e.fs.EvalSymlinks(path)
	if err != nil {
		return "", fserr.FromOS(op, path, err)
	}
	return canonical, nil
}

func (e *Engine) retry(op func() error) error {
	return retry.Do(op, e.log, e.retryTimeout)
}

// withOp re-labels a typed error with the operation the user invoked.
func withOp(op string, err error) error {
	typed, ok := err.(*fserr.Error) //nolint:errorlint
	if !ok {
		return err
	}
	relabelled := *typed
	relabelled.Op = op
	return &relabelled
}

// confirmation wraps cause in a ConfirmationRequired error; errors.Is
// matches both kinds.
func confirmation(op, path string, cause fserr.Kind) error {
	return fserr.Wrap(fserr.ConfirmationRequired, op, path, fserr.New(cause, op, path))
}
