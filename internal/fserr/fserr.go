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

// Package fserr defines the error taxonomy shared by the metadata reader,
// the operation engine and the command dispatcher.
package fserr

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a failure so callers can branch on it without parsing
// messages.
type Kind int

const (
	KindUnknown Kind = iota
	NotFound
	NotADirectory
	IsADirectory
	AlreadyExists
	AccessDenied
	UsageError
	UnknownCommand
	ConfirmationRequired
	// IOError covers OS failures that map to none of the kinds above.
	IOError
)

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	NotFound:             "NotFound",
	NotADirectory:        "NotADirectory",
	IsADirectory:         "IsADirectory",
	AlreadyExists:        "AlreadyExists",
	AccessDenied:         "AccessDenied",
	UsageError:           "UsageError",
	UnknownCommand:       "UnknownCommand",
	ConfirmationRequired: "ConfirmationRequired",
	IOError:              "IOError",
}

var kindMessages = map[Kind]string{
	KindUnknown:          "error",
	NotFound:             "no such file or directory",
	NotADirectory:        "not a directory",
	IsADirectory:         "is a directory",
	AlreadyExists:        "already exists",
	AccessDenied:         "permission denied",
	UsageError:           "usage",
	UnknownCommand:       "unknown command",
	ConfirmationRequired: "confirmation required",
	IOError:              "i/o error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the typed error returned across package boundaries. Op names
// the operation (e.g. "copy") and Path the offending path; both may be
// empty.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := kindMessages[e.Kind]
	if e.Kind == UsageError || e.Kind == UnknownCommand {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s", msg, e.Err)
		}
		return msg
	}

	s := msg
	if e.Path != "" {
		s = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Op != "" {
		s = fmt.Sprintf("%s %s", e.Op, s)
	}
	var inner *Error
	if e.Err != nil && !errors.As(e.Err, &inner) && e.Kind == IOError {
		s = fmt.Sprintf("%s (%s)", s, e.Err)
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality, so errors.Is(err, ErrNotFound) matches any
// NotFound error regardless of path.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Path == "" && t.Op == ""
}

// Sentinels for errors.Is.
var (
	ErrNotFound             = &Error{Kind: NotFound}
	ErrNotADirectory        = &Error{Kind: NotADirectory}
	ErrIsADirectory         = &Error{Kind: IsADirectory}
	ErrAlreadyExists        = &Error{Kind: AlreadyExists}
	ErrAccessDenied         = &Error{Kind: AccessDenied}
	ErrUsage                = &Error{Kind: UsageError}
	ErrUnknownCommand       = &Error{Kind: UnknownCommand}
	ErrConfirmationRequired = &Error{Kind: ConfirmationRequired}
	ErrIO                   = &Error{Kind: IOError}
)

// New builds an Error of the given kind.
func New(kind Kind, op, path string) *Error {
	return &Error{Kind: kind, Op: op, Path: path}
}

// Wrap builds an Error of the given kind around cause.
func Wrap(kind Kind, op, path string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: cause}
}

// FromOS maps an error returned by the os package (or any fs
// implementation) onto the taxonomy. Errors that already carry a Kind
// are returned unchanged.
func FromOS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: Classify(err), Op: op, Path: path, Err: err}
}

// Classify returns the Kind an OS error corresponds to.
func Classify(err error) Kind {
	var typed *Error
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &typed):
		return typed.Kind
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return AccessDenied
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, syscall.ENOTDIR):
		return NotADirectory
	case errors.Is(err, syscall.EISDIR):
		return IsADirectory
	default:
		return IOError
	}
}

// IsKind reports whether err carries kind anywhere in its chain.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}

// KindOf returns the Kind carried by err, or IOError for untyped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	return Classify(err)
}
