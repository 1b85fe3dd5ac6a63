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

package dispatch

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/engine"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
)

func newDispatcher(t *testing.T) (*Dispatcher, string) {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	l := logrus.New()
	l.Out = io.Discard
	log := logrus.NewEntry(l)

	fsys := &filesystem.OsFs{}
	e, err := engine.New(engine.Config{
		Filesystem: fsys,
		Reader:     metadata.NewReader(fsys, clock.NewClockMock()),
		Log:        log,
		StartDir:   dir,
	})
	require.NoError(t, err)
	return New(e, log), dir
}

func TestExecuteUnknownCommand(t *testing.T) {
	d, dir := newDispatcher(t)

	res := d.Execute("frobnicate now")

	assert.False(t, res.Success)
	assert.Equal(t, fserr.UnknownCommand, res.Kind)
	assert.Equal(t, "Unknown command: frobnicate (type 'help' for available commands)", res.Message)
	assert.Equal(t, dir, d.Cwd())
}

func TestExecuteBlankLine(t *testing.T) {
	d, _ := newDispatcher(t)

	res := d.Execute("   \t ")
	assert.True(t, res.Success)
	assert.Empty(t, res.Message)
}

func TestExecuteUsage(t *testing.T) {
	d, _ := newDispatcher(t)

	tests := []struct {
		line string
		want string
	}{
		{"cd", "Usage: cd <directory>"},
		{"mkdir", "Usage: mkdir [-p] <directory_name>"},
		{"mkdir -x foo", "Usage: mkdir [-p] <directory_name>"},
		{"rm", "Usage: rm <file_or_directory>"},
		{"cp a", "Usage: cp <source> <destination>"},
		{"mv a b c", "Usage: mv <source> <destination>"},
		{"find", "Usage: find <filename>"},
		{"grep", "Usage: grep <text> [pattern]"},
		{"write", "Usage: write [-a] <file> <text...>"},
		{"ls a b", "Usage: ls [path]"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res := d.Execute(tt.line)
			assert.False(t, res.Success)
			assert.Equal(t, fserr.UsageError, res.Kind)
			assert.Equal(t, tt.want, res.Message)
		})
	}
}

func TestNavigation(t *testing.T) {
	d, dir := newDispatcher(t)

	res := d.Execute("mkdir -p a/b")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Directory created: "+filepath.Join(dir, "a", "b"), res.Message)

	res = d.Execute("cd a/b")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, filepath.Join(dir, "a", "b"), d.Cwd())

	res = d.Execute("pwd")
	assert.Equal(t, "Current directory: "+filepath.Join(dir, "a", "b"), res.Message)

	res = d.Execute("cd missing")
	assert.False(t, res.Success)
	assert.Equal(t, fserr.NotFound, res.Kind)
	assert.Contains(t, res.Message, filepath.Join(dir, "a", "b", "missing"))
	assert.Equal(t, filepath.Join(dir, "a", "b"), d.Cwd())

	res = d.Execute("ls " + dir)
	require.True(t, res.Success)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "a", res.Entries[0].Name)
}

func TestRemoveDirectoryConfirmation(t *testing.T) {
	d, dir := newDispatcher(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "somedir", "x"), 0o755))

	res := d.Execute("rm somedir")
	assert.False(t, res.Success)
	assert.Equal(t, fserr.ConfirmationRequired, res.Kind)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "rm", res.Confirmation.Command)
	assert.Equal(t, []string{"somedir"}, res.Confirmation.Args)
	assert.Contains(t, res.Confirmation.Prompt, "is a directory")
	assert.DirExists(t, filepath.Join(dir, "somedir", "x"))

	res = d.Confirm(res.Confirmation)
	assert.True(t, res.Success, res.Message)
	assert.NoDirExists(t, filepath.Join(dir, "somedir"))
}

func TestRemoveFileNeedsNoConfirmation(t *testing.T) {
	d, dir := newDispatcher(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644))

	res := d.Execute("rm f")
	assert.True(t, res.Success)
	assert.Equal(t, "Removed: "+filepath.Join(dir, "f"), res.Message)
}

func TestCopyOverwriteConfirmation(t *testing.T) {
	d, dir := newDispatcher(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("old"), 0o644))

	res := d.Execute("cp a b")
	require.Equal(t, fserr.ConfirmationRequired, res.Kind)
	assert.Equal(t, filepath.Join(dir, "b")+" already exists. Overwrite?", res.Confirmation.Prompt)

	b, err := os.ReadFile(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(b))

	res = d.Confirm(res.Confirmation)
	require.True(t, res.Success, res.Message)
	b, err = os.ReadFile(filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
}

func TestMoveAndCancel(t *testing.T) {
	d, dir := newDispatcher(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("2"), 0o644))

	res := d.Execute("mv a b")
	require.Equal(t, fserr.ConfirmationRequired, res.Kind)

	res = Cancelled()
	assert.True(t, res.Success)
	assert.Equal(t, "Operation cancelled.", res.Message)
	assert.FileExists(t, filepath.Join(dir, "a"))

	res = d.Execute("mv a c")
	require.True(t, res.Success)
	assert.Equal(t, "Moved to: "+filepath.Join(dir, "c"), res.Message)
}

func TestWriteCatAndGrep(t *testing.T) {
	d, dir := newDispatcher(t)

	res := d.Execute("write notes.txt hello   brave new world")
	require.True(t, res.Success, res.Message)

	res = d.Execute("write -a notes.txt -second line")
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "Appended")

	res = d.Execute("cat notes.txt")
	require.True(t, res.Success)
	assert.Equal(t, "hello brave new world\n-second line\n", res.Content)

	res = d.Execute("write notes.txt replaced")
	require.Equal(t, fserr.ConfirmationRequired, res.Kind)
	res = d.Confirm(res.Confirmation)
	require.True(t, res.Success)
	res = d.Execute("cat notes.txt")
	assert.Equal(t, "replaced\n", res.Content)

	res = d.Execute("grep replaced *.txt")
	require.True(t, res.Success)
	assert.Equal(t, []string{filepath.Join(dir, "notes.txt")}, res.Paths)

	res = d.Execute("grep nothing-here")
	assert.True(t, res.Success)
	assert.Equal(t, "No files contain: nothing-here", res.Message)

	res = d.Execute("cat .")
	assert.Equal(t, fserr.IsADirectory, res.Kind)
}

func TestFind(t *testing.T) {
	d, dir := newDispatcher(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b"), 0o755))
	for _, f := range []string{"a.txt", "b/c.txt", "b/d.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
	}

	res := d.Execute("find *.txt")
	require.True(t, res.Success)
	assert.Equal(t, "Found 2 results:", res.Message)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b", "c.txt")}, res.Paths)

	res = d.Execute("find nope")
	assert.True(t, res.Success)
	assert.Empty(t, res.Paths)
	assert.Equal(t, "No files found matching: nope", res.Message)
}

func TestTouchAndStat(t *testing.T) {
	d, dir := newDispatcher(t)

	res := d.Execute("touch empty")
	require.True(t, res.Success)

	res = d.Execute("touch empty")
	assert.Equal(t, fserr.AlreadyExists, res.Kind)

	res = d.Execute("stat empty")
	require.True(t, res.Success)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, filepath.Join(dir, "empty"), res.Entries[0].AbsolutePath)
	assert.Zero(t, res.Entries[0].SizeBytes)
}

func TestExitIsConfirmed(t *testing.T) {
	d, _ := newDispatcher(t)

	res := d.Execute("exit")
	assert.False(t, res.Exit)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "Are you sure you want to exit?", res.Confirmation.Prompt)

	res = d.Confirm(res.Confirmation)
	assert.True(t, res.Exit)
	assert.Equal(t, "Goodbye!", res.Message)
}

func TestConfirmNil(t *testing.T) {
	d, _ := newDispatcher(t)
	assert.Equal(t, fserr.UsageError, d.Confirm(nil).Kind)
}

func TestHelpListsEveryCommand(t *testing.T) {
	d, _ := newDispatcher(t)

	res := d.Execute("help")
	require.True(t, res.Success)

	var names []string
	for _, c := range res.Help {
		names = append(names, c.Name)
	}
	for _, want := range []string{"ls", "cd", "mkdir", "rm", "cp", "mv", "find", "pwd", "help", "exit"} {
		assert.Contains(t, names, want)
	}
}

func TestResultToMap(t *testing.T) {
	res := Result{
		Kind:    fserr.ConfirmationRequired,
		Message: "rm /d: confirmation required",
		Confirmation: &Confirmation{
			Prompt:  "sure?",
			Command: "rm",
			Args:    []string{"/d"},
		},
	}

	m := res.ToMap()
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "ConfirmationRequired", m["error"])
	assert.Equal(t, map[string]interface{}{
		"prompt":  "sure?",
		"command": "rm",
		"args":    []interface{}{"/d"},
	}, m["confirmation"])
	assert.NotContains(t, m, "entries")

	found := Result{Success: true, Paths: []string{"/a"}}
	m = found.ToMap()
	assert.NotContains(t, m, "error")
	assert.Equal(t, []interface{}{"/a"}, m["paths"])
}
