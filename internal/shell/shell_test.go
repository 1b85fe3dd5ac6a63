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

package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/dispatch"
	"github.com/uwu-tools/fshell/internal/engine"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/metadata"
	"github.com/uwu-tools/fshell/internal/ui"
)

type fixture struct {
	shell  *Shell
	dir    string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newFixture(t *testing.T, input string, opts ui.Options) *fixture {
	t.Helper()
	return newFixtureWithInput(t, strings.NewReader(input), opts)
}

func newFixtureWithInput(t *testing.T, input io.Reader, opts ui.Options) *fixture {
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

	opts.NoColor = true
	opts.Location = time.UTC
	opts.Log = log
	var out, errOut bytes.Buffer
	u, err := ui.New(input, &out, &errOut, opts)
	require.NoError(t, err)

	return &fixture{
		shell:  New(dispatch.New(e, log), u, log),
		dir:    dir,
		out:    &out,
		errOut: &errOut,
	}
}

func TestRunUntilEOF(t *testing.T) {
	f := newFixture(t, "mkdir docs\ncd docs\nfrobnicate\npwd\n", ui.Options{})

	require.NoError(t, f.shell.Run(context.Background()))

	assert.DirExists(t, filepath.Join(f.dir, "docs"))
	assert.Contains(t, f.out.String(), "Current directory: "+filepath.Join(f.dir, "docs"))
	assert.Contains(t, f.errOut.String(), "Error: Unknown command: frobnicate")
}

func TestRunExitConfirmed(t *testing.T) {
	f := newFixture(t, "exit\ny\nmkdir never\n", ui.Options{Interactive: true})

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Are you sure you want to exit? (y/n): ")
	assert.Contains(t, f.out.String(), "Goodbye!")
	assert.NoDirExists(t, filepath.Join(f.dir, "never"))
}

func TestRunExitDeclined(t *testing.T) {
	f := newFixture(t, "exit\nn\nmkdir after\n", ui.Options{Interactive: true})

	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Operation cancelled.")
	assert.DirExists(t, filepath.Join(f.dir, "after"))
}

func TestRunRemoveDirectoryDeclinedWithoutTTY(t *testing.T) {
	f := newFixture(t, "mkdir -p keep/inner\nrm keep\n", ui.Options{})

	require.NoError(t, f.shell.Run(context.Background()))

	assert.DirExists(t, filepath.Join(f.dir, "keep", "inner"))
	assert.Contains(t, f.out.String(), "Operation cancelled.")
}

func TestRunRemoveDirectoryAssumeYes(t *testing.T) {
	f := newFixture(t, "mkdir -p gone/inner\nrm gone\n", ui.Options{AssumeYes: true})

	require.NoError(t, f.shell.Run(context.Background()))

	assert.NoDirExists(t, filepath.Join(f.dir, "gone"))
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	f := newFixture(t, "mkdir x\n", ui.Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.shell.Run(ctx))
	assert.NoDirExists(t, filepath.Join(f.dir, "x"))
}

func TestRunStopsWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	f := newFixtureWithInput(t, pr, ui.Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.shell.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run kept waiting for input after cancellation")
	}
}

func TestExec(t *testing.T) {
	f := newFixture(t, "", ui.Options{})
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "a.txt"), []byte("hi"), 0o644))

	require.NoError(t, f.shell.Exec("cat a.txt"))
	assert.Equal(t, "hi\n", f.out.String())

	err := f.shell.Exec("cat missing.txt")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, f.errOut.String(), "no such file or directory")
}
