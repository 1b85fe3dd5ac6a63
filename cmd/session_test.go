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

package cmd

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

	"github.com/uwu-tools/fshell/internal/config"
	"github.com/uwu-tools/fshell/internal/options"
)

type sessionCase struct {
	dir      string
	output   string
	dryRun   bool
	inMemory bool
}

func newConfigMock(c sessionCase) *config.ConfigMock {
	l := logrus.New()
	l.Out = io.Discard

	cfg := config.NewConfigMock()
	cfg.On("GetLogger").Return(logrus.NewEntry(l))
	cfg.On("IsInMemory").Return(c.inMemory)
	cfg.On("IsDryRun").Return(c.dryRun)
	cfg.On("GetDir").Return(c.dir)
	cfg.On("GetWalkWorkers").Return(0).Maybe()
	cfg.On("GetRetryTimeout").Return(time.Duration(0))
	cfg.On("GetOutput").Return(c.output)
	cfg.On("IsNoColor").Return(true)
	cfg.On("AssumeYes").Return(false)
	return cfg
}

func TestNewShellInMemory(t *testing.T) {
	cfg := newConfigMock(sessionCase{dir: "/home/me", output: options.OutputTable, inMemory: true})
	var out, errOut bytes.Buffer

	sh, err := newShell(cfg, strings.NewReader("mkdir docs\ntouch docs/a.txt\nfind a.txt\n"), &out, &errOut, false)
	require.NoError(t, err)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "Directory created: /home/me/docs")
	assert.Contains(t, out.String(), "  /home/me/docs/a.txt")
	assert.Empty(t, errOut.String())
	cfg.AssertExpectations(t)
}

func TestNewShellDryRun(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	cfg := newConfigMock(sessionCase{dir: dir, output: options.OutputJSON, dryRun: true})
	var out bytes.Buffer

	sh, err := newShell(cfg, strings.NewReader(""), &out, io.Discard, false)
	require.NoError(t, err)
	require.NoError(t, sh.Exec("mkdir would-be"))

	assert.NoDirExists(t, filepath.Join(dir, "would-be"))
	assert.Contains(t, out.String(), `"success": true`)
}

func TestNewShellRejectsMissingDir(t *testing.T) {
	cfg := newConfigMock(sessionCase{dir: filepath.Join(t.TempDir(), "absent"), output: options.OutputTable})

	_, err := newShell(cfg, strings.NewReader(""), io.Discard, io.Discard, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
