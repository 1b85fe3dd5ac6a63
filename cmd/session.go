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
	"fmt"
	"io"

	"github.com/uwu-tools/fshell/internal/clock"
	"github.com/uwu-tools/fshell/internal/config"
	"github.com/uwu-tools/fshell/internal/dispatch"
	"github.com/uwu-tools/fshell/internal/engine"
	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/metadata"
	"github.com/uwu-tools/fshell/internal/shell"
	"github.com/uwu-tools/fshell/internal/ui"
)

// newShell assembles filesystem, engine, dispatcher and UI from cfg.
func newShell(cfg config.IConfig, stdin io.Reader, stdout, stderr io.Writer, interactive bool) (*shell.Shell, error) {
	log := cfg.GetLogger()

	var fsys filesystem.Filesystem
	if cfg.IsInMemory() {
		mem := filesystem.NewMemFs()
		if dir := cfg.GetDir(); dir != "" {
			if err := mem.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating in-memory start directory: %w", err)
			}
			mem.Wd = dir
		}
		fsys = mem
		log.Info("running on an in-memory filesystem")
	} else {
		fsys = &filesystem.OsFs{Workers: cfg.GetWalkWorkers()}
	}
	if cfg.IsDryRun() {
		fsys = filesystem.NewDryRunFs(fsys, log)
		log.Info("dry run: nothing will be written")
	}

	e, err := engine.New(engine.Config{
		Filesystem:   fsys,
		Reader:       metadata.NewReader(fsys, clock.NewRealClock()),
		Log:          log,
		StartDir:     cfg.GetDir(),
		RetryTimeout: cfg.GetRetryTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	u, err := ui.New(stdin, stdout, stderr, ui.Options{
		Output:      cfg.GetOutput(),
		NoColor:     cfg.IsNoColor(),
		AssumeYes:   cfg.AssumeYes(),
		Interactive: interactive,
		Log:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}

	return shell.New(dispatch.New(e, log), u, log), nil
}
