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

// Package shell runs the read-dispatch-render loop.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/dispatch"
	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/ui"
)

// ErrCommandFailed is returned by Exec when the command did not succeed.
var ErrCommandFailed = errors.New("command failed")

// Shell wires the dispatcher to the UI.
type Shell struct {
	dispatcher *dispatch.Dispatcher
	ui         *ui.UI
	log        *logrus.Entry
}

func New(d *dispatch.Dispatcher, u *ui.UI, log *logrus.Entry) *Shell {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Shell{dispatcher: d, ui: u, log: log}
}

// Run reads and executes lines until exit is confirmed, input ends or ctx
// is cancelled. Command failures are rendered and never end the loop. A
// cancelled ctx ends the session cleanly, even while waiting for input.
func (s *Shell) Run(ctx context.Context) error {
	if s.ui.Interactive() {
		s.ui.Welcome()
	}

	for {
		if ctx.Err() != nil {
			s.log.Debug("session interrupted")
			return nil
		}

		line, err := s.readLine(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.log.Debug("session interrupted")
			return nil
		}
		if errors.Is(err, io.EOF) {
			s.log.Debug("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		res := s.Step(line)
		if res.Exit {
			return nil
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLine waits for the next input line or for ctx to end. An abandoned
// read finishes in the background once input arrives or closes.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	prompt := s.ui.Prompt(s.dispatcher.Cwd())
	lines := make(chan readResult, 1)
	go func() {
		line, err := s.ui.ReadLine(prompt)
		lines <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err() //nolint:wrapcheck
	case r := <-lines:
		return r.line, r.err
	}
}

// Exec runs a single line, as for the -c option.
func (s *Shell) Exec(line string) error {
	res := s.Step(line)
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrCommandFailed, res.Message)
	}
	return nil
}

// Step executes one line, obtains consent for a pending confirmation and
// renders the final result.
func (s *Shell) Step(line string) dispatch.Result {
	res := s.dispatcher.Execute(line)

	if res.Kind == fserr.ConfirmationRequired && res.Confirmation != nil {
		if s.ui.Confirm(res.Confirmation.Prompt) {
			res = s.dispatcher.Confirm(res.Confirmation)
		} else {
			s.log.WithField("command", res.Confirmation.Command).Debug("confirmation declined")
			res = dispatch.Cancelled()
		}
	}

	s.ui.Render(&res)
	return res
}
