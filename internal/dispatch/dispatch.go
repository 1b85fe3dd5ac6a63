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

// Package dispatch turns lines of user input into engine calls. It owns
// tokenizing, argument validation and the two-phase confirmation
// protocol, and reports every outcome as a Result.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/uwu-tools/fshell/internal/engine"
	"github.com/uwu-tools/fshell/internal/fserr"
)

// Dispatcher is the CommandDispatcher. Like the engine it serves one
// command at a time.
type Dispatcher struct {
	engine   *engine.Engine
	log      *logrus.Entry
	commands map[string]*command
	order    []*command
}

// New returns a dispatcher routing commands to e.
func New(e *engine.Engine, log *logrus.Entry) *Dispatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	d := &Dispatcher{
		engine:   e,
		log:      log,
		commands: make(map[string]*command, len(commandTable)),
		order:    commandTable,
	}
	for _, c := range commandTable {
		d.commands[c.name] = c
	}
	return d
}

// Cwd returns the session's current directory.
func (d *Dispatcher) Cwd() string {
	return d.engine.Cwd()
}

// Commands returns the command reference in help order.
func (d *Dispatcher) Commands() []CommandInfo {
	out := make([]CommandInfo, 0, len(d.order))
	for _, c := range d.order {
		out = append(out, CommandInfo{
			Name:    c.name,
			Usage:   c.usage,
			Summary: c.summary,
			Section: c.section,
		})
	}
	return out
}

// Execute runs one line of input. A blank line yields a successful empty
// result.
func (d *Dispatcher) Execute(line string) Result {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Result{Success: true}
	}
	return d.run(tokens[0], tokens[1:], false)
}

// Confirm runs the command described by c with the user's approval.
func (d *Dispatcher) Confirm(c *Confirmation) Result {
	if c == nil {
		return failure(fserr.UsageError, "nothing to confirm")
	}
	return d.run(c.Command, c.Args, true)
}

// Cancelled is the result of declining a confirmation.
func Cancelled() Result {
	return ok("Operation cancelled.")
}

func (d *Dispatcher) run(name string, raw []string, confirmed bool) Result {
	log := d.log.WithFields(logrus.Fields{"command": name, "args": raw, "confirmed": confirmed})

	c, found := d.commands[name]
	if !found {
		log.Debug("unknown command")
		return failure(fserr.UnknownCommand,
			fmt.Sprintf("Unknown command: %s (type 'help' for available commands)", name))
	}

	inv, err := c.parse(raw)
	if err != nil {
		log.WithError(err).Debug("bad invocation")
		return failure(fserr.UsageError, "Usage: "+c.usage)
	}
	inv.raw = append([]string(nil), raw...)
	inv.confirmed = confirmed

	log.Debug("executing command")
	res := c.run(d, inv)
	if !res.Success {
		log.WithFields(logrus.Fields{"kind": res.Kind, "message": res.Message}).Debug("command failed")
	}
	return res
}

// fromError converts an engine error into a failed result. A
// ConfirmationRequired error becomes a pending confirmation for name.
func fromError(err error, inv *invocation, name string) Result {
	kind := fserr.KindOf(err)
	if kind != fserr.ConfirmationRequired {
		return failure(kind, err.Error())
	}

	var typed *fserr.Error
	path := ""
	if errors.As(err, &typed) {
		path = typed.Path
	}

	var prompt string
	switch {
	case name == "exit":
		prompt = "Are you sure you want to exit?"
	case fserr.IsKind(err, fserr.IsADirectory):
		prompt = fmt.Sprintf("%s is a directory. Delete it and all its contents?", path)
	default:
		prompt = fmt.Sprintf("%s already exists. Overwrite?", path)
	}

	return Result{
		Kind:    fserr.ConfirmationRequired,
		Message: err.Error(),
		Confirmation: &Confirmation{
			Prompt:  prompt,
			Command: name,
			Args:    inv.raw,
		},
	}
}
