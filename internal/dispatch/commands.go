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
	"errors"
	"fmt"
	"strings"

	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
)

const (
	sectionNavigation = "Navigation"
	sectionFiles      = "File Operations"
	sectionDirs       = "Directory Operations"
	sectionSearch     = "Search and Info"

	// variadic marks a command without an upper argument bound.
	variadic = -1
)

var (
	errTooFewArgs  = errors.New("missing arguments")
	errTooManyArgs = errors.New("too many arguments")
	errUnknownFlag = errors.New("unknown flag")
)

type command struct {
	name    string
	usage   string
	summary string
	section string

	// flags lists the accepted single-letter switches, e.g. "p".
	flags   string
	minArgs int
	maxArgs int

	run func(d *Dispatcher, inv *invocation) Result
}

type invocation struct {
	args      []string
	flags     map[byte]bool
	raw       []string
	confirmed bool
}

// parse consumes leading switches and checks the positional count.
// Tokens after the first positional argument are never switches.
func (c *command) parse(tokens []string) (*invocation, error) {
	inv := &invocation{flags: map[byte]bool{}}

	i := 0
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if len(tok) < 2 || tok[0] != '-' {
			break
		}
		for j := 1; j < len(tok); j++ {
			if strings.IndexByte(c.flags, tok[j]) < 0 {
				return nil, fmt.Errorf("%w: -%c", errUnknownFlag, tok[j])
			}
			inv.flags[tok[j]] = true
		}
	}
	inv.args = tokens[i:]

	if len(inv.args) < c.minArgs {
		return nil, errTooFewArgs
	}
	if c.maxArgs != variadic && len(inv.args) > c.maxArgs {
		return nil, errTooManyArgs
	}
	return inv, nil
}

// optional returns the i-th argument or "".
func (inv *invocation) optional(i int) string {
	if i < len(inv.args) {
		return inv.args[i]
	}
	return ""
}

var commandTable = []*command{
	{
		name: "ls", usage: "ls [path]", summary: "List directory contents", section: sectionNavigation,
		maxArgs: 1, run: (*Dispatcher).list,
	},
	{
		name: "cd", usage: "cd <directory>", summary: "Change directory", section: sectionNavigation,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).changeDirectory,
	},
	{
		name: "pwd", usage: "pwd", summary: "Show current directory", section: sectionNavigation,
		run: (*Dispatcher).printDirectory,
	},
	{
		name: "cp", usage: "cp <source> <destination>", summary: "Copy file", section: sectionFiles,
		minArgs: 2, maxArgs: 2, run: (*Dispatcher).copyFile,
	},
	{
		name: "mv", usage: "mv <source> <destination>", summary: "Move/rename file", section: sectionFiles,
		minArgs: 2, maxArgs: 2, run: (*Dispatcher).moveFile,
	},
	{
		name: "rm", usage: "rm <file_or_directory>", summary: "Remove file or directory", section: sectionFiles,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).remove,
	},
	{
		name: "touch", usage: "touch <file>", summary: "Create an empty file", section: sectionFiles,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).touch,
	},
	{
		name: "write", usage: "write [-a] <file> <text...>", summary: "Write (or with -a append) a line of text", section: sectionFiles,
		flags: "a", minArgs: 1, maxArgs: variadic, run: (*Dispatcher).write,
	},
	{
		name: "cat", usage: "cat <file>", summary: "Print file content", section: sectionFiles,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).cat,
	},
	{
		name: "mkdir", usage: "mkdir [-p] <directory_name>", summary: "Create new directory", section: sectionDirs,
		flags: "p", minArgs: 1, maxArgs: 1, run: (*Dispatcher).makeDirectory,
	},
	{
		name: "find", usage: "find <filename>", summary: "Search for files by name or wildcard", section: sectionSearch,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).find,
	},
	{
		name: "grep", usage: "grep <text> [pattern]", summary: "Search for files containing text", section: sectionSearch,
		minArgs: 1, maxArgs: 2, run: (*Dispatcher).grep,
	},
	{
		name: "stat", usage: "stat <path>", summary: "Show file details", section: sectionSearch,
		minArgs: 1, maxArgs: 1, run: (*Dispatcher).stat,
	},
	{
		name: "help", usage: "help", summary: "Show this help", section: sectionSearch,
		run: (*Dispatcher).help,
	},
	{
		name: "exit", usage: "exit", summary: "Exit the program", section: sectionSearch,
		run: (*Dispatcher).exit,
	},
}

func (d *Dispatcher) list(inv *invocation) Result {
	entries, err := d.engine.List(inv.optional(0))
	if err != nil {
		return fromError(err, inv, "ls")
	}
	return Result{Success: true, Entries: entries}
}

func (d *Dispatcher) changeDirectory(inv *invocation) Result {
	cwd, err := d.engine.ChangeDirectory(inv.args[0])
	if err != nil {
		return fromError(err, inv, "cd")
	}
	return ok("Changed directory to: " + cwd)
}

func (d *Dispatcher) printDirectory(*invocation) Result {
	return ok("Current directory: " + d.engine.Cwd())
}

func (d *Dispatcher) copyFile(inv *invocation) Result {
	target, err := d.engine.CopyFile(inv.args[0], inv.args[1], inv.confirmed)
	if err != nil {
		return fromError(err, inv, "cp")
	}
	return ok("Copied to: " + target)
}

func (d *Dispatcher) moveFile(inv *invocation) Result {
	target, err := d.engine.MoveFile(inv.args[0], inv.args[1], inv.confirmed)
	if err != nil {
		return fromError(err, inv, "mv")
	}
	return ok("Moved to: " + target)
}

func (d *Dispatcher) remove(inv *invocation) Result {
	removed, err := d.engine.Remove(inv.args[0], inv.confirmed)
	if err != nil {
		return fromError(err, inv, "rm")
	}
	return ok("Removed: " + removed)
}

func (d *Dispatcher) touch(inv *invocation) Result {
	created, err := d.engine.CreateFile(inv.args[0])
	if err != nil {
		return fromError(err, inv, "touch")
	}
	return ok("File created: " + created)
}

func (d *Dispatcher) write(inv *invocation) Result {
	content := strings.Join(inv.args[1:], " ") + "\n"
	target, err := d.engine.WriteFile(inv.args[0], []byte(content), inv.flags['a'], inv.confirmed)
	if err != nil {
		return fromError(err, inv, "write")
	}
	if inv.flags['a'] {
		return ok(fmt.Sprintf("Appended %d bytes to: %s", len(content), target))
	}
	return ok(fmt.Sprintf("Wrote %d bytes to: %s", len(content), target))
}

func (d *Dispatcher) cat(inv *invocation) Result {
	content, err := d.engine.ReadFile(inv.args[0])
	if err != nil {
		return fromError(err, inv, "cat")
	}
	return Result{Success: true, Content: string(content)}
}

func (d *Dispatcher) makeDirectory(inv *invocation) Result {
	created, err := d.engine.CreateDirectory(inv.args[0], inv.flags['p'])
	if err != nil {
		return fromError(err, inv, "mkdir")
	}
	return ok("Directory created: " + created)
}

func (d *Dispatcher) find(inv *invocation) Result {
	pattern := inv.args[0]
	found, err := d.engine.FindByName(pattern)
	if err != nil {
		return fromError(err, inv, "find")
	}
	if len(found) == 0 {
		return ok("No files found matching: " + pattern)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d results:", len(found)),
		Paths:   found,
	}
}

func (d *Dispatcher) grep(inv *invocation) Result {
	text := inv.args[0]
	found, err := d.engine.FindInFiles(text, inv.optional(1))
	if err != nil {
		return fromError(err, inv, "grep")
	}
	if len(found) == 0 {
		return ok("No files contain: " + text)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %d files containing: %s", len(found), text),
		Paths:   found,
	}
}

func (d *Dispatcher) stat(inv *invocation) Result {
	md, err := d.engine.Stat(inv.args[0])
	if err != nil {
		return fromError(err, inv, "stat")
	}
	return Result{Success: true, Entries: []metadata.FileMetadata{md}}
}

func (d *Dispatcher) help(*invocation) Result {
	return Result{Success: true, Help: d.Commands()}
}

func (d *Dispatcher) exit(inv *invocation) Result {
	if !inv.confirmed {
		return fromError(fserr.New(fserr.ConfirmationRequired, "exit", ""), inv, "exit")
	}
	return Result{Success: true, Message: "Goodbye!", Exit: true}
}
