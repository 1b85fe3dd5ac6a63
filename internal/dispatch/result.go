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
	"time"

	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/metadata"
)

// Confirmation describes a destructive step the user has to approve.
// Passing it back to Dispatcher.Confirm runs the command again with the
// approval applied.
type Confirmation struct {
	Prompt  string
	Command string
	Args    []string
}

// Result is the outcome of one command. Failures are reported here, never
// as Go errors, so the shell loop keeps running.
type Result struct {
	Success bool

	// Kind is KindUnknown on success.
	Kind    fserr.Kind
	Message string

	Entries []metadata.FileMetadata
	Paths   []string
	Content string
	Help    []CommandInfo

	// Confirmation is set when Kind is ConfirmationRequired.
	Confirmation *Confirmation

	// Exit asks the shell to terminate.
	Exit bool
}

// CommandInfo documents one command for help output.
type CommandInfo struct {
	Name    string
	Usage   string
	Summary string
	Section string
}

func ok(msg string) Result {
	return Result{Success: true, Message: msg}
}

func failure(kind fserr.Kind, msg string) Result {
	return Result{Kind: kind, Message: msg}
}

// ToMap flattens the result for the structured output codecs. Empty
// fields are omitted.
func (r *Result) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"success": r.Success,
	}
	if r.Kind != fserr.KindUnknown {
		m["error"] = r.Kind.String()
	}
	if r.Message != "" {
		m["message"] = r.Message
	}
	if r.Content != "" {
		m["content"] = r.Content
	}
	if r.Exit {
		m["exit"] = true
	}

	if len(r.Entries) > 0 {
		entries := make([]interface{}, 0, len(r.Entries))
		for i := range r.Entries {
			entries = append(entries, entryMap(&r.Entries[i]))
		}
		m["entries"] = entries
	}

	if len(r.Paths) > 0 {
		paths := make([]interface{}, 0, len(r.Paths))
		for _, p := range r.Paths {
			paths = append(paths, p)
		}
		m["paths"] = paths
	}

	if len(r.Help) > 0 {
		cmds := make([]interface{}, 0, len(r.Help))
		for _, c := range r.Help {
			cmds = append(cmds, map[string]interface{}{
				"name":    c.Name,
				"usage":   c.Usage,
				"summary": c.Summary,
				"section": c.Section,
			})
		}
		m["commands"] = cmds
	}

	if c := r.Confirmation; c != nil {
		args := make([]interface{}, 0, len(c.Args))
		for _, a := range c.Args {
			args = append(args, a)
		}
		m["confirmation"] = map[string]interface{}{
			"prompt":  c.Prompt,
			"command": c.Command,
			"args":    args,
		}
	}

	return m
}

func entryMap(md *metadata.FileMetadata) map[string]interface{} {
	return map[string]interface{}{
		"name":        md.Name,
		"path":        md.AbsolutePath,
		"kind":        md.Kind.String(),
		"size":        md.SizeBytes,
		"permissions": md.Permissions.String(),
		"owner":       md.OwnerName,
		"group":       md.GroupName,
		"modified":    md.ModifiedAt.UTC().Format(time.RFC3339),
	}
}
