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

package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/uwu-tools/fshell/internal/dispatch"
	"github.com/uwu-tools/fshell/internal/encoding"
	"github.com/uwu-tools/fshell/internal/fserr"
	"github.com/uwu-tools/fshell/internal/options"
)

// Options configures a UI.
type Options struct {
	// Output is one of options.OutputFormats.
	Output string

	NoColor   bool
	AssumeYes bool

	// Interactive enables prompts. Without it confirmations are declined
	// unless AssumeYes is set.
	Interactive bool

	// Location for timestamps; nil means time.Local.
	Location *time.Location

	Log *logrus.Entry
}

// UI is the presentation layer. It never mutates the filesystem.
type UI struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	styles      Styles
	encoder     encoding.Encoder
	location    *time.Location
	assumeYes   bool
	interactive bool
	log         *logrus.Entry
}

// New returns a UI reading from in and writing to out and errOut.
func New(in io.Reader, out, errOut io.Writer, opts Options) (*UI, error) {
	u := &UI{
		in:          bufio.NewReader(in),
		out:         out,
		errOut:      errOut,
		location:    opts.Location,
		assumeYes:   opts.AssumeYes,
		interactive: opts.Interactive,
		log:         opts.Log,
	}
	if u.location == nil {
		u.location = time.Local
	}
	if u.log == nil {
		u.log = logrus.NewEntry(logrus.StandardLogger())
	}

	if opts.Output != "" && opts.Output != options.OutputTable {
		enc, err := encoding.ForFormat(opts.Output)
		if err != nil {
			return nil, err
		}
		u.encoder = enc
	}

	if opts.NoColor || u.encoder != nil {
		u.styles = PlainStyles()
	} else {
		u.styles = NewStyles(out)
	}

	return u, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether the UI prompts the user.
func (u *UI) Interactive() bool {
	return u.interactive
}

// Welcome prints the start banner.
func (u *UI) Welcome() {
	if u.encoder != nil {
		return
	}
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(u.out, u.styles.Header.Render(rule))
	fmt.Fprintln(u.out, u.styles.Header.Render("     fshell: console file explorer"))
	fmt.Fprintln(u.out, u.styles.Header.Render(rule))
	fmt.Fprintln(u.out, "Type 'help' to see available commands")
	fmt.Fprintln(u.out)
}

// ReadLine shows prompt when interactive and returns the next input line
// without its terminator. io.EOF is returned once input is exhausted.
func (u *UI) ReadLine(prompt string) (string, error) {
	if u.interactive {
		fmt.Fprint(u.out, prompt)
	}

	line, err := u.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err //nolint:wrapcheck
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Prompt returns the command prompt for the current directory.
func (u *UI) Prompt(cwd string) string {
	return u.styles.Info.Render(cwd) + u.styles.Bold.Render(" > ")
}

// Confirm asks a yes/no question. Only an answer starting with y or Y
// approves.
func (u *UI) Confirm(prompt string) bool {
	if u.assumeYes {
		u.log.WithField("prompt", prompt).Debug("confirmation assumed")
		return true
	}
	if !u.interactive {
		u.log.WithField("prompt", prompt).Info("declining confirmation on non-interactive input")
		return false
	}

	line, err := u.ReadLine(prompt + " (y/n): ")
	if err != nil {
		return false
	}
	answer := strings.TrimSpace(line)
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}

// Render prints a dispatcher result. Pending confirmations print nothing;
// the caller prompts for them.
func (u *UI) Render(res *dispatch.Result) {
	if u.encoder != nil {
		u.renderEncoded(res)
		return
	}

	if !res.Success {
		if res.Kind != fserr.ConfirmationRequired {
			u.Error(res.Message)
		}
		return
	}

	if res.Message != "" {
		fmt.Fprintln(u.out, u.styles.Success.Render(res.Message))
	}
	if len(res.Entries) > 0 {
		u.printEntries(res.Entries)
	}
	for _, p := range res.Paths {
		fmt.Fprintln(u.out, u.styles.Info.Render("  "+p))
	}
	if res.Content != "" {
		fmt.Fprint(u.out, res.Content)
		if !strings.HasSuffix(res.Content, "\n") {
			fmt.Fprintln(u.out)
		}
	}
	if len(res.Help) > 0 {
		u.printHelp(res.Help)
	}
}

// Error prints a single-line error message.
func (u *UI) Error(msg string) {
	fmt.Fprintln(u.errOut, u.styles.Error.Render("Error: "+msg))
}

func (u *UI) renderEncoded(res *dispatch.Result) {
	if res.Kind == fserr.ConfirmationRequired {
		return
	}
	b, err := u.encoder.Encode(res.ToMap())
	if err != nil {
		u.log.WithError(err).Error("encoding result")
		u.Error(err.Error())
		return
	}
	if _, err := u.out.Write(b); err != nil {
		u.log.WithError(err).Error("writing result")
	}
}

func (u *UI) printHelp(cmds []dispatch.CommandInfo) {
	width := 0
	for _, c := range cmds {
		width = max(width, len(c.Usage))
	}

	fmt.Fprintln(u.out, u.styles.Header.Render("=== fshell help ==="))
	section := ""
	for _, c := range cmds {
		if c.Section != section {
			section = c.Section
			fmt.Fprintln(u.out)
			fmt.Fprintln(u.out, u.styles.Bold.Render(section+":"))
		}
		fmt.Fprintf(u.out, "  %-*s - %s\n", width, c.Usage, c.Summary)
	}
	fmt.Fprintln(u.out)
}
