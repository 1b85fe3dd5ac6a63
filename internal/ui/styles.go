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

// Package ui renders dispatcher results and talks to the user. It is the
// only package that writes to the terminal.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles groups the text styles used by the UI.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Header  lipgloss.Style
	Dir     lipgloss.Style
}

// NewStyles returns the colored styles for w. Color is dropped
// automatically when w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
		Success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00")),
		Info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#0099FF")),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("#888888")),
		Bold:    r.NewStyle().Bold(true),
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")),
		Dir:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#0099FF")),
	}
}

// PlainStyles renders every style as plain text.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Error:   plain,
		Success: plain,
		Info:    plain,
		Dim:     plain,
		Bold:    plain,
		Header:  plain,
		Dir:     plain,
	}
}
