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
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/uwu-tools/fshell/internal/metadata"
)

// newTable creates a table writing to the UI's output.
func (u *UI) newTable(headers ...interface{}) table.Table {
	tbl := table.New(headers...)

	tbl.WithWriter(u.out)
	tbl.WithPadding(2)
	tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
		return u.styles.Bold.Render(fmt.Sprintf(format, vals...))
	})

	// ANSI sequences must not count towards column widths.
	tbl.WithWidthFunc(lipgloss.Width)

	return tbl
}

func (u *UI) printEntries(entries []metadata.FileMetadata) {
	tbl := u.newTable("TYPE", "NAME", "SIZE", "PERMISSIONS", "MODIFIED", "OWNER")

	for i := range entries {
		e := &entries[i]
		name := e.Name
		if e.IsDir() {
			name = u.styles.Dir.Render(name)
		}
		tbl.AddRow(
			kindLabel(e.Kind),
			name,
			FormatSize(e.SizeBytes),
			e.Permissions.String(),
			FormatTime(e.ModifiedAt, u.location),
			e.OwnerName+"@"+e.GroupName,
		)
	}

	tbl.Print()
}
