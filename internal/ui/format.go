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
	"time"

	"github.com/uwu-tools/fshell/internal/metadata"
)

// TimeLayout is the layout of modification times in listings.
const TimeLayout = "2006-01-02 15:04:05"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatSize renders a byte count with one decimal in the largest unit
// below it.
func FormatSize(size int64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%d B", size)
	case size < mib:
		return fmt.Sprintf("%.1f KB", float64(size)/kib)
	case size < gib:
		return fmt.Sprintf("%.1f MB", float64(size)/mib)
	default:
		return fmt.Sprintf("%.1f GB", float64(size)/gib)
	}
}

// FormatTime renders t in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeLayout)
}

func kindLabel(k metadata.Kind) string {
	switch k {
	case metadata.Directory:
		return "[DIR]"
	case metadata.RegularFile:
		return "[FILE]"
	default:
		return "[OTHER]"
	}
}
