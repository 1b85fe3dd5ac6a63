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

// Package paths resolves user-supplied path strings against the shell's
// virtual working directory. It never touches the filesystem.
package paths

import (
	"path/filepath"
)

// Resolve turns input into an absolute, lexically normalized path.
// Empty input resolves to base; absolute input is cleaned and returned
// independent of base; relative input is joined to base and cleaned.
// Existence is not checked.
func Resolve(input, base string) string {
	if input == "" {
		return base
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Join(base, input)
}

// Within reports whether target equals root or lies underneath it,
// comparing cleaned paths lexically.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	prefix := ".." + string(filepath.Separator)
	return len(rel) >= len(prefix) && rel[:len(prefix)] == prefix
}
