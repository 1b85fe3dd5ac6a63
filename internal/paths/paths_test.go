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

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		base     string
		expected string
	}{
		{"empty input is base", "", "/home/user", "/home/user"},
		{"relative child", "docs", "/home/user", "/home/user/docs"},
		{"dot", ".", "/home/user", "/home/user"},
		{"parent", "..", "/home/user", "/home"},
		{"parent past root", "../../..", "/home", "/"},
		{"mixed segments", "a/./b/../c", "/tmp", "/tmp/a/c"},
		{"absolute ignores base", "/etc/../var/log", "/home/user", "/var/log"},
		{"absolute need not exist", "/does/not/exist", "/", "/does/not/exist"},
		{"trailing slash", "docs/", "/home/user", "/home/user/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.expected), Resolve(tt.input, filepath.FromSlash(tt.base)))
		})
	}
}

func TestResolveRelativeEqualsCleanJoin(t *testing.T) {
	bases := []string{"/", "/a", "/a/b/c"}
	inputs := []string{"x", "x/y", "../x", "./x/../y", "x//y"}

	for _, d := range bases {
		for _, p := range inputs {
			assert.Equal(t, filepath.Clean(filepath.Join(d, p)), Resolve(p, d), "resolve(%q, %q)", p, d)
		}
	}
}

func TestResolveAbsoluteIndependentOfBase(t *testing.T) {
	for _, d := range []string{"/", "/a", "/a/b"} {
		assert.Equal(t, "/x/z", Resolve("/x/y/../z", d))
	}
}

func TestWithin(t *testing.T) {
	assert.True(t, Within("/a", "/a"))
	assert.True(t, Within("/a", "/a/b/c"))
	assert.False(t, Within("/a", "/ab"))
	assert.False(t, Within("/a/b", "/a"))
	assert.True(t, Within("/", "/anything"))
}
