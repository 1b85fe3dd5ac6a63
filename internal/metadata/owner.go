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

package metadata

import (
	"io/fs"
	"os/user"
	"strconv"
	"sync"
)

// OwnerLookup maps the ownership recorded in a FileInfo to names.
// Implementations return Unknown rather than failing.
type OwnerLookup interface {
	Lookup(info fs.FileInfo) (owner, group string)
}

// systemOwners resolves ids through os/user and memoises the answers,
// including misses.
type systemOwners struct {
	mu     sync.Mutex
	users  map[uint32]string
	groups map[uint32]string
}

func NewSystemOwners() OwnerLookup {
	return &systemOwners{
		users:  map[uint32]string{},
		groups: map[uint32]string{},
	}
}

func (s *systemOwners) Lookup(info fs.FileInfo) (string, string) {
	uid, gid, ok := ownerIDs(info)
	if !ok {
		return Unknown, Unknown
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, found := s.users[uid]
	if !found {
		owner = Unknown
		if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
			owner = u.Username
		}
		s.users[uid] = owner
	}

	group, found := s.groups[gid]
	if !found {
		group = Unknown
		if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
			group = g.Name
		}
		s.groups[gid] = group
	}

	return owner, group
}

// StaticOwners answers every lookup with the same names.
type StaticOwners struct {
	Owner string
	Group string
}

func (s StaticOwners) Lookup(fs.FileInfo) (string, string) {
	return s.Owner, s.Group
}
