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

package engine

import "errors"

var (
	errFilesystemRequired = errors.New("engine needs a filesystem")
	errNotRegular         = errors.New("not a regular file")
	errSameFile           = errors.New("source and destination are the same")
	errIntoItself         = errors.New("cannot move a directory into itself")
	errEmptyPattern       = errors.New("pattern must not be empty")
	errEmptyText          = errors.New("search text must not be empty")
	errEmptyName          = errors.New("name must not be empty")
)
