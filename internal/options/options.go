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

package options

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Options struct {
	LogLevel     string
	ConfigFile   string
	Dir          string
	Output       string
	Command      string
	DryRun       bool
	InMemory     bool
	NoColor      bool
	AssumeYes    bool
	RetryTimeout time.Duration
	WalkWorkers  int
}

const (
	AppName = "fshell"

	// EnvPrefix is the prefix viper uses to look up environment overrides,
	// e.g. FSHELL_LOG_LEVEL.
	EnvPrefix = "fshell"

	// Application config keys.
	ConfigKeyLogLevel     = "log-level"
	ConfigKeyConfigFile   = "config"
	ConfigKeyDir          = "dir"
	ConfigKeyDryRun       = "dry-run"
	ConfigKeyInMemory     = "in-memory"
	ConfigKeyOutput       = "output"
	ConfigKeyNoColor      = "no-color"
	ConfigKeyAssumeYes    = "assume-yes"
	ConfigKeyCommand      = "command"
	ConfigKeyRetryTimeout = "retry-timeout"
	ConfigKeyWalkWorkers  = "walk-workers"

	// Output formats.
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTOML  = "toml"

	// DefaultConfigFileName is looked up in the working directory when no
	// --config flag is given. It is optional.
	DefaultConfigFileName = ".fshell.json"

	// Default values
	//
	// DefaultLogLevel is the level logrus should default to if the configured
	// option can't be parsed.
	DefaultLogLevel     = logrus.InfoLevel
	DefaultConfigFile   = ""
	DefaultDir          = ""
	DefaultDryRun       = false
	DefaultInMemory     = false
	DefaultOutput       = OutputTable
	DefaultNoColor      = false
	DefaultAssumeYes    = false
	DefaultRetryTimeout = 2 * time.Second
	DefaultWalkWorkers  = 0
)

var DefaultLogLevelStr = DefaultLogLevel.String()

// OutputFormats lists every accepted value of the output option.
var OutputFormats = []string{OutputTable, OutputJSON, OutputYAML, OutputTOML}
