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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"sigs.k8s.io/release-utils/log"
	"sigs.k8s.io/release-utils/version"

	"github.com/uwu-tools/fshell/internal/config"
	"github.com/uwu-tools/fshell/internal/options"
	"github.com/uwu-tools/fshell/internal/ui"
)

var opts = &options.Options{}

// Execute provides a single function to run the root command and handle errors.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// RootCmd represents the command itself and configures it.
var RootCmd = &cobra.Command{
	Use:               "fshell [options]",
	Short:             "An interactive console file explorer",
	Long:              "fshell reads one command per line (ls, cd, mkdir, rm, cp, mv, find, ...) and runs it against the filesystem. Destructive steps ask for confirmation first.",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := config.New(ctx, cmd)
		if err != nil {
			return fmt.Errorf("creating new config: %w", err)
		}

		sh, err := newShell(cfg, os.Stdin, os.Stdout, os.Stderr, ui.IsTerminal(os.Stdin))
		if err != nil {
			return fmt.Errorf("starting session: %w", err)
		}

		if line := cfg.GetCommand(); line != "" {
			return sh.Exec(line) //nolint:wrapcheck
		}
		return sh.Run(cfg.Context()) //nolint:wrapcheck
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(
		&opts.LogLevel,
		options.ConfigKeyLogLevel,
		options.DefaultLogLevelStr,
		fmt.Sprintf("the logging verbosity, either %s", log.LevelNames()),
	)

	RootCmd.PersistentFlags().StringVar(
		&opts.ConfigFile,
		options.ConfigKeyConfigFile,
		options.DefaultConfigFile,
		fmt.Sprintf("viper config file location (default ./%s if present)", options.DefaultConfigFileName),
	)

	RootCmd.PersistentFlags().StringVarP(
		&opts.Dir,
		options.ConfigKeyDir,
		"C",
		options.DefaultDir,
		"start the session in this directory instead of the working directory",
	)

	RootCmd.PersistentFlags().StringVarP(
		&opts.Output,
		options.ConfigKeyOutput,
		"o",
		options.DefaultOutput,
		fmt.Sprintf("output format, one of %s", strings.Join(options.OutputFormats, ", ")),
	)

	RootCmd.PersistentFlags().StringVarP(
		&opts.Command,
		options.ConfigKeyCommand,
		"c",
		"",
		"run a single command line and exit",
	)

	RootCmd.PersistentFlags().BoolVarP(
		&opts.DryRun,
		options.ConfigKeyDryRun,
		"d",
		options.DefaultDryRun,
		"print out actions to be taken, but do not execute them",
	)

	RootCmd.PersistentFlags().BoolVar(
		&opts.InMemory,
		options.ConfigKeyInMemory,
		options.DefaultInMemory,
		"run against an empty in-memory filesystem",
	)

	RootCmd.PersistentFlags().BoolVar(
		&opts.NoColor,
		options.ConfigKeyNoColor,
		options.DefaultNoColor,
		"disable styled output",
	)

	RootCmd.PersistentFlags().BoolVarP(
		&opts.AssumeYes,
		options.ConfigKeyAssumeYes,
		"y",
		options.DefaultAssumeYes,
		"answer yes to every confirmation",
	)

	RootCmd.PersistentFlags().DurationVar(
		&opts.RetryTimeout,
		options.ConfigKeyRetryTimeout,
		options.DefaultRetryTimeout,
		"how long to retry busy files on rename and remove; 0 disables retries",
	)

	RootCmd.PersistentFlags().IntVar(
		&opts.WalkWorkers,
		options.ConfigKeyWalkWorkers,
		options.DefaultWalkWorkers,
		"parallel workers for recursive searches; 0 picks a default",
	)

	RootCmd.AddCommand(version.Version())
	RootCmd.SetContext(context.Background())
}

func initLogging(*cobra.Command, []string) error {
	err := log.SetupGlobalLogger(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("setting up global logger: %w", err)
	}
	return nil
}
