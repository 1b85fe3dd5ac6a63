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

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uwu-tools/fshell/internal/filesystem"
	"github.com/uwu-tools/fshell/internal/options"
)

// fs is used to locate the config file and validate the start directory.
var fs filesystem.Filesystem = &filesystem.OsFs{}

// config is the root configuration object the application creates.
//
//nolint:govet
type config struct {
	// cmdFile is the file Viper loaded its configuration from, if any.
	cmdFile string

	// cmdConfig merges the command line, the environment and the config
	// file.
	cmdConfig *viper.Viper

	// ctx carries the cancellation signal of the session.
	ctx context.Context

	// logger backs log; its level follows config file changes.
	logger *logrus.Logger

	// log is a logger set up with the configured log level, app name, etc.
	log *logrus.Entry
}

// New creates the configuration object from the flags of cmd, the
// FSHELL_* environment and the optional JSON config file, and validates
// it. The shell never writes the config file back.
func New(ctx context.Context, cmd *cobra.Command) (IConfig, error) {
	cfgFile, err := getConfigFilePath(cmd)
	if err != nil {
		return nil, err
	}

	c := &config{
		cmdFile: cfgFile,
		ctx:     ctx,
	}

	c.cmdConfig = newViper(options.AppName, cfgFile)
	if err := c.cmdConfig.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	c.logger, c.log = newLogger(
		options.AppName,
		c.cmdConfig.GetString(options.ConfigKeyLogLevel),
	)

	if cfgFile != "" {
		c.watch()
	}

	if err := c.validateConfig(); err != nil {
		return nil, err
	}

	return c, nil
}

// Context returns the context.
func (c *config) Context() context.Context {
	return c.ctx
}

// GetConfigFile returns the file that Viper loaded the configuration from.
func (c *config) GetConfigFile() string {
	return c.cmdFile
}

// GetConfigString returns a string value from the Viper configuration.
func (c *config) GetConfigString(key string) string {
	return c.cmdConfig.GetString(key)
}

// GetLogger returns the configured application logger.
func (c *config) GetLogger() *logrus.Entry {
	return c.log
}

// IsDryRun returns whether mutations are only logged.
func (c *config) IsDryRun() bool {
	return c.cmdConfig.GetBool(options.ConfigKeyDryRun)
}

// IsInMemory returns whether the session runs on an in-memory tree.
func (c *config) IsInMemory() bool {
	return c.cmdConfig.GetBool(options.ConfigKeyInMemory)
}

// IsNoColor returns whether styled output is disabled.
func (c *config) IsNoColor() bool {
	return c.cmdConfig.GetBool(options.ConfigKeyNoColor)
}

// AssumeYes returns whether every confirmation is approved up front.
func (c *config) AssumeYes() bool {
	return c.cmdConfig.GetBool(options.ConfigKeyAssumeYes)
}

// GetDir returns the directory the session starts in; empty means the
// process working directory.
func (c *config) GetDir() string {
	return c.cmdConfig.GetString(options.ConfigKeyDir)
}

// GetOutput returns the output format.
func (c *config) GetOutput() string {
	return c.cmdConfig.GetString(options.ConfigKeyOutput)
}

// GetCommand returns the single command to run, if any.
func (c *config) GetCommand() string {
	return c.cmdConfig.GetString(options.ConfigKeyCommand)
}

// GetRetryTimeout returns the budget for retrying transient filesystem
// errors.
func (c *config) GetRetryTimeout() time.Duration {
	return c.cmdConfig.GetDuration(options.ConfigKeyRetryTimeout)
}

// GetWalkWorkers returns the parallelism of recursive walks.
func (c *config) GetWalkWorkers() int {
	return c.cmdConfig.GetInt(options.ConfigKeyWalkWorkers)
}

// getConfigFilePath returns the config file to load. An explicit --config
// must exist; otherwise DefaultConfigFileName in the working directory is
// used when present.
func getConfigFilePath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString(options.ConfigKeyConfigFile)
	if err != nil {
		path = ""
	}

	if path != "" {
		if _, err := fs.Stat(path); err != nil {
			return "", fmt.Errorf("checking config file %s: %w", path, err)
		}
		return path, nil
	}

	wd, err := fs.Getwd()
	if err != nil {
		return "", nil //nolint:nilerr
	}
	path = filepath.Join(wd, options.DefaultConfigFileName)
	if _, err := fs.Stat(path); err != nil {
		return "", nil //nolint:nilerr
	}
	return path, nil
}

// newViper generates a viper configuration object which
// merges (in order from highest to lowest priority) the
// command line options, environment, configuration file
// options, and default configuration values. This viper
// object becomes the single source of truth for the app
// configuration.
func newViper(appName, cfgFile string) *viper.Viper {
	log := logrus.New()
	v := viper.New()

	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		return v
	}

	v.SetConfigFile(cfgFile)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		log.WithError(err).Warningf("Error reading config file: %v", cfgFile)
	} else {
		log.WithField("file", v.ConfigFileUsed()).Debug("config file loaded")
	}

	return v
}

// watch re-applies the log level whenever the config file changes.
func (c *config) watch() {
	c.cmdConfig.OnConfigChange(func(e fsnotify.Event) {
		level := parseLogLevel(c.cmdConfig.GetString(options.ConfigKeyLogLevel))
		c.logger.SetLevel(level)
		c.log.WithFields(logrus.Fields{"file": e.Name, "log-level": level}).Info("config file changed")
	})
	c.cmdConfig.WatchConfig()
}

// parseLogLevel is a helper function to parse the log level passed in the
// configuration into a logrus Level, or to use the default log level set
// above if the log level can't be parsed.
func parseLogLevel(level string) logrus.Level {
	if level == "" {
		return options.DefaultLogLevel
	}

	ll, err := logrus.ParseLevel(level)
	if err != nil {
		fmt.Printf("Failed to parse log level, using default. Error: %v\n", err)
		return options.DefaultLogLevel
	}
	return ll
}

// newLogger uses the log level provided in the configuration
// to create a new logrus logger and set fields on it to make
// it easy to use. Logs go to stderr so they never mix with command
// output.
func newLogger(app, level string) (*logrus.Logger, *logrus.Entry) {
	logger := logrus.New()
	logger.Level = parseLogLevel(level)
	logEntry := logrus.NewEntry(logger).WithFields(logrus.Fields{
		"app": app,
	})
	logEntry.WithField("log-level", logger.Level).Debug("log level set")
	return logger, logEntry
}

// validateConfig checks the values provided to the configuration
// options. The start directory is checked on the real filesystem
// unless the session runs in memory.
func (c *config) validateConfig() error {
	c.log.Debug("Checking config variables...")

	output := c.cmdConfig.GetString(options.ConfigKeyOutput)
	if output == "" {
		c.cmdConfig.Set(options.ConfigKeyOutput, options.DefaultOutput)
	} else if !slices.Contains(options.OutputFormats, output) {
		return fmt.Errorf("%w: %q", errOutputInvalid, output)
	}

	if c.cmdConfig.GetDuration(options.ConfigKeyRetryTimeout) < 0 {
		return errRetryTimeoutInvalid
	}

	if c.cmdConfig.GetInt(options.ConfigKeyWalkWorkers) < 0 {
		return errWalkWorkersInvalid
	}

	dir := c.cmdConfig.GetString(options.ConfigKeyDir)
	if dir != "" && !c.cmdConfig.GetBool(options.ConfigKeyInMemory) {
		info, err := fs.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", errDirInvalid, dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", errDirInvalid, dir)
		}
	}

	c.log.Debug("All config variables are valid!")

	return nil
}

// Errors

var (
	errOutputInvalid       = errors.New("output must be one of " + strings.Join(options.OutputFormats, ", "))
	errRetryTimeoutInvalid = errors.New("retry timeout must not be negative")
	errWalkWorkersInvalid  = errors.New("walk workers must not be negative")
	errDirInvalid          = errors.New("start directory must be an existing directory")
)
