package config

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IConfig interface {
	Context() context.Context
	GetConfigFile() string
	GetConfigString(key string) string
	GetLogger() *logrus.Entry
	IsDryRun() bool
	IsInMemory() bool
	IsNoColor() bool
	AssumeYes() bool
	GetDir() string
	GetOutput() string
	GetCommand() string
	GetRetryTimeout() time.Duration
	GetWalkWorkers() int
}
