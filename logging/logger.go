package logging

import (
	dtlogger "github.com/datatrails/go-datatrails-common/logger"
)

// Logger is the collaborator every construction- and query-path error
// report in this module is routed through. It is satisfied structurally
// by *logger.SugaredLogger from the datatrails logger, so production
// callers can pass that directly or go through New below.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// New returns a Logger scoped to serviceName, using the underlying
// logger's WithServiceName convention. Init must have been called once
// (typically from main) before New is useful outside of tests.
func New(serviceName string) Logger {
	return dtlogger.Sugar.WithServiceName(serviceName)
}

// Init installs the process-wide logging sink with a `New(levelName);
// defer OnExit()` pairing, and should be called once, early, by
// cmd/taxonstat's main.
func Init(levelName string) func() {
	dtlogger.New(levelName)
	return dtlogger.OnExit
}

// NoOp returns a Logger that discards everything. It is the default for
// library callers that construct an Engine without supplying a logger.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
