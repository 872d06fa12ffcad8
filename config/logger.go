package config

import "github.com/sirupsen/logrus"

// Logger is the structured-logging seam every component logs through. The
// session actor, transport, and client surface all accept one rather than
// calling a package-level logger, so an embedder can route engine logs
// wherever its own logging already goes.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithField(key string, value interface{}) Logger
}

// logrusLogger adapts a *logrus.Entry to Logger.
type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps a *logrus.Logger as this engine's default Logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.New()
	}
	return logrusLogger{entry: logrus.NewEntry(l)}
}

func (l logrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l logrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l logrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l logrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l logrusLogger) WithField(key string, value interface{}) Logger {
	return logrusLogger{entry: l.entry.WithField(key, value)}
}

// NopLogger discards everything, useful for tests that don't want log
// noise but still need something satisfying Logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}
func (NopLogger) WithField(string, interface{}) Logger { return NopLogger{} }
