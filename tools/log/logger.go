// Package log is the process-wide logging facade over logrus.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var (
	WarnLevel  = logrus.WarnLevel
	DebugLevel = logrus.DebugLevel
)

type (
	TextFormatter = logrus.TextFormatter
	Level         = logrus.Level
	Fields        = logrus.Fields
)

// CheckErr logs err at level when it is not nil.
func CheckErr(level logrus.Level, err error) {
	if err != nil {
		Log(level, err)
	}
}

// Log writes messages at the given level.
func Log(level logrus.Level, messages ...interface{}) {
	switch level {
	case logrus.InfoLevel:
		logrus.Info(messages...)
	case logrus.WarnLevel:
		logrus.Warn(messages...)
	case logrus.ErrorLevel:
		logrus.Error(messages...)
	case logrus.FatalLevel:
		logrus.Fatal(messages...)
	case logrus.PanicLevel:
		logrus.Panic(messages...)
	case logrus.DebugLevel:
		fallthrough
	default:
		logrus.Debug(messages...)
	}
}

func SetFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

func SetLevel(level logrus.Level) {
	logrus.SetLevel(level)
}

// ParseLevel accepts logrus level names such as "debug" or "warn".
func ParseLevel(name string) (Level, error) {
	return logrus.ParseLevel(name)
}

func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

func IsDebug() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return logrus.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func WithError(err error) *logrus.Entry {
	return logrus.WithError(err)
}

func Infof(format string, messages ...interface{}) {
	logrus.Infof(format, messages...)
}

func Warnf(format string, messages ...interface{}) {
	logrus.Warnf(format, messages...)
}
