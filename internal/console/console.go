// Package console holds the process-wide logger. It is a no-op until
// Initialize is called, so packages can log unconditionally.
package console

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log printf-style leveled logger backed by zap.
type Log struct {
	sugar *zap.SugaredLogger
}

// Logger the shared logger instance.
var Logger = &Log{sugar: zap.NewNop().Sugar()}

// Level names accepted by Initialize.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Initialize replaces the shared logger with a console logger writing to
// stderr at the given level.
func Initialize(level string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(lvl),
	)
	Logger = &Log{sugar: zap.New(core).Sugar()}
	return nil
}

// Use installs an existing zap logger, mostly for tests.
func Use(l *zap.Logger) {
	Logger = &Log{sugar: l.Sugar()}
}

// Sync flushes buffered entries.
func (l *Log) Sync() error {
	return l.sugar.Sync()
}

func (l *Log) Debug(format string, args ...any) {
	l.sugar.Debugf(trim(format), args...)
}

func (l *Log) Info(format string, args ...any) {
	l.sugar.Infof(trim(format), args...)
}

func (l *Log) Warn(format string, args ...any) {
	l.sugar.Warnf(trim(format), args...)
}

func (l *Log) Error(format string, args ...any) {
	l.sugar.Errorf(trim(format), args...)
}

// Printf satisfies the Debugger interfaces used by the services.
func (l *Log) Printf(format string, args ...any) {
	l.sugar.Infof(trim(format), args...)
}

func trim(format string) string {
	return strings.TrimRight(format, "\n")
}
