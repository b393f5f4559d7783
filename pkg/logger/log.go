/*
 * Copyright 2024 Skills-Go Project Authors. Licensed under Apache-2.0.
 */

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type (
	alwaysLevel     struct{}
	loggerComposite struct {
		debug  *zap.Logger
		debugS *zap.SugaredLogger
		info   *zap.Logger
		infoS  *zap.SugaredLogger
		warn   *zap.Logger
		warnS  *zap.SugaredLogger
		error  *zap.Logger
		errorS *zap.SugaredLogger
		stat   *zap.Logger
	}
)

var (
	zapLogger    *loggerComposite
	DebugEnabled = false
)

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		CallerKey:        "caller",
		MessageKey:       "msg",
		StacktraceKey:    "stacktrace",
		ConsoleSeparator: " ",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.LowercaseLevelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration:   zapcore.SecondsDurationEncoder,
	}
}

// init initializes default loggers (to console)
func init() {
	encoderConfig := newEncoderConfig()

	newConsoleLogger := func() *zap.Logger {
		return zap.New(
			zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), alwaysLevel{}),
		)
	}

	zapLogger = &loggerComposite{
		debug: newConsoleLogger(),
		info:  newConsoleLogger(),
		warn:  newConsoleLogger(),
		error: newConsoleLogger(),
		stat:  newConsoleLogger(),
	}
	zapLogger.sugar()
}

func (c *loggerComposite) sugar() {
	c.debugS = c.debug.Sugar()
	c.infoS = c.info.Sugar()
	c.warnS = c.warn.Sugar()
	c.errorS = c.error.Sugar()
}

func (a alwaysLevel) Enabled(level zapcore.Level) bool {
	return true
}

// SetupFileLogger switches loggers to rotated files under logDir, keeping
// console output when alsoConsole is true.
func SetupFileLogger(logDir string, alsoConsole bool) {
	encoderConfig := newEncoderConfig()

	newFileLogger := func(name string) *zap.Logger {
		w := &lumberjack.Logger{
			Filename:   filepath.Join(logDir, name),
			MaxSize:    1024,
			MaxBackups: 7,
			MaxAge:     7,
		}
		fileCore := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), alwaysLevel{})
		if alsoConsole {
			return zap.New(zapcore.NewTee(
				fileCore,
				zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), alwaysLevel{}),
			))
		}
		return zap.New(fileCore)
	}

	zapLogger = &loggerComposite{
		debug: newFileLogger("debug.log"),
		info:  newFileLogger("info.log"),
		warn:  newFileLogger("warn.log"),
		error: newFileLogger("error.log"),
		stat:  newFileLogger("stat.log"),
	}
	zapLogger.sugar()
	registerHttpHandler()
}

func Debugz(msg string, fields ...zap.Field) {
	if DebugEnabled {
		zapLogger.debug.Info(msg, fields...)
	}
}
func Infoz(msg string, fields ...zap.Field) {
	zapLogger.info.Info(msg, fields...)
}
func Warnz(msg string, fields ...zap.Field) {
	zapLogger.warn.Info(msg, fields...)
}
func Errorz(msg string, fields ...zap.Field) {
	zapLogger.error.Info(msg, fields...)
}

func Debugw(msg string, keyAndValues ...interface{}) {
	if DebugEnabled {
		zapLogger.debugS.Infow(msg, keyAndValues...)
	}
}
func Infow(msg string, keyAndValues ...interface{}) {
	zapLogger.infoS.Infow(msg, keyAndValues...)
}
func Warnw(msg string, keyAndValues ...interface{}) {
	zapLogger.warnS.Infow(msg, keyAndValues...)
}
func Errorw(msg string, keyAndValues ...interface{}) {
	zapLogger.errorS.Infow(msg, keyAndValues...)
}

func Debugf(msg string, args ...interface{}) {
	if DebugEnabled {
		zapLogger.debugS.Infof(msg, args...)
	}
}
func Infof(msg string, args ...interface{}) {
	zapLogger.infoS.Infof(msg, args...)
}
func Warnf(msg string, args ...interface{}) {
	zapLogger.warnS.Infof(msg, args...)
}
func Errorf(msg string, args ...interface{}) {
	zapLogger.errorS.Infof(msg, args...)
}

func Stat(msg string) {
	zapLogger.stat.Info(msg)
}

func IsDebugEnabled() bool {
	return DebugEnabled
}

func TestMode() {
}
