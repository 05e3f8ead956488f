// Package logging builds the command-line logger: a zap core that writes
// human-readable lines to the console and, optionally, JSON lines to a
// rotated log file. The same core backs the slog logger handed to the
// stringart package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Field names used by both encoders.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldSource     = "source"
	FieldMessage    = "message"
	FieldStacktrace = "stacktrace"
	FieldCaller     = "caller"
)

// Log file rotation defaults.
const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
)

// Options configures New.
type Options struct {
	// Dev enables debug output with a colored console encoder.
	Dev bool

	// File is the path of the rotated JSON log file. Empty disables it.
	File string

	// Console receives console output. Nil means os.Stderr.
	Console io.Writer
}

// Logger is a zap logger together with the file sink it owns.
type Logger struct {
	*zap.Logger
	file *lumberjack.Logger
}

// New builds a logger. Debug level is enabled in dev mode, info otherwise.
func New(opts Options) *Logger {
	level := zapcore.InfoLevel
	if opts.Dev {
		level = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var consoleEncoder zapcore.Encoder
	if opts.Dev {
		consoleEncoder = zapcore.NewConsoleEncoder(consoleEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(plainEncoderConfig())
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, zapcore.AddSync(console), level)}

	l := &Logger{}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(l.file),
			level,
		))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...))
	return l
}

// Slog returns a slog logger writing through the same core.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(zapslog.NewHandler(l.Core()))
}

// Close flushes buffered entries and closes the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// fileEncoderConfig is the JSON layout of the log file.
func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        FieldTimestamp,
		LevelKey:       FieldLevel,
		NameKey:        FieldSource,
		CallerKey:      FieldCaller,
		MessageKey:     FieldMessage,
		StacktraceKey:  FieldStacktrace,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// consoleEncoderConfig colors levels for interactive use.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := plainEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func plainEncoderConfig() zapcore.EncoderConfig {
	cfg := fileEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = shortTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func shortTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}
