// Package logger wraps zap with a small, configurable surface used across the
// test-automation helpers. Console output is human oriented (optionally
// colored); file output is JSON and rotated via lumberjack.
//
// Initialize the global logger once at startup:
//
//	logOpts := logger.DefaultOptions()
//	logOpts.ConsoleLevel = logger.DebugLevel
//	logger.Init(logOpts)
//	defer logger.SyncGlobal()
package logger

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level defines the log level, mapped to zapcore.Level underneath.
type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns a lowercase string representation of the Level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", l)
	}
}

func (l Level) toZapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Options holds configuration for the logger.
type Options struct {
	// ConsoleLevel sets the minimum log level for console output.
	ConsoleLevel Level
	// FileLevel sets the minimum log level for file output.
	FileLevel Level
	// LogFilePath specifies the path to the log file. Required if FileOutput is true.
	LogFilePath string
	// ConsoleOutput enables logging to os.Stdout.
	ConsoleOutput bool
	// FileOutput enables JSON logging to a rotated file.
	FileOutput bool
	// ColorConsole enables ANSI-colored level names on the console.
	ColorConsole bool
	// TimestampFormat defines the timestamp layout (defaults to time.RFC3339).
	TimestampFormat string
	// MaxFileSizeMB and MaxBackups control file rotation.
	MaxFileSizeMB int
	MaxBackups    int
}

// DefaultOptions returns the configuration used when nothing else is asked for:
// INFO+ colored console output, file output disabled.
func DefaultOptions() Options {
	return Options{
		ConsoleLevel:    InfoLevel,
		FileLevel:       DebugLevel,
		LogFilePath:     "cephci.log",
		ConsoleOutput:   true,
		FileOutput:      false,
		ColorConsole:    true,
		TimestampFormat: time.RFC3339,
		MaxFileSizeMB:   100,
		MaxBackups:      3,
	}
}

// Logger is a thin wrapper around zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
	opts Options
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger. Subsequent calls are no-ops. On failure
// it falls back to a basic development logger on stderr so logging is always
// available.
func Init(opts Options) {
	once.Do(func() {
		var err error
		globalLogger, err = NewLogger(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v, falling back to console logging\n", err)
			cfg := zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			l, _ := cfg.Build(zap.AddCallerSkip(1))
			globalLogger = &Logger{SugaredLogger: l.Sugar(), opts: opts}
		}
	})
}

// Get returns the global logger, initializing it with DefaultOptions if Init
// was never called.
func Get() *Logger {
	if globalLogger == nil {
		Init(DefaultOptions())
	}
	return globalLogger
}

// NewLogger creates an independent Logger instance from opts.
func NewLogger(opts Options) (*Logger, error) {
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = time.RFC3339
	}

	var cores []zapcore.Core

	if opts.ConsoleOutput {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
		if opts.ColorConsole {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		consoleCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stdout),
			zap.NewAtomicLevelAt(opts.ConsoleLevel.toZapLevel()),
		)
		cores = append(cores, consoleCore)
	}

	if opts.FileOutput {
		if opts.LogFilePath == "" {
			return nil, fmt.Errorf("log file path cannot be empty when file output is enabled")
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogFilePath,
			MaxSize:    opts.MaxFileSizeMB,
			MaxBackups: opts.MaxBackups,
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			fileWriter,
			zap.NewAtomicLevelAt(opts.FileLevel.toZapLevel()),
		)
		cores = append(cores, fileCore)
	}

	if len(cores) == 0 {
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), opts: opts}, nil
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{SugaredLogger: zapLogger.Sugar(), opts: opts}, nil
}

// With returns a child logger with the supplied structured context.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...), opts: l.opts}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	if l == nil || l.SugaredLogger == nil {
		return nil
	}
	return l.SugaredLogger.Sync()
}

// Global convenience functions backed by the global logger.

func Debug(template string, args ...interface{}) { Get().Debugf(template, args...) }
func Info(template string, args ...interface{})  { Get().Infof(template, args...) }
func Warn(template string, args ...interface{})  { Get().Warnf(template, args...) }
func Error(template string, args ...interface{}) { Get().Errorf(template, args...) }
func Fatal(template string, args ...interface{}) { Get().Fatalf(template, args...) }

// SyncGlobal flushes the global logger. Call before process exit.
func SyncGlobal() error {
	return Get().Sync()
}
