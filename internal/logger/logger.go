package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	fileSink      *lumberjack.Logger
)

// Options controls where and how verbosely the logger writes.
type Options struct {
	// "production" selects JSON at INFO, anything else text at DEBUG
	Environment string

	// when set, logs go to a size-rotated file instead of the console
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// initializes the logger based on environment
func init() {
	Configure(Options{
		Environment: os.Getenv("ENVIRONMENT"),
		File:        os.Getenv("LOG_FILE"),
	})
}

// Configure replaces the default logger.
func Configure(opts Options) {
	var out io.Writer = os.Stderr
	var sink *lumberjack.Logger

	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 10
		}

		maxBackups := opts.MaxBackups
		if maxBackups <= 0 {
			maxBackups = 3
		}

		sink = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		}
		out = sink
	}

	var handler slog.Handler

	if opts.Environment == "production" {
		if opts.File == "" {
			out = os.Stdout
		}
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	mu.Lock()
	defer mu.Unlock()

	if fileSink != nil {
		fileSink.Close() //nolint:errcheck,gosec // previous sink is being replaced
	}

	fileSink = sink
	defaultLogger = slog.New(handler)
}

// flushes and closes the rotating file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if fileSink == nil {
		return nil
	}

	err := fileSink.Close()
	fileSink = nil
	return err
}

// returns the default logger instance
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return Default().With(args...)
}

// returns the logger stored in ctx, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return Default()
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

type loggerKey struct{}

func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Default().Error(msg, args...)
}

// logs a fatal error with error and exits
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	Default().Error(msg, args...)
	os.Exit(1)
}
