// Package logging builds the process logger and adapts it to types.Logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/goliatone/go-accountctl/pkg/types"
)

const (
	logMaxSize    = 100 // MB
	logMaxBackups = 3
	logMaxAge     = 365 // days
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"error": slog.LevelError,
}

// New returns a text logger at the given level. Log lines go to a rotated
// file when logFile is set, otherwise to fallback (os.Stderr when nil).
func New(logLevel, logFile string, fallback io.Writer) *slog.Logger {
	w := fallback
	if w == nil {
		w = os.Stderr
	}
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
		}
	}
	return NewWithWriter(logLevel, w)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(logLevel string, w io.Writer) *slog.Logger {
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: logLevels[logLevel],
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		}),
	)
}

// Adapter satisfies types.Logger on top of slog.
type Adapter struct {
	Logger *slog.Logger
}

var _ types.Logger = Adapter{}

// Debug implements types.Logger.
func (a Adapter) Debug(msg string, fields ...any) {
	a.logger().Debug(msg, fields...)
}

// Info implements types.Logger.
func (a Adapter) Info(msg string, fields ...any) {
	a.logger().Info(msg, fields...)
}

// Error implements types.Logger.
func (a Adapter) Error(msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "err", err)
	}
	a.logger().Error(msg, fields...)
}

func (a Adapter) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
