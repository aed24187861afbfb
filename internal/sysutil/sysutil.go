// Package sysutil holds process-level helpers: logger construction and
// small string utilities used while booting the server.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tbourn/go-marketplace-backend/internal/config"
)

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
// Anything else falls back to info. The applied level is returned.
func SetLogLevel(lvl string) zerolog.Level {
	level := zerolog.InfoLevel
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn", "warning":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	case "panic":
		level = zerolog.PanicLevel
	}
	zerolog.SetGlobalLevel(level)
	return level
}

// NewLogger builds the process logger. Output goes to stdout (pretty when
// cfg.LogPretty) and, when cfg.LogFile.Path is set, also to a rotating JSON
// file. The returned closer releases the file; it is a no-op otherwise.
func NewLogger(cfg config.Config, stdout io.Writer) (zerolog.Logger, io.Closer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	var console io.Writer = stdout
	if cfg.LogPretty {
		console = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.RFC3339}
	}

	var closer io.Closer = nopCloser{}
	out := console
	if rot := RotatingFile(cfg.LogFile); rot != nil {
		out = zerolog.MultiLevelWriter(console, rot)
		closer = rot
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	return logger, closer
}

// RotatingFile returns a size-rotated log file, or nil when lf.Path is empty.
func RotatingFile(lf config.LogFileConfig) *lumberjack.Logger {
	if strings.TrimSpace(lf.Path) == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   lf.Path,
		MaxSize:    lf.MaxSizeMB,
		MaxBackups: lf.MaxBackups,
		MaxAge:     lf.MaxAgeDays,
		Compress:   lf.Compress,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// FirstNonEmpty returns the first non-blank string from a variadic list.
// If all values are blank, it returns "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
