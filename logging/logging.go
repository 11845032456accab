// ABOUTME: Global zerolog setup for CLI and interactive modes
// ABOUTME: Console output on stderr, or a rotating debug file when the terminal is owned by the UI

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DebugLogFile is the file written when debug logging is enabled
const DebugLogFile = "ifl-sequencer-debug.log"

// Debug log rotation limits
const (
	debugMaxSizeMB  = 10
	debugMaxBackups = 3
	debugMaxAgeDays = 7
)

// ParseLevel maps debug, info, warn and error to zerolog levels (default: info)
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init sets the global level and writes human-readable output to w (stderr when nil).
// Extra writers receive the same events as JSON lines.
func Init(level string, w io.Writer, extra ...io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	zerolog.SetGlobalLevel(ParseLevel(level))

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	if len(extra) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, extra...)...)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// NewDebugWriter returns a size-rotated writer for the debug log file
func NewDebugWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    debugMaxSizeMB,
		MaxBackups: debugMaxBackups,
		MaxAge:     debugMaxAgeDays,
		LocalTime:  true,
	}
}

// InitDebugFile routes all logging at debug level into path.
// Used by the interactive modes, where stderr output would corrupt the screen.
func InitDebugFile(path string) io.Closer {
	w := NewDebugWriter(path)

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	return w
}

// Discard silences all logging (interactive modes without --debug)
func Discard() {
	log.Logger = zerolog.New(io.Discard)
}
