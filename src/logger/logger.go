package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xyproto/randomstring"
)

const runIDLen = 8

// NewRunID returns a short readable identifier used to name the log file of a run.
func NewRunID() string {
	return randomstring.EnglishFrequencyString(runIDLen)
}

// Init sets up global logging to elevsim-<runID>.log in dir, also copied to echo when it is not nil.
// The returned function closes the log file.
func Init(runID, dir string, level slog.Level, echo io.Writer) (func() error, error) {
	path := filepath.Join(dir, fmt.Sprintf("elevsim-%s.log", runID))
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %s: %w", path, err)
	}

	var w io.Writer = logFile
	if echo != nil {
		w = io.MultiWriter(echo, logFile)
	}
	logger := slog.New(NewHandler(w, level)).With("run", runID)
	slog.SetDefault(logger)
	return logFile.Close, nil
}

// NewHandler returns a text handler with compact time format and file:line source.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(NewHandler(io.Discard, slog.LevelError+1))
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("logger: level %q: %w", s, err)
	}
	return level, nil
}
