// Package logging sets up the zerolog logger shared by the shell: a human
// readable console stream plus a JSON file per run.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxLogFiles is how many run logs are kept in the log directory.
const MaxLogFiles = 10

const filePrefix = "bowlrms_"

// Options configures New.
type Options struct {
	Level   string
	Dir     string    // empty disables the file log
	Console io.Writer // nil disables console output
}

// Logger is the configured logger plus the file it writes to.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a Logger. It never fails outright: if the log file cannot be
// created the error is returned alongside a console-only logger.
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: "15:04:05"})
	}

	var file *os.File
	var fileErr error
	if opts.Dir != "" {
		file, fileErr = openLogFile(opts.Dir)
		if fileErr == nil {
			writers = append(writers, file)
		}
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	l := &Logger{
		Logger: zerolog.New(out).Level(level).With().Timestamp().Logger(),
		file:   file,
	}

	if err != nil {
		l.Warn().Err(err).Msg("Falling back to info level")
	}
	if fileErr != nil {
		return l, fileErr
	}

	if opts.Dir != "" {
		if err := prune(opts.Dir, MaxLogFiles); err != nil {
			l.Warn().Err(err).Msg("Failed to prune old logs")
		}
	}
	return l, nil
}

// Component returns a child logger tagged with the component name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Path returns the current log file, or "" when logging to console only.
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	if level == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return level, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s%s.log", filePrefix, time.Now().Format("2006-01-02_15-04-05"))
	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// prune deletes the oldest run logs so at most keep remain.
func prune(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), filePrefix) || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) <= keep {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}
