package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vera/internal/security/redaction"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// FileLogger writes timestamped, component-scoped lines to a shared sink.
// Every formatted message passes through the redaction filter before being
// written, so emails, phone numbers, and card numbers never reach the file.
type FileLogger struct {
	mu        *sync.Mutex
	out       io.Writer
	closer    io.Closer
	level     Level
	component string
	now       func() time.Time
}

// NewFileLogger opens (or creates) the log file at path.
func NewFileLogger(path string, level Level) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &FileLogger{
		mu:     &sync.Mutex{},
		out:    file,
		closer: file,
		level:  level,
		now:    time.Now,
	}, nil
}

// NewWriterLogger wraps an arbitrary writer. Used by tests and the CLI's
// verbose mode.
func NewWriterLogger(out io.Writer, level Level) *FileLogger {
	return &FileLogger{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		now:   time.Now,
	}
}

// WithComponent returns a logger that shares the sink but tags lines with
// the component name.
func (l *FileLogger) WithComponent(component string) *FileLogger {
	clone := *l
	clone.component = component
	return &clone
}

// Close closes the underlying file, if any.
func (l *FileLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *FileLogger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := redaction.Filter(fmt.Sprintf(format, args...))
	timestamp := l.now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("[%s] [%s]", timestamp, level)
	if l.component != "" {
		line += fmt.Sprintf(" [%s]", l.component)
	}
	line += " " + msg + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, line)
}

func (l *FileLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *FileLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *FileLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *FileLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
