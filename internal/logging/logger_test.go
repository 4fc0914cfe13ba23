package logging

import (
	"bytes"
	"strings"
	"testing"

	"vera/internal/security/redaction"
)

type capture struct {
	lines []string
}

func (c *capture) Debug(format string, _ ...any) { c.lines = append(c.lines, "D:"+format) }
func (c *capture) Info(format string, _ ...any)  { c.lines = append(c.lines, "I:"+format) }
func (c *capture) Warn(format string, _ ...any)  { c.lines = append(c.lines, "W:"+format) }
func (c *capture) Error(format string, _ ...any) { c.lines = append(c.lines, "E:"+format) }

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	var typed *FileLogger
	OrNop(typed).Info("must not panic")

	c := &capture{}
	OrNop(c).Info("hello")
	if len(c.lines) != 1 {
		t.Errorf("expected passthrough to wrapped logger, got %v", c.lines)
	}
}

func TestMulti(t *testing.T) {
	a, b := &capture{}, &capture{}
	logger := Multi(a, nil, b)
	logger.Warn("careful")
	if len(a.lines) != 1 || len(b.lines) != 1 {
		t.Errorf("expected fan-out to both loggers, got %v / %v", a.lines, b.lines)
	}
}

func TestFileLogger_RedactsBeforeWrite(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelDebug).WithComponent("dispatch")
	logger.Info("turn input: email me at alice@example.com")

	out := buf.String()
	if strings.Contains(out, "alice@example.com") {
		t.Errorf("raw email leaked into log: %q", out)
	}
	if !strings.Contains(out, redaction.EmailPlaceholder) {
		t.Errorf("expected placeholder in log line, got %q", out)
	}
	if !strings.Contains(out, "[dispatch]") {
		t.Errorf("expected component tag, got %q", out)
	}
}

func TestFileLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, LevelWarn)
	logger.Info("dropped")
	logger.Error("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("error line missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != LevelDebug || ParseLevel("warn") != LevelWarn {
		t.Error("known levels misparsed")
	}
	if ParseLevel("nonsense") != LevelInfo {
		t.Error("unknown level should default to info")
	}
}
