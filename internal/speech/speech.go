// Package speech defines the boundary contracts for the excluded audio
// collaborators: something that supplies raw text and something that renders
// responses. Real audio capture and TTS live outside the core behind these
// interfaces.
package speech

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Recognizer supplies raw input text to the dispatcher. An empty string with
// a nil error means no recognizable input this turn (timeout, inaudible, or
// transport failure); the dispatcher treats it as a no-op.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker renders a response. The core never depends on playback
// confirmation. Implementations must be safe for concurrent use: reminder
// callbacks speak from their own goroutines.
type Speaker interface {
	Say(text string)
}

// Console is a Speaker that writes to a stream with serialized writes, so
// reminder output never interleaves with main-loop output.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
}

// NewConsole creates a Console speaker. prefix is prepended to every line.
func NewConsole(out io.Writer, prefix string) *Console {
	return &Console{out: out, prefix: prefix}
}

// Say writes one line to the console.
func (c *Console) Say(text string) {
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s%s\n", c.prefix, text)
}

// Recorded is a Speaker that captures utterances for tests.
type Recorded struct {
	mu    sync.Mutex
	lines []string
}

// Say records the utterance.
func (r *Recorded) Say(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

// Spoken returns a copy of everything said so far.
func (r *Recorded) Spoken() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Script is a Recognizer that replays a fixed sequence of inputs and then
// reports io.EOF. Used for tests and dry runs, in place of a microphone.
type Script struct {
	mu    sync.Mutex
	lines []string
	next  int
}

// NewScript creates a Script over the given lines.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// Listen returns the next scripted line, or io.EOF when exhausted.
func (s *Script) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}
