// Package logbook persists an append-only operations trace so a manager
// can see why the distributor did what it did after the screen is gone.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Logbook writes timestamped lines to a single file. A nil *Logbook is
// a valid no-op writer, so callers never need to guard logging calls.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// New creates a logbook backed by the given path, creating parent
// directories as needed.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	return &Logbook{path: path}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single entry.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	line := fmt.Sprintf("%s %-5s %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimSpace(message),
	)
	_, _ = file.WriteString(line)
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}

// Tail returns up to maxLines of the most recent entries.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Trace is a named, indented group of entries covering one operation,
// such as a single distribution run.
type Trace struct {
	lb    *Logbook
	title string
}

// BeginTrace opens a trace group. Close it with Done.
func (l *Logbook) BeginTrace(title string) *Trace {
	l.Info("▶ %s", title)
	return &Trace{lb: l, title: title}
}

// Step records one decision inside the trace.
func (t *Trace) Step(format string, args ...any) {
	if t == nil {
		return
	}
	t.lb.Info("  · "+format, args...)
}

// Warn records a non-fatal problem inside the trace.
func (t *Trace) Warn(format string, args ...any) {
	if t == nil {
		return
	}
	t.lb.Warn("  · "+format, args...)
}

// Done closes the trace group.
func (t *Trace) Done(format string, args ...any) {
	if t == nil {
		return
	}
	t.lb.Info("■ %s: %s", t.title, fmt.Sprintf(format, args...))
}
