// Package diag implements the compiler's diagnostics engine.
//
// Errors travel on two channels: immediate errors are written to the sink as
// soon as they are raised and set the sticky has-errors flag, while queued
// errors are buffered so a parser can probe an alternative production and
// either flush the queue (the probed branch was the right one, surface its
// faults) or clear it (another branch was committed to instead).
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Entry is a single recorded diagnostic.
type Entry struct {
	Source  string
	Line    int
	Message string
}

// String renders the entry in the sink format, with the source path
// normalized to the host separator convention.
func (e Entry) String() string {
	return fmt.Sprintf("%s(%d) Error: %s", filepath.FromSlash(e.Source), e.Line, e.Message)
}

// Engine accumulates and reports diagnostics for one compilation.
type Engine struct {
	out       io.Writer
	queued    []Entry
	count     int
	hasErrors bool
}

// NewEngine creates an engine writing to out. A nil out defaults to stderr.
func NewEngine(out io.Writer) *Engine {
	if out == nil {
		out = os.Stderr
	}

	return &Engine{out: out}
}

// Emit reports an error immediately and sets the has-errors flag.
func (e *Engine) Emit(source string, line int, message string) {
	e.write(Entry{Source: source, Line: line, Message: message})
}

// Emitf is Emit with printf-style message formatting.
func (e *Engine) Emitf(source string, line int, format string, args ...interface{}) {
	e.Emit(source, line, fmt.Sprintf(format, args...))
}

// Queue buffers an error without setting the has-errors flag.
func (e *Engine) Queue(source string, line int, message string) {
	e.queued = append(e.queued, Entry{Source: source, Line: line, Message: message})
}

// Queuef is Queue with printf-style message formatting.
func (e *Engine) Queuef(source string, line int, format string, args ...interface{}) {
	e.Queue(source, line, fmt.Sprintf(format, args...))
}

// FlushQueued emits all queued errors in FIFO order and reports whether any
// were present. Flushing a non-empty queue sets the has-errors flag.
func (e *Engine) FlushQueued() bool {
	if len(e.queued) == 0 {
		return false
	}

	for _, entry := range e.queued {
		e.write(entry)
	}

	e.queued = nil

	return true
}

// ClearQueued discards all queued errors.
func (e *Engine) ClearQueued() {
	e.queued = nil
}

// HasQueued reports whether any errors are buffered.
func (e *Engine) HasQueued() bool {
	return len(e.queued) > 0
}

// HasErrors reports whether any error has been emitted.
func (e *Engine) HasErrors() bool {
	return e.hasErrors
}

// Count returns the number of emitted errors.
func (e *Engine) Count() int {
	return e.count
}

func (e *Engine) write(entry Entry) {
	e.hasErrors = true
	e.count++
	fmt.Fprintln(e.out, entry.String())
}
