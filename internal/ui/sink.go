package ui

import (
	"fmt"
	"strings"
	"sync"
)

// Sink is the append-only surface receiving run status lines
type Sink interface {
	// Log appends one status line
	Log(format string, args ...any)
	// Raw appends tool output verbatim
	Raw(text string)
	// Error appends an error line followed by the abort marker
	Error(msg string)
	// Summary appends the final line of a run
	Summary(passed bool, format string, args ...any)
}

// AbortedMarker closes every error report
const AbortedMarker = "[ABORTED]"

// Buffer is a Sink that keeps everything in memory
type Buffer struct {
	mu sync.Mutex
	b  strings.Builder
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Log(format string, args ...any) {
	b.write(fmt.Sprintf(format, args...) + "\n")
}

func (b *Buffer) Raw(text string) {
	b.write(text)
}

func (b *Buffer) Error(msg string) {
	b.write(errorLine(msg))
}

func (b *Buffer) Summary(_ bool, format string, args ...any) {
	b.write(summaryLine(format, args...))
}

// String returns everything written so far
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

func (b *Buffer) write(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.b.WriteString(s)
}

func errorLine(msg string) string {
	return fmt.Sprintf("Error => %s\n%s\n", msg, AbortedMarker)
}

func summaryLine(format string, args ...any) string {
	return "\n=> " + fmt.Sprintf(format, args...) + "\n"
}
