package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Console is a Sink writing colored lines to a terminal
type Console struct {
	mu  sync.Mutex
	out io.Writer

	info  *color.Color
	alert *color.Color
	pass  *color.Color
	fail  *color.Color
}

// NewConsole creates a Console writing to out. Color is disabled by fatih/color when out is not a terminal.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:   out,
		info:  color.New(color.FgCyan),
		alert: color.New(color.FgRed),
		pass:  color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
	}
}

func (c *Console) Log(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.info.Fprintln(c.out, fmt.Sprintf(format, args...))
}

func (c *Console) Raw(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, text)
}

func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alert.Fprint(c.out, errorLine(msg))
}

func (c *Console) Summary(passed bool, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if passed {
		c.pass.Fprint(c.out, summaryLine(format, args...))
		return
	}
	c.fail.Fprint(c.out, summaryLine(format, args...))
}
