// SPDX-License-Identifier: EPL-2.0

package console

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// Printer writes status lines, colored only when enabled.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer on w. Use ColorEnabled to decide useColor.
func New(w io.Writer, useColor bool) *Printer {
	if useColor {
		// the terminal check already happened; stop gookit second guessing
		color.ForceOpenColor()
	}
	return &Printer{w: w, color: useColor}
}

// ColorEnabled reports whether w is an interactive terminal and color was
// not turned off by flag or by a non-empty NO_COLOR.
func ColorEnabled(w io.Writer, noColor bool, getenv func(string) string) bool {
	if noColor {
		return false
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *Printer) line(c color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.color {
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(p.w, msg)
}

// Plain prints without color.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Blank prints an empty line.
func (p *Printer) Blank() { fmt.Fprintln(p.w) }

// Progress marks a pipeline stage (cyan).
func (p *Printer) Progress(format string, args ...any) { p.line(color.Cyan, format, args...) }

// Highlight marks sizes and hints (yellow).
func (p *Printer) Highlight(format string, args ...any) { p.line(color.Yellow, format, args...) }

// Success marks a finished step (green).
func (p *Printer) Success(format string, args ...any) { p.line(color.Green, format, args...) }

// Detail marks secondary information (blue).
func (p *Printer) Detail(format string, args ...any) { p.line(color.Blue, format, args...) }

// Error marks a failure (red).
func (p *Printer) Error(format string, args ...any) { p.line(color.Red, format, args...) }
