// Package logging provides a small leveled logger with colored output.
package logging

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// Logger writes timestamped lines through the standard log package and
// colors them by level.
type Logger struct {
	out *log.Logger

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	gray   *color.Color
}

// New returns a Logger writing to w. When noColor is true no escape
// sequences are written; otherwise colors are always emitted.
func New(w io.Writer, noColor bool) *Logger {
	l := &Logger{
		out:    log.New(w, "", log.LstdFlags),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{l.green, l.yellow, l.red, l.gray} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return l
}

// Default returns a Logger on stderr that colors only when stderr is a terminal.
func Default() *Logger {
	return New(os.Stderr, color.NoColor)
}

// Infof logs an uncolored line.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.out.Printf(format, v...)
}

// Successf logs a green line.
func (l *Logger) Successf(format string, v ...interface{}) {
	l.out.Print(l.green.Sprintf(format, v...))
}

// Warnf logs a yellow line.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.out.Print(l.yellow.Sprintf(format, v...))
}

// Errorf logs a red line.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.out.Print(l.red.Sprintf(format, v...))
}

// Debugf logs a gray line.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.out.Print(l.gray.Sprintf(format, v...))
}
