// Package output formats user-facing CLI messages.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR or TERM=dumb is set
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer writes results to out and problems to err.
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter returns a Printer on stdout and stderr.
func NewPrinter(mode ColorMode) *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr, ResolveColors(mode))
}

// NewPrinterTo returns a Printer on the given writers.
func NewPrinterTo(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...any) {
	p.write(p.out, color.New(color.FgCyan), "", format, args...)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	p.write(p.out, color.New(color.FgGreen), "", format, args...)
}

// Warning prints a warning message
func (p *Printer) Warning(format string, args ...any) {
	p.write(p.err, color.New(color.FgYellow), "warning: ", format, args...)
}

// Error prints an error message
func (p *Printer) Error(format string, args ...any) {
	p.write(p.err, color.New(color.FgRed, color.Bold), "error: ", format, args...)
}

// Payload prints a raw diagnostic payload, uncoloured, to the error stream.
func (p *Printer) Payload(title, payload string) {
	p.write(p.err, color.New(color.FgRed), "", "%s", title)
	fmt.Fprintln(p.err, payload)
}

// Print prints a plain line to the output stream.
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) write(w io.Writer, c *color.Color, prefix, format string, args ...any) {
	if p.useColors {
		c.EnableColor()
		c.Fprintf(w, prefix+format+"\n", args...)
		return
	}
	fmt.Fprintf(w, prefix+format+"\n", args...)
}
