package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	infoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	boldStyle    = lipgloss.NewStyle().Bold(true)
)

// Printer writes styled messages to an output stream. Normal output
// goes to stdout; fatal errors go to the diagnostic stream.
type Printer struct {
	out io.Writer
	err io.Writer
}

// NewPrinter creates a printer on the process's standard streams.
func NewPrinter() *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr}
}

// NewPrinterWithStreams creates a printer on custom streams (for testing).
func NewPrinterWithStreams(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Success prints a success message with a checkmark.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, successStyle.Render(SymbolSuccess+" "+fmt.Sprintf(format, args...)))
}

// Warning prints a non-fatal warning. Warnings never terminate the run.
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintln(p.out, warningStyle.Render(SymbolWarning+" warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a fatal error to the diagnostic stream.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.err, errorStyle.Render(SymbolError+" error: "+fmt.Sprintf(format, args...)))
}

// Info prints an informational message.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, infoStyle.Render(SymbolInfo+" "+fmt.Sprintf(format, args...)))
}

// Muted prints a secondary message.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.out, mutedStyle.Render("  "+fmt.Sprintf(format, args...)))
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a bold section header.
func (p *Printer) Header(s string) {
	fmt.Fprintln(p.out, boldStyle.Render(s))
}
