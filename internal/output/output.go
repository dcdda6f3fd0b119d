package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/devgenesis/internal/generator"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

// Printer writes styled lines to a writer
type Printer struct {
	out     io.Writer
	verbose bool
}

// New returns a Printer writing to out
func New(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, verbose: verbose}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Success prints a success message with ✅ and green color.
// Use this for completed operations.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, successStyle.Render("✅ "+msg))
}

// Error prints an error message with ❌ and red color.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, errorStyle.Render("❌ "+msg))
}

// Warning prints a warning with ⚠️ and yellow color
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.out, warningStyle.Render("⚠️  "+msg))
}

// Info prints an informational message with ℹ️ and cyan color.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	p.Step("cd myapp")
//	p.Step("source venv/bin/activate")
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.out, stepStyle.Render("   "+msg))
}

// Header prints a bold section title
func (p *Printer) Header(msg string) {
	fmt.Fprintln(p.out, headerStyle.Render(msg))
}

// Verbose prints a debug message with 🔍 only if verbose mode is enabled.
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		fmt.Fprintln(p.out, stepStyle.Render("🔍 "+msg))
	}
}

// Event prints a generation event in the style of its severity.
// Info events are only shown in verbose mode.
func (p *Printer) Event(e generator.Event) {
	if line, ok := FormatEvent(e, p.verbose); ok {
		fmt.Fprintln(p.out, line)
	}
}

// FormatEvent styles an event as a single line. It reports false for info
// events unless verbose is set.
func FormatEvent(e generator.Event, verbose bool) (string, bool) {
	switch e.Severity {
	case generator.SeveritySuccess:
		return successStyle.Render("✅ " + e.Message), true
	case generator.SeverityWarning:
		return warningStyle.Render("⚠️  " + e.Message), true
	case generator.SeverityError:
		return errorStyle.Render("❌ " + e.Message), true
	default:
		if !verbose {
			return "", false
		}
		return stepStyle.Render("🔍 " + e.Message), true
	}
}

// Plain prints msg without styling
func (p *Printer) Plain(msg string) {
	fmt.Fprintln(p.out, msg)
}
