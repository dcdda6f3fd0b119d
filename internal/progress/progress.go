// Package progress shows generation events while a project is being built:
// a spinner with the current step on terminals, plain lines elsewhere.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/simonhull/devgenesis/internal/generator"
	"github.com/simonhull/devgenesis/internal/output"
)

// Work runs a generation, reporting events to sink
type Work func(sink generator.Sink) *generator.Outcome

// Reporter displays events from Work
type Reporter struct {
	out         io.Writer
	verbose     bool
	interactive bool
}

// New returns a Reporter writing to out. The spinner is used only when out
// is a terminal.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose, interactive: IsTerminal(out)}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run runs work and displays its events as they arrive
func (r *Reporter) Run(ctx context.Context, title string, work Work) *generator.Outcome {
	if !r.interactive {
		return r.runPlain(title, work)
	}
	return r.runSpinner(ctx, title, work)
}

func (r *Reporter) runPlain(title string, work Work) *generator.Outcome {
	printer := output.New(r.out, r.verbose)
	printer.Info(title)
	return work(printer.Event)
}

func (r *Reporter) runSpinner(ctx context.Context, title string, work Work) *generator.Outcome {
	m := newModel(title, r.verbose)
	p := tea.NewProgram(m, tea.WithOutput(r.out), tea.WithInput(nil), tea.WithContext(ctx))

	result := make(chan *generator.Outcome, 1)
	go func() {
		outcome := work(func(e generator.Event) {
			p.Send(eventMsg{event: e})
		})
		result <- outcome
		p.Send(doneMsg{outcome: outcome})
	}()

	if _, err := p.Run(); err != nil {
		// The program is gone; finish without the spinner.
		outcome := <-result
		fmt.Fprintf(r.out, "\n")
		return outcome
	}
	return <-result
}

// eventMsg carries one generation event into the program
type eventMsg struct {
	event generator.Event
}

// doneMsg ends the program
type doneMsg struct {
	outcome *generator.Outcome
}

// printedMsg reports that the line printed before it has been written
type printedMsg struct{}

// model is the bubbletea model for the spinner. Event lines are printed one
// at a time and the program quits only after the last one is written.
type model struct {
	spinner  spinner.Model
	title    string
	status   string
	verbose  bool
	queue    []string
	printing bool
	done     bool
	success  bool
}

func newModel(title string, verbose bool) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &model{spinner: s, title: title, verbose: verbose}
}

func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.event.Severity == generator.SeverityInfo {
			m.status = msg.event.Message
		}
		if line, ok := output.FormatEvent(msg.event, m.verbose); ok {
			m.queue = append(m.queue, line)
			if !m.printing {
				return m, m.printNext()
			}
		}
	case printedMsg:
		m.printing = false
		if len(m.queue) > 0 {
			return m, m.printNext()
		}
		if m.done {
			return m, tea.Quit
		}
	case doneMsg:
		m.done = true
		m.success = msg.outcome != nil && msg.outcome.Success
		if !m.printing && len(m.queue) == 0 {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// printNext prints the oldest queued line, then reports printedMsg
func (m *model) printNext() tea.Cmd {
	line := m.queue[0]
	m.queue = m.queue[1:]
	m.printing = true
	return tea.Sequence(tea.Println(line), func() tea.Msg { return printedMsg{} })
}

func (m *model) View() string {
	if m.done {
		return ""
	}
	if m.status == "" {
		return fmt.Sprintf("%s %s...", m.spinner.View(), m.title)
	}
	return fmt.Sprintf("%s %s: %s", m.spinner.View(), m.title, m.status)
}
