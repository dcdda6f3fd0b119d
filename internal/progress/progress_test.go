package progress

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/devgenesis/internal/generator"
)

func fakeWork(events ...generator.Event) Work {
	return func(sink generator.Sink) *generator.Outcome {
		for _, e := range events {
			sink(e)
		}
		return &generator.Outcome{Success: true, State: generator.StateDone, Events: events}
	}
}

func TestReporter_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	assert.False(t, r.interactive)

	outcome := r.Run(context.Background(), "Generating demo", fakeWork(
		generator.Event{Message: "Running: npm install", Severity: generator.SeverityInfo},
		generator.Event{Message: "Created file: README.md", Severity: generator.SeveritySuccess},
	))

	require.True(t, outcome.Success)
	assert.Contains(t, buf.String(), "Generating demo")
	assert.Contains(t, buf.String(), "Created file: README.md")
	assert.NotContains(t, buf.String(), "npm install")
}

func TestReporter_PlainVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Run(context.Background(), "Generating", fakeWork(
		generator.Event{Message: "Running: npm install", Severity: generator.SeverityInfo},
	))
	assert.Contains(t, buf.String(), "npm install")
}

func TestModel_Update(t *testing.T) {
	m := newModel("Generating", false)
	assert.Contains(t, m.View(), "Generating...")

	_, cmd := m.Update(eventMsg{event: generator.Event{Message: "Running: pip install", Severity: generator.SeverityInfo}})
	assert.Nil(t, cmd, "info events only update the status line")
	assert.Contains(t, m.View(), "Running: pip install")

	_, cmd = m.Update(eventMsg{event: generator.Event{Message: "Created file: a", Severity: generator.SeveritySuccess}})
	assert.NotNil(t, cmd)
	assert.True(t, m.printing)

	_, cmd = m.Update(printedMsg{})
	assert.Nil(t, cmd)

	_, cmd = m.Update(doneMsg{outcome: &generator.Outcome{Success: true}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, m.success)
	assert.Empty(t, m.View())
}

func TestModel_QuitsAfterPendingLines(t *testing.T) {
	m := newModel("Generating", false)

	_, cmd := m.Update(eventMsg{event: generator.Event{Message: "Created file: a", Severity: generator.SeveritySuccess}})
	require.NotNil(t, cmd)
	_, cmd = m.Update(eventMsg{event: generator.Event{Message: "Project demo created", Severity: generator.SeveritySuccess}})
	assert.Nil(t, cmd, "second line waits for the first")

	_, cmd = m.Update(doneMsg{outcome: &generator.Outcome{Success: true}})
	assert.Nil(t, cmd, "lines are still pending")

	_, cmd = m.Update(printedMsg{})
	require.NotNil(t, cmd)
	assert.NotEqual(t, tea.Quit(), cmd(), "prints the last line before quitting")
	assert.Empty(t, m.queue)

	_, cmd = m.Update(printedMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
