package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/exec"
)

// toolProbeTimeout bounds each version check
const toolProbeTimeout = 5 * time.Second

// tool is an external program DevGenesis templates commonly rely on
type tool struct {
	Name   string
	Probes [][]string // Version commands, tried in order
}

var tools = []tool{
	{Name: "Python", Probes: [][]string{{"python3", "--version"}, {"python", "--version"}}},
	{Name: "Git", Probes: [][]string{{"git", "--version"}}},
	{Name: "Node.js", Probes: [][]string{{"node", "--version"}}},
	{Name: "npm", Probes: [][]string{{"npm", "--version"}}},
	{Name: "Docker", Probes: [][]string{{"docker", "--version"}}},
	{Name: "Docker Compose", Probes: [][]string{{"docker", "compose", "version"}, {"docker-compose", "--version"}}},
}

// toolStatus is the result of probing one tool
type toolStatus struct {
	Name      string
	Available bool
	Version   string
}

// checkTools probes every tool
func checkTools(ctx context.Context, executor *exec.Executor) []toolStatus {
	run := executor.WithTimeout(toolProbeTimeout)

	statuses := make([]toolStatus, 0, len(tools))
	for _, t := range tools {
		status := toolStatus{Name: t.Name}
		for _, probe := range t.Probes {
			result, err := run.Run(ctx, probe[0], probe[1:]...)
			if err != nil {
				continue
			}
			status.Available = true
			status.Version = versionLine(result)
			break
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// versionLine is the first line of stdout, or of stderr for tools that
// print their version there
func versionLine(result exec.Result) string {
	if lines := result.Lines(); len(lines) > 0 {
		return strings.TrimSpace(lines[0])
	}
	for _, line := range strings.Split(result.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// DoctorCmd creates the 'doctor' command
func DoctorCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which development tools are installed",
		Long: `Checks the tools that templates commonly use: Python, Git, Node.js,
npm, Docker and Docker Compose. Missing tools are not errors; git
repositories are created without the git binary, and environments for
missing runtimes are skipped with a warning.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range checkTools(cmd.Context(), env.Executor) {
				if s.Available {
					env.Printer.Success(fmt.Sprintf("%-15s %s", s.Name, s.Version))
				} else {
					env.Printer.Warning(fmt.Sprintf("%-15s not found", s.Name))
				}
			}

			env.Printer.Info("Configuration")
			if env.Config.File != "" {
				env.Printer.Step("Config file: " + env.Config.File)
			} else {
				env.Printer.Step("Config file: none (defaults)")
			}
			env.Printer.Step("Templates:   " + env.Config.TemplatesDir)
			env.Printer.Step("History:     " + env.Config.HistoryDB)
			env.Printer.Step("Log file:    " + env.Config.LogFile)
			return nil
		},
	}
}
