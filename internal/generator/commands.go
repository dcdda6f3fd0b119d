package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/simonhull/devgenesis/internal/environment"
	"github.com/simonhull/devgenesis/internal/exec"
)

// splitCommand tokenizes a command line with shell quoting rules. No shell is involved.
func splitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return argv, nil
}

// runCommands runs the declared commands in order inside the workspace.
// The first failure stops the run.
func runCommands(ctx context.Context, r *run) error {
	if !r.req.RunCommands || len(r.req.Commands) == 0 {
		return nil
	}

	r.emit(SeverityInfo, "Running %d setup command(s)", len(r.req.Commands))

	for _, command := range r.req.Commands {
		argv, err := splitCommand(command)
		if err != nil {
			return &Error{Kind: KindCommand, Op: command, Err: err}
		}

		argv, env := environment.ResolveCommand(r.root, r.provisioners, argv)
		executor := r.opts.Executor.
			WithDir(r.root).
			WithTimeout(r.opts.CommandTimeout).
			WithEnv(env...)

		r.emit(SeverityInfo, "Running: %s", command)
		r.log.Debug().Strs("argv", argv).Msg("running setup command")

		result, err := executor.Run(ctx, argv[0], argv[1:]...)
		if err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				if stderr := strings.TrimSpace(result.Stderr); stderr != "" {
					err = fmt.Errorf("%w: %s", err, stderr)
				}
			}
			return &Error{Kind: KindCommand, Op: command, Err: err}
		}

		for _, line := range result.Lines() {
			r.emit(SeverityInfo, "%s", line)
		}
		r.emit(SeveritySuccess, "Command succeeded: %s", command)
	}

	return nil
}
