package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = 5 * time.Second

// CommandFunc builds the *exec.Cmd for a command. Swappable for tests.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Executor runs external commands and captures their output
type Executor struct {
	env     []string
	dir     string
	timeout time.Duration

	// For mocking in tests
	commandFunc CommandFunc
}

// Options configures command execution
type Options struct {
	Env     []string      // Additional environment variables (KEY=value)
	Dir     string        // Working directory
	Timeout time.Duration // Per-command timeout, zero for none
}

// Result holds the captured outcome of a command that ran to completion
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Lines returns the non-empty stdout lines with trailing whitespace trimmed.
func (r Result) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Stdout, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// NewExecutor creates an executor with sensible defaults
func NewExecutor(opts *Options) *Executor {
	if opts == nil {
		opts = &Options{}
	}

	return &Executor{
		env:         append([]string(nil), opts.Env...),
		dir:         opts.Dir,
		timeout:     opts.Timeout,
		commandFunc: exec.CommandContext,
	}
}

// WithCommandFunc returns a copy of the executor that builds commands with fn.
func (e *Executor) WithCommandFunc(fn CommandFunc) *Executor {
	c := e.clone()
	c.commandFunc = fn
	return c
}

// WithDir returns a copy of the executor that runs commands in dir.
func (e *Executor) WithDir(dir string) *Executor {
	c := e.clone()
	c.dir = dir
	return c
}

// WithEnv returns a copy of the executor with additional environment variables.
// Later entries win over earlier ones with the same key.
func (e *Executor) WithEnv(env ...string) *Executor {
	c := e.clone()
	c.env = append(c.env, env...)
	return c
}

// WithTimeout returns a copy of the executor with a different per-command timeout.
func (e *Executor) WithTimeout(timeout time.Duration) *Executor {
	c := e.clone()
	c.timeout = timeout
	return c
}

// Timeout returns the per-command timeout, zero when unbounded.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

func (e *Executor) clone() *Executor {
	return &Executor{
		env:         append([]string(nil), e.env...),
		dir:         e.dir,
		timeout:     e.timeout,
		commandFunc: e.commandFunc,
	}
}

// Run executes a command and waits for it, capturing stdout and stderr.
// A nil error means the process exited zero.
func (e *Executor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := e.commandFunc(ctx, name, args...)

	// Set working directory
	if e.dir != "" {
		cmd.Dir = e.dir
	}

	// Set environment
	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()

	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}

	// The deadline wins over whatever the killed process reported.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		return result, &TimeoutError{Name: name, Timeout: e.timeout}
	}
	if ctx.Err() != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("%s cancelled: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &ExitError{Name: name, Code: result.ExitCode, Stderr: result.Stderr}
	}

	if isCommandNotFound(err) {
		result.ExitCode = -1
		return result, &NotFoundError{Name: name, Err: err}
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to start %s: %w", name, err)
}

// isCommandNotFound checks if an error indicates a command was not found
func isCommandNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		strings.Contains(err.Error(), "executable file not found")
}
