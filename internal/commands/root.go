package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis"
	"github.com/simonhull/devgenesis/internal/config"
	"github.com/simonhull/devgenesis/internal/exec"
	"github.com/simonhull/devgenesis/internal/input"
	"github.com/simonhull/devgenesis/internal/logging"
	"github.com/simonhull/devgenesis/internal/output"
)

// Env is the state shared by all commands of one invocation
type Env struct {
	Config  *config.Config
	Printer *output.Printer
	Log     zerolog.Logger
	Verbose bool

	// Executor runs external tools. Default: exec.NewExecutor(nil).
	Executor *exec.Executor

	configFile string
	closeLog   func() error
	prompter   *input.Prompter
}

// NewEnv returns an Env with defaults; RootCmd fills it in before any command runs
func NewEnv() *Env {
	return &Env{Log: zerolog.Nop()}
}

// RootCmd creates and returns the root command for the DevGenesis CLI
func RootCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devgenesis",
		Short: "Generate ready-to-code projects from templates",
		Long: `DevGenesis scaffolds new software projects from declarative templates.

A template describes directories, files, technologies and setup commands.
DevGenesis renders it into a new project and, optionally:
• initializes a git repository with an initial commit
• creates a Python virtual environment
• runs the template's setup commands

A failed generation leaves nothing behind.`,
		Version:       devgenesis.Version,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return env.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.closeLog != nil {
				env.closeLog()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&env.Verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&env.configFile, "config", "", "Config file (default: "+config.Dir()+"/config.yaml)")
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return cmd
}

// setup loads configuration and logging
func (e *Env) setup(cmd *cobra.Command) error {
	e.Printer = output.New(cmd.OutOrStdout(), e.Verbose)

	cfg, err := config.Load(e.configFile)
	if err != nil {
		return err
	}
	e.Config = cfg

	closeLog, err := logging.Setup(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: e.Verbose,
		Console: cmd.ErrOrStderr(),
	})
	if closeLog != nil {
		e.closeLog = closeLog
	}
	if err != nil && closeLog == nil {
		return err
	}

	e.Log = logging.GetLogger("cli")
	if e.Executor == nil {
		e.Executor = exec.NewExecutor(nil)
	}

	e.Log.Debug().Str("command", cmd.CommandPath()).Str("config", cfg.File).Msg("starting")
	return nil
}

// prompt returns the Prompter for this invocation. It is shared so that
// buffered answers are not lost between questions.
func (e *Env) prompt(cmd *cobra.Command) *input.Prompter {
	if e.prompter == nil {
		e.prompter = input.New(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return e.prompter
}

// UsageError marks an error caused by invalid arguments or flags
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// usageArgs wraps an argument validator so its failures are usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: fmt.Errorf("%w\n\nUsage: %s", err, cmd.UseLine())}
		}
		return nil
	}
}

// ExitCode maps a command error to a process exit status: 2 for usage errors, 1 otherwise
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}
