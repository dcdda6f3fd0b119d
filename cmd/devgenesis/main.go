package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/simonhull/devgenesis/internal/commands"
)

func main() {
	env := commands.NewEnv()
	rootCmd := commands.RootCmd(env)

	rootCmd.AddCommand(commands.NewCmd(env))
	rootCmd.AddCommand(commands.PreviewCmd(env))
	rootCmd.AddCommand(commands.ValidateCmd(env))
	rootCmd.AddCommand(commands.TemplatesCmd(env))
	rootCmd.AddCommand(commands.HistoryCmd(env))
	rootCmd.AddCommand(commands.DoctorCmd(env))
	rootCmd.AddCommand(commands.VersionCmd(env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(commands.ExitCode(err))
	}
}
