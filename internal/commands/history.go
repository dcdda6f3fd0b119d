package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/history"
)

// HistoryCmd creates the 'history' command
func HistoryCmd(env *Env) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently generated projects",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(env.Config.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				env.Printer.Info("No projects generated yet")
				return nil
			}

			for _, e := range entries {
				line := fmt.Sprintf("%s  %s  (%s, %s)", e.ProjectName, e.ProjectPath, e.TemplateName,
					humanize.RelTime(e.CreatedAt, time.Now(), "ago", "from now"))
				if e.Status == history.StatusSuccess {
					env.Printer.Success(line)
				} else {
					env.Printer.Error(line)
					if e.Error != "" {
						env.Printer.Step(e.Error)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Maximum number of entries")
	cmd.AddCommand(historyClearCmd(env))
	return cmd
}

func historyClearCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the generation history",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(env.Config.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			env.Printer.Success(fmt.Sprintf("Removed %d history entries", n))
			return nil
		},
	}
}
