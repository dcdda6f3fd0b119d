package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/generator"
	"github.com/simonhull/devgenesis/internal/output"
)

// PreviewCmd creates the 'preview' command, a dry run of 'new'
func PreviewCmd(env *Env) *cobra.Command {
	var (
		flags  projectFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "preview <template> [project-name]",
		Short: "Show what a template would generate without writing anything",
		Long: `Renders a template in memory and prints the directories, files and
commands that 'devgenesis new' would produce. Nothing is written and no
command is run.

Example:
  devgenesis preview fastapi-docker my-api --json`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, err := env.resolveRequest(cmd, args, &flags, false)
			if err != nil {
				return err
			}

			plan, err := generator.Preview(req, env.generatorOptions())
			if err != nil {
				env.printValidation(generator.ValidateMessages(err))
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}

			printPlan(env.Printer, filepath.Base(req.Path), plan)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan as JSON")

	return cmd
}

func printPlan(p *output.Printer, root string, plan *generator.Plan) {
	files := make([]string, 0, len(plan.Files))
	for _, f := range plan.Files {
		files = append(files, f.Path)
	}

	p.Header(fmt.Sprintf("Structure (%d directories, %d files)", len(plan.Directories), len(plan.Files)))
	p.Plain(output.Tree(root, plan.Directories, files))

	if len(plan.Commands) > 0 {
		p.Header("Commands")
		for _, c := range plan.Commands {
			p.Step("$ " + c)
		}
	}

	if plan.Readme != nil {
		p.Header("README")
		p.Plain(renderMarkdown(*plan.Readme))
	}
}

// renderMarkdown renders md for the terminal, falling back to the raw text
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
