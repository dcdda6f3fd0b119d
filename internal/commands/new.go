package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/catalog"
	"github.com/simonhull/devgenesis/internal/fsutil"
	"github.com/simonhull/devgenesis/internal/generator"
	"github.com/simonhull/devgenesis/internal/output"
	"github.com/simonhull/devgenesis/internal/progress"
)

// errGenerationFailed is returned after the failure has been reported through events
var errGenerationFailed = errors.New("project generation failed")

// NewCmd creates and returns the 'new' command for generating projects
func NewCmd(env *Env) *cobra.Command {
	var (
		flags projectFlags
		yes   bool
		tree  bool
	)

	cmd := &cobra.Command{
		Use:   "new <template> [project-name]",
		Short: "Create a new project from a template",
		Long: `Creates a new project from a template:
• Renders the template's directories and files
• Initializes a git repository (unless --no-git)
• Creates a virtual environment for Python projects (unless --no-env)
• Runs the template's setup commands (unless --no-commands)

The project is built in a staging directory and moved into place only
when every required step succeeded.

Example:
  devgenesis new python-cli my-tool --path ~/code`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, req, err := env.resolveRequest(cmd, args, &flags, !yes)
			if err != nil {
				return err
			}

			opts := env.generatorOptions()
			if ok, messages := generator.Validate(req, opts); !ok {
				env.printValidation(messages)
				return fmt.Errorf("invalid project settings")
			}

			printSummary(env.Printer, tmpl, req)
			if !yes && !env.prompt(cmd).Confirm("Create this project?", true) {
				env.Printer.Info("Cancelled")
				return nil
			}

			reporter := progress.New(cmd.OutOrStdout(), env.Verbose)
			outcome := reporter.Run(cmd.Context(), "Generating "+req.Name, func(sink generator.Sink) *generator.Outcome {
				return generator.Generate(cmd.Context(), req, sink, opts)
			})

			env.recordHistory(cmd.Context(), tmpl, req, outcome)

			if !outcome.Success {
				env.Log.Error().Err(outcome.Err).Str("template", tmpl.ID).Msg("generation failed")
				return fmt.Errorf("%w: %v", errGenerationFailed, outcome.Err)
			}

			env.Printer.Success(fmt.Sprintf("Created %s in %s", req.Name, outcome.Path))
			if tree {
				if err := printTree(env.Printer, outcome.Path); err != nil {
					env.Printer.Warning(fmt.Sprintf("Could not list project: %v", err))
				}
			}
			printNextSteps(env.Printer, outcome.Path)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not prompt; use defaults")
	cmd.Flags().BoolVar(&tree, "tree", false, "Print the generated file tree")

	return cmd
}

// printSummary shows what is about to be generated
func printSummary(p *output.Printer, tmpl *catalog.Template, req generator.Request) {
	p.Header(fmt.Sprintf("%s (%s)", req.Name, tmpl.Name))
	p.Step("Path:         " + req.Path)
	p.Step("Type:         " + req.ProjectType)
	p.Step("Technologies: " + tmpl.TechnologyList())
	p.Step(fmt.Sprintf("Git: %s  Environment: %s  Commands: %s",
		yesNo(req.InitVCS), yesNo(req.CreateEnv), yesNo(req.RunCommands && len(req.Commands) > 0)))
}

// printTree lists the generated project, skipping tool-managed directories
func printTree(p *output.Printer, root string) error {
	dirs, files, err := fsutil.List(root, fsutil.WalkOptions{IncludeHidden: true})
	if err != nil {
		return err
	}
	p.Plain(output.Tree(filepath.Base(root), dirs, files))
	return nil
}

func printNextSteps(p *output.Printer, root string) {
	p.Info("Next steps:")
	p.Step("cd " + root)
	if _, err := os.Stat(filepath.Join(root, "venv")); err == nil {
		p.Step("source venv/bin/activate")
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
