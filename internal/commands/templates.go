package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/catalog"
)

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cell = lipgloss.NewStyle().Padding(0, 1)

// TemplatesCmd creates the 'templates' command group
func TemplatesCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List, inspect, import, export and delete project templates",
	}

	cmd.AddCommand(templatesListCmd(env))
	cmd.AddCommand(templatesShowCmd(env))
	cmd.AddCommand(templatesImportCmd(env))
	cmd.AddCommand(templatesExportCmd(env))
	cmd.AddCommand(templatesDeleteCmd(env))

	return cmd
}

func templatesListCmd(env *Env) *cobra.Command {
	var projectType, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := env.catalog().Search(search)
			if err != nil {
				return err
			}

			rows := [][]string{}
			for _, t := range templates {
				if projectType != "" && !strings.EqualFold(t.ProjectType, projectType) {
					continue
				}
				rows = append(rows, []string{t.ID, t.Name, t.ProjectType, source(t)})
			}
			if len(rows) == 0 {
				env.Printer.Info("No templates found")
				return nil
			}

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "TYPE", "SOURCE").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerCell
					}
					return cell
				})
			env.Printer.Plain(tbl.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectType, "type", "t", "", "Only list templates of this project type")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only list templates whose ID, name or description contains this text")
	return cmd
}

func templatesShowCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <template>",
		Short: "Show a template's details",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := env.catalog().Get(args[0])
			if err != nil {
				return err
			}

			p := env.Printer
			p.Header(fmt.Sprintf("%s (%s)", t.Name, t.ID))
			if t.Description != "" {
				p.Plain(t.Description)
			}
			p.Step("Type:         " + t.ProjectType)
			p.Step("Technologies: " + t.TechnologyList())
			p.Step("Source:       " + source(t))

			if len(t.Structure) > 0 {
				p.Header("Directories")
				for _, d := range t.Structure {
					p.Step(d)
				}
			}
			if len(t.Files) > 0 {
				p.Header("Files")
				for _, f := range t.Files {
					suffix := ""
					if f.IsTemplate {
						suffix = " (template)"
					}
					p.Step(f.Path + suffix)
				}
			}
			if len(t.Commands) > 0 {
				p.Header("Commands")
				for _, c := range t.Commands {
					p.Step("$ " + c)
				}
			}
			return nil
		},
	}
}

func templatesImportCmd(env *Env) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML or JSON template into the user template directory",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := env.catalog().Import(args[0], id)
			if err != nil {
				return err
			}
			env.Printer.Success(fmt.Sprintf("Imported %s as %s", t.Name, t.ID))
			env.Printer.Step(t.Source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "name", "n", "", "Template ID (default: the file name)")
	return cmd
}

func templatesExportCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "export <template> <file>",
		Short: "Write a template to a YAML or JSON file",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := env.catalog().Export(args[0], args[1])
			if err != nil {
				return err
			}
			env.Printer.Success(fmt.Sprintf("Exported %s to %s", t.ID, args[1]))
			return nil
		},
	}
}

func templatesDeleteCmd(env *Env) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <template>",
		Short: "Delete a user template",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := env.catalog()
			t, err := c.Get(args[0])
			if err != nil {
				return err
			}
			if t.Source == catalog.SourceBuiltin {
				return fmt.Errorf("%w: %s", catalog.ErrBuiltin, t.ID)
			}

			if !yes && !env.prompt(cmd).Confirm(fmt.Sprintf("Delete template %s?", t.ID), false) {
				env.Printer.Info("Cancelled")
				return nil
			}

			if _, err := c.Delete(t.ID); err != nil {
				return err
			}
			env.Printer.Success("Deleted template " + t.ID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func source(t *catalog.Template) string {
	if t.Source == catalog.SourceBuiltin {
		return "built-in"
	}
	return "user"
}
