package commands

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/catalog"
	"github.com/simonhull/devgenesis/internal/environment"
	"github.com/simonhull/devgenesis/internal/generator"
	"github.com/simonhull/devgenesis/internal/history"
	"github.com/simonhull/devgenesis/internal/logging"
)

// projectFlags are the flags shared by new, preview and validate
type projectFlags struct {
	path        string
	description string
	noGit       bool
	noEnv       bool
	noCommands  bool
	parents     bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "path", "p", ".", "Directory to create the project in")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Project description (default: the template's)")
	cmd.Flags().BoolVar(&f.noGit, "no-git", false, "Skip git repository initialization")
	cmd.Flags().BoolVar(&f.noEnv, "no-env", false, "Skip runtime environment creation")
	cmd.Flags().BoolVar(&f.noCommands, "no-commands", false, "Skip the template's setup commands")
	cmd.Flags().BoolVar(&f.parents, "parents", false, "Create missing parent directories")
}

// overrides turns the flags into catalog overrides; only set flags override
func (f *projectFlags) overrides(name string, defaults catalog.Defaults) catalog.Overrides {
	o := catalog.Overrides{
		Name:          name,
		Description:   f.description,
		Path:          filepath.Join(f.path, name),
		CreateParents: f.parents,
		Defaults:      defaults,
	}
	off := false
	if f.noGit {
		o.InitVCS = &off
	}
	if f.noEnv {
		o.CreateEnv = &off
	}
	if f.noCommands {
		o.RunCommands = &off
	}
	return o
}

// catalog returns the template catalog for the configured directory
func (e *Env) catalog() *catalog.Catalog {
	return catalog.New(e.Config.TemplatesDir, logging.GetLogger("catalog"))
}

// resolveRequest loads a template and builds the request for args
// (<template> [name]). Without a name, the user is asked unless ask is false.
func (e *Env) resolveRequest(cmd *cobra.Command, args []string, flags *projectFlags, ask bool) (*catalog.Template, generator.Request, error) {
	tmpl, err := e.catalog().Get(args[0])
	if err != nil {
		return nil, generator.Request{}, err
	}

	name := path.Base(tmpl.ID)
	if len(args) > 1 {
		name = args[1]
	} else if ask {
		name = e.prompt(cmd).Prompt("Project name", name)
	}
	name = strings.TrimSpace(name)

	defaults := catalog.Defaults{
		GitInit:     e.Config.Defaults.GitInit,
		CreateEnv:   e.Config.Defaults.CreateEnv,
		RunCommands: e.Config.Defaults.RunCommands,
	}
	return tmpl, tmpl.Request(flags.overrides(name, defaults)), nil
}

// generatorOptions builds engine options from the configuration
func (e *Env) generatorOptions() generator.Options {
	log := logging.GetLogger("generator")
	return generator.Options{
		Registry:       environment.DefaultRegistry(),
		Executor:       e.Executor,
		CommandTimeout: e.Config.CommandTimeout,
		MinFreeSpace:   e.Config.MinFreeSpace,
		PreviewLength:  e.Config.PreviewLength,
		Author:         e.Config.Author,
		Logger:         &log,
	}
}

// recordHistory logs a generation; failures only produce a warning
func (e *Env) recordHistory(ctx context.Context, tmpl *catalog.Template, req generator.Request, outcome *generator.Outcome) {
	store, err := history.Open(e.Config.HistoryDB)
	if err != nil {
		e.Log.Warn().Err(err).Msg("history unavailable")
		e.Printer.Verbose(fmt.Sprintf("History not recorded: %v", err))
		return
	}
	defer store.Close()

	entry := history.Entry{
		ProjectName:  req.Name,
		ProjectPath:  outcome.Path,
		TemplateName: tmpl.ID,
		Technologies: req.TechnologyNames(),
		Status:       history.StatusSuccess,
	}
	if !outcome.Success {
		entry.Status = history.StatusFailed
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
	}

	if _, err := store.Add(ctx, entry); err != nil {
		e.Log.Warn().Err(err).Msg("failed to record history")
	}
}

// printValidation prints validation messages as errors
func (e *Env) printValidation(messages []string) {
	for _, msg := range messages {
		e.Printer.Error(msg)
	}
}
