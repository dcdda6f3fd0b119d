// Package catalog loads project templates from the embedded built-in set and
// a user template directory.
package catalog

import (
	"fmt"
	"strings"

	"github.com/simonhull/devgenesis/internal/generator"
)

// Template is a declarative project template as stored in YAML or JSON
type Template struct {
	ID           string                 `yaml:"-" json:"-"`
	Source       string                 `yaml:"-" json:"-"` // "builtin" or the file it was loaded from
	Name         string                 `yaml:"name" json:"name"`
	Description  string                 `yaml:"description,omitempty" json:"description,omitempty"`
	ProjectType  string                 `yaml:"project_type" json:"project_type"`
	Technologies []generator.Technology `yaml:"technologies" json:"technologies"`
	Structure    []string               `yaml:"structure,omitempty" json:"structure,omitempty"`
	Files        []generator.FileSpec   `yaml:"files,omitempty" json:"files,omitempty"`
	Commands     []string               `yaml:"commands,omitempty" json:"commands,omitempty"`
	Options      *Options               `yaml:"options,omitempty" json:"options,omitempty"`
}

// Options are a template's own defaults for the pipeline flags. Unset fields
// fall back to the configured defaults.
type Options struct {
	GitInit     *bool `yaml:"git_init,omitempty" json:"git_init,omitempty"`
	CreateVenv  *bool `yaml:"create_venv,omitempty" json:"create_venv,omitempty"`
	RunCommands *bool `yaml:"run_commands,omitempty" json:"run_commands,omitempty"`
	InstallDeps *bool `yaml:"install_deps,omitempty" json:"install_deps,omitempty"` // Older name for run_commands
}

// Defaults are the flag values used when neither the caller nor the template sets one
type Defaults struct {
	GitInit     bool
	CreateEnv   bool
	RunCommands bool
}

// Overrides are the caller's choices for one generation
type Overrides struct {
	Name          string // Project name; the template name when empty
	Description   string // Replaces the template description when non-empty
	Path          string
	CreateParents bool

	InitVCS     *bool
	CreateEnv   *bool
	RunCommands *bool

	Defaults Defaults
}

// Request builds a generation request from the template and overrides.
// Slices are copied so the template can be reused.
func (t *Template) Request(o Overrides) generator.Request {
	req := generator.Request{
		Name:          o.Name,
		Description:   t.Description,
		ProjectType:   t.ProjectType,
		Path:          o.Path,
		Technologies:  append([]generator.Technology(nil), t.Technologies...),
		Structure:     append([]string(nil), t.Structure...),
		Files:         append([]generator.FileSpec(nil), t.Files...),
		Commands:      append([]string(nil), t.Commands...),
		CreateParents: o.CreateParents,
	}
	if req.Name == "" {
		req.Name = t.Name
	}
	if o.Description != "" {
		req.Description = o.Description
	}

	var opts Options
	if t.Options != nil {
		opts = *t.Options
	}
	runCommands := opts.RunCommands
	if runCommands == nil {
		runCommands = opts.InstallDeps
	}

	req.InitVCS = pick(o.InitVCS, opts.GitInit, o.Defaults.GitInit)
	req.CreateEnv = pick(o.CreateEnv, opts.CreateVenv, o.Defaults.CreateEnv)
	req.RunCommands = pick(o.RunCommands, runCommands, o.Defaults.RunCommands)

	return req
}

// pick returns the first set value
func pick(override, option *bool, fallback bool) bool {
	if override != nil {
		return *override
	}
	if option != nil {
		return *option
	}
	return fallback
}

// Validate checks the template's structure. Template bodies are not checked;
// rendering problems surface at generation time.
func (t *Template) Validate() error {
	var errs generator.ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, generator.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(t.Name) == "" {
		add("name", "template name is required")
	}
	if strings.TrimSpace(t.ProjectType) == "" {
		add("project_type", "project type is required")
	}
	if len(t.Technologies) == 0 {
		add("technologies", "at least one technology is required")
	}
	for i, tech := range t.Technologies {
		if strings.TrimSpace(tech.Name) == "" {
			add(fmt.Sprintf("technologies[%d].name", i), "technology %d has no name", i+1)
		}
	}
	for i, dir := range t.Structure {
		if strings.TrimSpace(dir) == "" {
			add(fmt.Sprintf("structure[%d]", i), "structure entry %d is empty", i+1)
		}
	}
	for i, f := range t.Files {
		if strings.TrimSpace(f.Path) == "" {
			add(fmt.Sprintf("files[%d].path", i), "file %d has no path", i+1)
		}
	}
	for i, c := range t.Commands {
		if strings.TrimSpace(c) == "" {
			add(fmt.Sprintf("commands[%d]", i), "command %d is empty", i+1)
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TechnologyList returns "Name version, Name" for display
func (t *Template) TechnologyList() string {
	parts := make([]string, 0, len(t.Technologies))
	for _, tech := range t.Technologies {
		if tech.Version != "" {
			parts = append(parts, tech.Name+" "+tech.Version)
		} else {
			parts = append(parts, tech.Name)
		}
	}
	return strings.Join(parts, ", ")
}
