package generator

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/simonhull/devgenesis/internal/environment"
	"github.com/simonhull/devgenesis/internal/exec"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultCommandTimeout = 5 * time.Minute
	DefaultMinFreeSpace   = 50 << 20 // 50 MiB
	DefaultPreviewLength  = 400
)

// Technology is a language, framework or tool used by the project
type Technology struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// FileSpec declares one file. Path is always rendered; Content only when IsTemplate is set.
type FileSpec struct {
	Path       string `json:"path" yaml:"path"`
	Content    string `json:"content" yaml:"content"`
	IsTemplate bool   `json:"is_template" yaml:"is_template"`
}

// Request describes one project to generate. The engine never modifies it.
type Request struct {
	Name         string
	Description  string
	ProjectType  string
	Path         string
	Technologies []Technology
	Structure    []string
	Files        []FileSpec
	Commands     []string

	InitVCS     bool // Initialize a git repository with an initial commit
	CreateEnv   bool // Provision runtime environments for matching technologies
	RunCommands bool // Run Commands after the files are written

	// CreateParents allows a missing destination parent to be created.
	CreateParents bool
}

// TechnologyNames returns the technology names in declared order.
func (r Request) TechnologyNames() []string {
	names := make([]string, 0, len(r.Technologies))
	for _, t := range r.Technologies {
		names = append(names, t.Name)
	}
	return names
}

// Options tunes a run. The zero value is ready to use.
type Options struct {
	// Registry holds the environment provisioners. Default: environment.DefaultRegistry().
	Registry *environment.Registry
	// Executor runs setup commands and provisioners. Default: exec.NewExecutor(nil).
	Executor *exec.Executor
	// CommandTimeout bounds each command. Default: 5 minutes.
	CommandTimeout time.Duration
	// MinFreeSpace is the free-space floor on the destination volume. Default: 50 MiB.
	MinFreeSpace uint64
	// PreviewLength is the number of characters kept per file preview. Default: 400.
	PreviewLength int
	// Author overrides the author template variable.
	Author string
	// Now is the clock used for the year variable and the manifest. Default: time.Now.
	Now func() time.Time
	// Logger receives diagnostic logs. Default: disabled.
	Logger *zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = environment.DefaultRegistry()
	}
	if o.Executor == nil {
		o.Executor = exec.NewExecutor(nil)
	}
	if o.CommandTimeout <= 0 {
		o.CommandTimeout = DefaultCommandTimeout
	}
	if o.MinFreeSpace == 0 {
		o.MinFreeSpace = DefaultMinFreeSpace
	}
	if o.PreviewLength <= 0 {
		o.PreviewLength = DefaultPreviewLength
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}
