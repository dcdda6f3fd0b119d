// Package environment provisions isolated language runtimes inside a generated
// project and resolves setup-command executables to those runtimes.
//
// Each runtime is a Provisioner registered under its language name. The
// generator activates the provisioners whose language appears in the
// project's technologies; when a command's leading executable belongs to an
// active environment (pip, python, ...), it is rewritten to the environment's
// own binary so packages land inside the project.
//
// New runtimes plug in by implementing Provisioner and registering it:
//
//	reg := environment.DefaultRegistry()
//	reg.Register(myNodeProvisioner{})
package environment

import (
	"context"
	"errors"

	"github.com/simonhull/devgenesis/internal/exec"
)

// ErrToolUnavailable means the runtime needed to create an environment is not installed.
var ErrToolUnavailable = errors.New("tool unavailable")

// Resolver maps executables to an environment's own binaries.
type Resolver interface {
	// Resolve returns the environment's path for executable when the
	// environment under root provides it.
	Resolve(root, executable string) (string, bool)
	// Env returns variables that activate the environment under root.
	Env(root string) []string
}

// Provisioner creates one kind of runtime environment
type Provisioner interface {
	Resolver

	// Language is the technology name that enables this provisioner (case-insensitive).
	Language() string
	// Dir is the environment directory relative to the project root.
	Dir() string
	// Command describes the provisioning step for previews.
	Command() string
	// Provision creates the environment inside root.
	Provision(ctx context.Context, executor *exec.Executor, root string) error
}

// Relocator is implemented by provisioners whose environments embed their
// absolute location and must be fixed up after the project is moved.
type Relocator interface {
	Relocate(from, to string) error
}
