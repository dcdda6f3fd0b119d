package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis/internal/generator"
)

// ValidateCmd creates the 'validate' command
func ValidateCmd(env *Env) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "validate <template> [project-name]",
		Short: "Check that a project can be generated",
		Long: `Runs every pre-generation check without touching the filesystem:
required fields, destination parent, write permission, free disk space
and destination emptiness. All problems are reported at once.

Example:
  devgenesis validate go-service api --path /srv`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, req, err := env.resolveRequest(cmd, args, &flags, false)
			if err != nil {
				return err
			}

			ok, messages := generator.Validate(req, env.generatorOptions())
			if !ok {
				env.printValidation(messages)
				return errors.New("validation failed")
			}

			env.Printer.Success(fmt.Sprintf("%s can be created at %s", req.Name, req.Path))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
