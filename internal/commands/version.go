package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/devgenesis"
)

// VersionCmd prints the version
func VersionCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the DevGenesis version",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			env.Printer.Plain(devgenesis.Generator())
		},
	}
}
