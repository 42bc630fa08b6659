package cmd

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "pinboard",
		Short:        "Pinboard API server",
		SilenceUsage: true,
	}
	root.AddCommand(ServeCmd(), MigrateCmd())
	return root
}

// Execute runs the CLI. With no subcommand it serves.
func Execute() error {
	root := NewRootCmd()
	root.RunE = ServeCmd().RunE
	return root.Execute()
}
