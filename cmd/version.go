package cmd

import "github.com/spf13/cobra"

// newVersionCmd creates the version subcommand.
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("chartloc version %s\n", version)
		},
	}
}
