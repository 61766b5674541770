package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chartloc/internal/formats"
)

// newFormatsCmd creates the formats subcommand, which lists the
// recognized file formats and their extensions.
func newFormatsCmd(registry *formats.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List recognized file formats and extensions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "FORMAT\tEXTENSIONS"); err != nil {
				return err
			}

			for _, item := range registry.Formats() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", item.Name, strings.Join(item.Extensions, ", ")); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintln(writer, "\nOther extensions are treated as plain text: no comment"); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(writer, "detection, every non-blank line counts as meaningful."); err != nil {
				return err
			}

			return writer.Flush()
		},
	}
}
