package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chartloc/internal/chartspec"
	"chartloc/internal/formats"
	"chartloc/internal/logging"
	"chartloc/internal/report"
	"chartloc/internal/runner"
)

// compareOptions holds the configurable parameters of the compare
// command.
type compareOptions struct {
	statsFile string
	section   string
	format    string
	output    string
}

// newCompareCmd creates the compare subcommand.
// Examples:
//
//	chartloc compare simple-barchart simple-scatterplot
//	chartloc compare simple-barchart simple-scatterplot --section Annotation
//	chartloc compare a b --section Code+Data+Annotation
func newCompareCmd(registry *formats.Registry, debug *debugOptions) *cobra.Command {
	options := compareOptions{
		statsFile: "stats.txt",
		format:    "table",
		output:    "compare.json",
	}

	compareCmd := &cobra.Command{
		Use:   "compare <folder1> <folder2>",
		Short: "Compare the meaningful lines of two chart folders",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" {
				return errors.New("unsupported format, allowed values: table, json")
			}

			spec, err := chartspec.Load(options.statsFile)
			if err != nil {
				return err
			}

			logger := logging.New(debug.enabled)
			service := runner.NewService(registry, 1, logger)
			result, err := service.Compare(spec, args[0], args[1], runner.CompareOptions{
				Section:   strings.TrimSpace(options.section),
				DebugFile: debug.file,
			})
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return report.PrintCompare(cmd.OutOrStdout(), result)
			default:
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath == "" {
					outputPath = "compare.json"
				}
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
				return nil
			}
		},
	}

	compareCmd.Flags().StringVar(&options.statsFile, "stats", options.statsFile, "path to the stats file")
	compareCmd.Flags().StringVar(&options.section, "section", "",
		`restrict the diff to one category, or a combination like "Code+Data"`)
	compareCmd.Flags().StringVar(&options.format, "format", options.format, "output format: table or json")
	compareCmd.Flags().StringVar(&options.output, "output", options.output, "json export path, default compare.json")

	return compareCmd
}
