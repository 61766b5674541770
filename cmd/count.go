package cmd

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"chartloc/internal/chartspec"
	"chartloc/internal/formats"
	"chartloc/internal/logging"
	"chartloc/internal/model"
	"chartloc/internal/report"
	"chartloc/internal/runner"
)

// countOptions holds the configurable parameters of the count command.
type countOptions struct {
	statsFile  string
	colProcess []string
	format     string
	output     string
	workers    int
}

// newCountCmd creates the count subcommand.
// Examples:
//
//	chartloc count
//	chartloc count ./charts --stats stats.txt
//	chartloc count --col_process "Code+Data=1+2" --col_process "Ratio=1/3"
func newCountCmd(registry *formats.Registry, debug *debugOptions) *cobra.Command {
	options := countOptions{
		statsFile: "stats.txt",
		format:    "table",
		output:    "output.json",
		workers:   runtime.NumCPU(),
	}

	countCmd := &cobra.Command{
		Use:   "count [base-dir]",
		Short: "Count meaningful lines per declared category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "table" && format != "json" {
				return errors.New("unsupported format, allowed values: table, json")
			}
			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			columns, err := parseComputedColumns(options.colProcess)
			if err != nil {
				return err
			}

			baseDir := "."
			if len(args) == 1 {
				baseDir = args[0]
			}

			spec, err := chartspec.Load(options.statsFile)
			if err != nil {
				return err
			}

			logger := logging.New(debug.enabled)
			service := runner.NewService(registry, options.workers, logger)
			result, err := service.Count(spec, runner.CountOptions{
				BaseDir:   baseDir,
				Columns:   columns,
				DebugFile: debug.file,
			})
			if err != nil {
				return err
			}

			switch format {
			case "table":
				return report.PrintCountTables(cmd.OutOrStdout(), result)
			default:
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath == "" {
					outputPath = "output.json"
				}
				if err := report.WriteJSONFile(outputPath, result); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
				return nil
			}
		},
	}

	countCmd.Flags().StringVar(&options.statsFile, "stats", options.statsFile, "path to the stats file")
	countCmd.Flags().StringArrayVar(&options.colProcess, "col_process", nil,
		`add a computed column, formatted TITLE=EXPR (for example "Code+Data=1+2"); repeatable`)
	countCmd.Flags().StringVar(&options.format, "format", options.format, "output format: table or json")
	countCmd.Flags().StringVar(&options.output, "output", options.output, "json export path, default output.json")
	countCmd.Flags().IntVar(&options.workers, "workers", options.workers, "number of concurrent workers")

	return countCmd
}

// parseComputedColumns splits each TITLE=EXPR flag value. Validation of
// the expression itself happens when the runner compiles it against a
// chart's column count.
func parseComputedColumns(values []string) ([]model.ComputedColumn, error) {
	columns := make([]model.ComputedColumn, 0, len(values))
	for _, value := range values {
		title, expression, found := strings.Cut(value, "=")
		title = strings.TrimSpace(title)
		expression = strings.TrimSpace(expression)
		if !found || title == "" || expression == "" {
			return nil, fmt.Errorf("invalid --col_process value %q, expected TITLE=EXPR", value)
		}
		columns = append(columns, model.ComputedColumn{Title: title, Expression: expression})
	}
	return columns, nil
}
