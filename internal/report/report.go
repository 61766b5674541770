// Package report renders count and compare results. Tables go through
// text/tabwriter; chart headers and warnings are colored. JSON output
// (stream or file) carries the full result models.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"

	"chartloc/internal/model"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// PrintCountTables writes one table per chart type, in declaration
// order, followed by any warnings.
func PrintCountTables(writer io.Writer, result model.CountResult) error {
	for _, chart := range result.Charts {
		if _, err := headerColor.Fprintf(writer, "\n%s:\n", chart.ChartType); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

		if _, err := fmt.Fprint(tw, "FILE"); err != nil {
			return err
		}
		for _, column := range chart.Columns {
			if _, err := fmt.Fprintf(tw, "\t%s", column); err != nil {
				return err
			}
		}
		for _, title := range chart.Computed {
			if _, err := fmt.Fprintf(tw, "\t%s", title); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}

		for _, row := range chart.Rows {
			if _, err := fmt.Fprint(tw, row.File); err != nil {
				return err
			}
			for _, cell := range row.Counts {
				if _, err := fmt.Fprintf(tw, "\t%s", formatCell(cell)); err != nil {
					return err
				}
			}
			for _, cell := range row.Computed {
				if _, err := fmt.Fprintf(tw, "\t%s", formatCell(cell)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return printWarnings(writer, result.Warnings)
}

// PrintCompare writes the per-file diff rows. The section column only
// appears when the comparison was section-restricted.
func PrintCompare(writer io.Writer, result model.CompareResult) error {
	if result.Section != "" {
		if _, err := headerColor.Fprintf(
			writer, "\nComparing the %q section of %s and %s:\n",
			result.Section, result.FolderA, result.FolderB,
		); err != nil {
			return err
		}
	} else {
		if _, err := headerColor.Fprintf(
			writer, "\nComparing %s and %s:\n", result.FolderA, result.FolderB,
		); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	header := "FILE\tADDED\tREMOVED\tTOTAL"
	if result.Section != "" {
		header = "FILE\tADDED\tREMOVED\tSECTION\tTOTAL"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, entry := range result.Entries {
		outcome := entry.Outcome
		if outcome.HasSection {
			if _, err := fmt.Fprintf(
				tw, "%s\t+%d\t-%d\t%d\t%d\n",
				entry.File, outcome.Added, outcome.Removed, outcome.SectionLines, outcome.TotalLines,
			); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(
			tw, "%s\t+%d\t-%d\t%d\n",
			entry.File, outcome.Added, outcome.Removed, outcome.TotalLines,
		); err != nil {
			return err
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	return printWarnings(writer, result.Warnings)
}

// formatCell renders one numeric cell: "-" for a category the file does
// not declare, "undefined" for a computed value that hit division by
// zero or a missing operand.
func formatCell(cell model.CellValue) string {
	if cell.Missing {
		return "-"
	}
	if cell.Undefined {
		return "undefined"
	}
	return strconv.FormatFloat(cell.Number, 'g', -1, 64)
}

// printWarnings lists degraded entries after the table body.
func printWarnings(writer io.Writer, warnings []model.Warning) error {
	if len(warnings) == 0 {
		return nil
	}

	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}
	for _, warning := range warnings {
		if _, err := warningColor.Fprintf(writer, "warning: %s: %s\n", warning.Path, warning.Message); err != nil {
			return err
		}
	}
	return nil
}

// PrintJSON writes a result as indented JSON to any writer.
func PrintJSON(writer io.Writer, result any) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile exports a result to a file, creating the directory if
// needed.
func WriteJSONFile(path string, result any) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}
