// Package cmd wires the chartloc command-line interface.
package cmd

import (
	"chartloc/internal/formats"

	"github.com/spf13/cobra"
)

// debugOptions carries the persistent debug flags shared by every
// subcommand.
type debugOptions struct {
	enabled bool
	file    string
}

// Execute assembles the root command and runs it. version is injected
// by the main package so release builds can override it with ldflags.
func Execute(version string) error {
	registry := formats.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd creates the root command and registers all subcommands.
func newRootCmd(version string, registry *formats.Registry) *cobra.Command {
	debug := &debugOptions{}

	rootCmd := &cobra.Command{
		Use:   "chartloc",
		Short: "Categorized line counting and comparison for chart files",
		Long: "chartloc classifies the lines of chart source files as code, data or\n" +
			"annotation by declared line ranges, counts the meaningful (non-blank,\n" +
			"non-comment) lines per category, and compares two chart folders by\n" +
			"their meaningful-line differences.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug.enabled, "debug", false, "enable verbose classification logging")
	rootCmd.PersistentFlags().StringVar(&debug.file, "debug_file", "", "limit debug logging to one declared filename")

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newFormatsCmd(registry))
	rootCmd.AddCommand(newCountCmd(registry, debug))
	rootCmd.AddCommand(newCompareCmd(registry, debug))

	return rootCmd
}
