// Package model defines the core data model shared by the stripper,
// counter, diff engine, runner and report layers.
package model

import "strings"

// LineRange is an inclusive span of physical line numbers, 1-indexed.
// Start <= End is guaranteed by the chartspec parser.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// RangeSet is the declared line ownership of one category: either the
// sentinel "all" (the whole file, whatever its length) or an explicit
// list of ranges. Ranges may arrive unsorted and overlapping; the range
// evaluator tolerates both.
type RangeSet struct {
	All    bool        `json:"all,omitempty"`
	Ranges []LineRange `json:"ranges,omitempty"`
}

// CategorySpec binds one category name to its declared ranges.
type CategorySpec struct {
	Name   string   `json:"name"`
	Ranges RangeSet `json:"ranges"`
}

// FileSpec describes one analyzed file: its chart type (grouping key),
// its filename, and its categories in declaration order. Built once from
// the stats file and never mutated afterwards.
type FileSpec struct {
	ChartType  string         `json:"chart_type"`
	Name       string         `json:"name"`
	Categories []CategorySpec `json:"categories"`
}

// Category returns the declared range set for name.
func (s FileSpec) Category(name string) (RangeSet, bool) {
	for _, category := range s.Categories {
		if category.Name == name {
			return category.Ranges, true
		}
	}
	return RangeSet{}, false
}

// ChartSpec groups the files declared under one chart type.
type ChartSpec struct {
	ChartType string     `json:"chart_type"`
	Files     []FileSpec `json:"files"`
}

// File returns the spec for one filename within the chart.
func (c ChartSpec) File(name string) (FileSpec, bool) {
	for _, file := range c.Files {
		if file.Name == name {
			return file, true
		}
	}
	return FileSpec{}, false
}

// StatsSpec is the whole parsed stats file. Chart order, file order and
// category order all preserve declaration order: the report layout is a
// user-facing contract, not an artifact of map iteration.
type StatsSpec struct {
	Charts []ChartSpec `json:"charts"`
}

// Chart returns the spec for one chart type.
func (s StatsSpec) Chart(chartType string) (ChartSpec, bool) {
	for _, chart := range s.Charts {
		if chart.ChartType == chartType {
			return chart, true
		}
	}
	return ChartSpec{}, false
}

// ClassifiedLine is one physical line after comment stripping.
//
// Number keeps the 1-indexed position in the original file so range
// lookups stay aligned with the declared line numbers. Stripped is the
// text with comment spans removed; Meaningful is true when that text
// still contains non-whitespace characters.
type ClassifiedLine struct {
	Number     int    `json:"number"`
	Raw        string `json:"raw"`
	Stripped   string `json:"stripped"`
	Meaningful bool   `json:"meaningful"`
}

// CategoryCount maps category name to the number of meaningful lines
// inside that category's resolved ranges, for one file. Derived data,
// recomputed on every run.
type CategoryCount map[string]int

// Combination sums the elemental counts for a "+"-joined name like
// "Code+Data". Overlapping categories double-count on purpose: the
// categories are independent lenses, not a partition. The second return
// is false when any referenced category is not present.
func (c CategoryCount) Combination(name string) (int, bool) {
	sum := 0
	for _, part := range SplitCombination(name) {
		count, ok := c[part]
		if !ok {
			return 0, false
		}
		sum += count
	}
	return sum, true
}

// SplitCombination splits a combination name into its elemental category
// names, trimming surrounding whitespace.
func SplitCombination(name string) []string {
	parts := strings.Split(name, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ComputedColumn is a user-requested derived report column. Expression
// references data columns by 1-based position (1 = first declared
// category of the chart).
type ComputedColumn struct {
	Title      string `json:"title"`
	Expression string `json:"expression"`
}

// CellValue is one numeric report cell. Missing is true when the file
// does not declare the column's category; Undefined is true when a
// computed expression hit division by zero or a missing operand.
type CellValue struct {
	Missing   bool    `json:"missing,omitempty"`
	Undefined bool    `json:"undefined,omitempty"`
	Number    float64 `json:"number"`
}

// CountRow is one file's row in a chart table: the elemental counts in
// the chart's column order followed by the computed column values.
type CountRow struct {
	File     string      `json:"file"`
	Counts   []CellValue `json:"counts"`
	Computed []CellValue `json:"computed,omitempty"`
}

// ChartReport is the table for one chart type.
type ChartReport struct {
	ChartType string     `json:"chart_type"`
	Columns   []string   `json:"columns"`
	Computed  []string   `json:"computed_columns,omitempty"`
	Rows      []CountRow `json:"rows"`
}

// Warning records a per-file condition that degraded gracefully instead
// of aborting the batch.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CountResult is the complete output of a count run.
type CountResult struct {
	BaseDir  string        `json:"base_dir"`
	Charts   []ChartReport `json:"charts"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// DiffOutcome reports one file pair's meaningful-line differences.
// SectionLines is populated only when HasSection is true; TotalLines is
// always the old file's whole meaningful-line count, section or not.
type DiffOutcome struct {
	Added        int  `json:"added"`
	Removed      int  `json:"removed"`
	HasSection   bool `json:"has_section,omitempty"`
	SectionLines int  `json:"section_lines,omitempty"`
	TotalLines   int  `json:"total_lines"`
}

// CompareEntry is one compared file pair.
type CompareEntry struct {
	File    string      `json:"file"`
	Outcome DiffOutcome `json:"outcome"`
}

// CompareResult is the complete output of a compare run.
type CompareResult struct {
	FolderA  string         `json:"folder_a"`
	FolderB  string         `json:"folder_b"`
	Section  string         `json:"section,omitempty"`
	Entries  []CompareEntry `json:"entries"`
	Warnings []Warning      `json:"warnings,omitempty"`
}
