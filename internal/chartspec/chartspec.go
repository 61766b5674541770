// Package chartspec parses the stats file that declares which files to
// analyze and which line ranges each category owns.
//
// The format is a three-level mapping: chart type, then filename, then
// category name to a range declaration such as "67-167,214" or "all".
// Declaration order of charts, files and categories carries through to
// the report, so the document is decoded through yaml.Node rather than
// into Go maps.
package chartspec

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chartloc/internal/model"
)

// Load reads and parses a stats file from disk.
func Load(path string) (*model.StatsSpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	spec, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("stats file %s: %w", path, err)
	}
	return spec, nil
}

// Parse decodes a stats document. Structural problems and malformed
// ranges are configuration errors: the caller is expected to abort.
func Parse(content []byte) (*model.StatsSpec, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	spec := &model.StatsSpec{}
	if document.Kind == 0 || len(document.Content) == 0 {
		return spec, nil
	}

	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must map chart types to files", root.Line)
	}

	seenCharts := make(map[string]bool)
	for i := 0; i < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		chartType := strings.TrimSpace(keyNode.Value)
		if chartType == "" {
			return nil, fmt.Errorf("line %d: empty chart type", keyNode.Line)
		}
		if seenCharts[chartType] {
			return nil, fmt.Errorf("line %d: duplicate chart type %q", keyNode.Line, chartType)
		}
		seenCharts[chartType] = true

		chart, err := parseChart(chartType, valueNode)
		if err != nil {
			return nil, err
		}
		spec.Charts = append(spec.Charts, chart)
	}

	return spec, nil
}

func parseChart(chartType string, node *yaml.Node) (model.ChartSpec, error) {
	chart := model.ChartSpec{ChartType: chartType}

	if node.Kind == yaml.ScalarNode && node.Value == "" {
		return chart, nil
	}
	if node.Kind != yaml.MappingNode {
		return chart, fmt.Errorf("line %d: chart %q must map filenames to categories", node.Line, chartType)
	}

	seenFiles := make(map[string]bool)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		fileName := strings.TrimSpace(keyNode.Value)
		if fileName == "" {
			return chart, fmt.Errorf("line %d: empty filename under chart %q", keyNode.Line, chartType)
		}
		if seenFiles[fileName] {
			return chart, fmt.Errorf("line %d: duplicate file %q under chart %q", keyNode.Line, fileName, chartType)
		}
		seenFiles[fileName] = true

		file, err := parseFile(chartType, fileName, valueNode)
		if err != nil {
			return chart, err
		}
		chart.Files = append(chart.Files, file)
	}

	return chart, nil
}

func parseFile(chartType string, fileName string, node *yaml.Node) (model.FileSpec, error) {
	file := model.FileSpec{ChartType: chartType, Name: fileName}

	if node.Kind == yaml.ScalarNode && node.Value == "" {
		return file, nil
	}
	if node.Kind != yaml.MappingNode {
		return file, fmt.Errorf("line %d: file %q must map category names to ranges", node.Line, fileName)
	}

	seenCategories := make(map[string]bool)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		categoryName := strings.TrimSpace(keyNode.Value)
		if categoryName == "" {
			return file, fmt.Errorf("line %d: empty category name in file %q", keyNode.Line, fileName)
		}
		if seenCategories[categoryName] {
			return file, fmt.Errorf("line %d: duplicate category %q in file %q", keyNode.Line, categoryName, fileName)
		}
		seenCategories[categoryName] = true

		if valueNode.Kind != yaml.ScalarNode {
			return file, fmt.Errorf("line %d: category %q must declare a range string", valueNode.Line, categoryName)
		}

		rangeSet, err := ParseRangeSet(valueNode.Value)
		if err != nil {
			return file, fmt.Errorf("line %d: category %q: %w", valueNode.Line, categoryName, err)
		}

		file.Categories = append(file.Categories, model.CategorySpec{
			Name:   categoryName,
			Ranges: rangeSet,
		})
	}

	return file, nil
}

// ParseRangeSet parses one range declaration: a comma-separated list of
// inclusive "start-end" spans or single line numbers, the sentinel
// "all", or "N/A" for a category the file declares but does not use
// (an empty set).
func ParseRangeSet(value string) (model.RangeSet, error) {
	trimmed := strings.TrimSpace(value)

	if strings.EqualFold(trimmed, "all") {
		return model.RangeSet{All: true}, nil
	}
	if strings.EqualFold(trimmed, "n/a") {
		return model.RangeSet{}, nil
	}
	if trimmed == "" {
		return model.RangeSet{}, fmt.Errorf("empty range declaration")
	}

	var result model.RangeSet
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return model.RangeSet{}, fmt.Errorf("empty segment in range %q", trimmed)
		}

		lineRange, err := parseSpan(part)
		if err != nil {
			return model.RangeSet{}, err
		}
		result.Ranges = append(result.Ranges, lineRange)
	}

	return result, nil
}

func parseSpan(part string) (model.LineRange, error) {
	if start, end, found := strings.Cut(part, "-"); found {
		startLine, err := parseLineNumber(start)
		if err != nil {
			return model.LineRange{}, fmt.Errorf("invalid range %q: %w", part, err)
		}
		endLine, err := parseLineNumber(end)
		if err != nil {
			return model.LineRange{}, fmt.Errorf("invalid range %q: %w", part, err)
		}
		if startLine > endLine {
			return model.LineRange{}, fmt.Errorf("invalid range %q: start after end", part)
		}
		return model.LineRange{Start: startLine, End: endLine}, nil
	}

	line, err := parseLineNumber(part)
	if err != nil {
		return model.LineRange{}, fmt.Errorf("invalid line number %q: %w", part, err)
	}
	return model.LineRange{Start: line, End: line}, nil
}

func parseLineNumber(text string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if number < 1 {
		return 0, fmt.Errorf("line numbers are 1-indexed")
	}
	return number, nil
}
