// Package runner orchestrates batch analysis: counting every declared
// chart file and comparing the files of two folders. It owns file I/O
// and scheduling; classification, counting and diffing live in their
// own packages.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"chartloc/internal/counter"
	"chartloc/internal/diffengine"
	"chartloc/internal/expr"
	"chartloc/internal/formats"
	"chartloc/internal/model"
	"chartloc/internal/ranges"
)

// Service runs count and compare batches.
type Service struct {
	registry *formats.Registry
	workers  int
	logger   zerolog.Logger
}

// NewService creates a runner. workers bounds the concurrency of the
// count batch; files are independent, so any degree of parallelism is
// safe, and output order never depends on it.
func NewService(registry *formats.Registry, workers int, logger zerolog.Logger) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Service{
		registry: registry,
		workers:  workers,
		logger:   logger,
	}
}

// CountOptions configures one count batch.
type CountOptions struct {
	// BaseDir is prepended to every chart-type/file path.
	BaseDir string
	// Columns are the requested computed columns, applied to every chart.
	Columns []model.ComputedColumn
	// DebugFile narrows debug logging to one declared filename.
	DebugFile string
}

// countTask points one worker at one declared file.
type countTask struct {
	chartIndex int
	rowIndex   int
	path       string
	spec       model.FileSpec
}

// countOutcome is what a worker hands back for one file.
type countOutcome struct {
	chartIndex int
	rowIndex   int
	counts     model.CategoryCount
	warning    *model.Warning
}

// Count analyzes every file declared in the stats spec and builds one
// table per chart type. Chart, file and category order follow the
// declaration order of the spec. Computed-column expressions are
// compiled up front against each chart's column count; a bad expression
// is a configuration error and aborts the run. A missing or unreadable
// declared file degrades to a warning and a skipped row.
func (s *Service) Count(spec *model.StatsSpec, options CountOptions) (model.CountResult, error) {
	result := model.CountResult{BaseDir: options.BaseDir}

	columnsByChart := make([][]string, len(spec.Charts))
	programsByChart := make([][]*expr.Program, len(spec.Charts))
	for chartIndex, chart := range spec.Charts {
		columns := chartColumns(chart)
		columnsByChart[chartIndex] = columns

		programs := make([]*expr.Program, 0, len(options.Columns))
		for _, column := range options.Columns {
			program, err := expr.Compile(column.Expression, len(columns))
			if err != nil {
				return result, fmt.Errorf("column %q for chart %q: %w", column.Title, chart.ChartType, err)
			}
			programs = append(programs, program)
		}
		programsByChart[chartIndex] = programs
	}

	outcomes := make([][]*countOutcome, len(spec.Charts))
	for chartIndex, chart := range spec.Charts {
		outcomes[chartIndex] = make([]*countOutcome, len(chart.Files))
	}

	tasks := make(chan countTask, s.workers*4)
	results := make(chan countOutcome, s.workers*4)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runCountWorker(tasks, results, options.DebugFile)
		}()
	}

	go func() {
		defer close(tasks)
		for chartIndex, chart := range spec.Charts {
			for rowIndex, file := range chart.Files {
				tasks <- countTask{
					chartIndex: chartIndex,
					rowIndex:   rowIndex,
					path:       filepath.Join(options.BaseDir, chart.ChartType, file.Name),
					spec:       file,
				}
			}
		}
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	for outcome := range results {
		outcome := outcome
		outcomes[outcome.chartIndex][outcome.rowIndex] = &outcome
	}

	for chartIndex, chart := range spec.Charts {
		report := model.ChartReport{
			ChartType: chart.ChartType,
			Columns:   columnsByChart[chartIndex],
		}
		for _, column := range options.Columns {
			report.Computed = append(report.Computed, column.Title)
		}

		for rowIndex, file := range chart.Files {
			outcome := outcomes[chartIndex][rowIndex]
			if outcome == nil {
				continue
			}
			if outcome.warning != nil {
				result.Warnings = append(result.Warnings, *outcome.warning)
				continue
			}
			report.Rows = append(report.Rows, buildRow(
				file, report.Columns, outcome.counts, programsByChart[chartIndex],
			))
		}

		result.Charts = append(result.Charts, report)
	}

	return result, nil
}

// runCountWorker classifies and counts files until the task channel
// closes.
func (s *Service) runCountWorker(tasks <-chan countTask, results chan<- countOutcome, debugFile string) {
	for task := range tasks {
		lines, err := s.classifyFile(task.path)
		if err != nil {
			results <- countOutcome{
				chartIndex: task.chartIndex,
				rowIndex:   task.rowIndex,
				warning: &model.Warning{
					Path:    task.path,
					Message: err.Error(),
				},
			}
			continue
		}

		logger := s.fileLogger(debugFile, task.spec.Name)
		counts := counter.Count(lines, task.spec)
		logger.Debug().
			Str("path", task.path).
			Int("lines", len(lines)).
			Int("meaningful", counter.MeaningfulTotal(lines)).
			Msg("classified file")
		for _, category := range task.spec.Categories {
			logger.Debug().
				Str("category", category.Name).
				Int("count", counts[category.Name]).
				Msg("category counted")
		}

		results <- countOutcome{
			chartIndex: task.chartIndex,
			rowIndex:   task.rowIndex,
			counts:     counts,
		}
	}
}

// buildRow assembles one report row: elemental cells in column order,
// then the computed columns evaluated over those cells. A category the
// file does not declare renders as a missing cell and evaluates as an
// undefined operand.
func buildRow(file model.FileSpec, columns []string, counts model.CategoryCount, programs []*expr.Program) model.CountRow {
	row := model.CountRow{File: file.Name}

	operands := make([]expr.Value, 0, len(columns))
	for _, column := range columns {
		if _, declared := file.Category(column); !declared {
			row.Counts = append(row.Counts, model.CellValue{Missing: true})
			operands = append(operands, expr.Undefined())
			continue
		}
		count := counts[column]
		row.Counts = append(row.Counts, model.CellValue{Number: float64(count)})
		operands = append(operands, expr.Number(float64(count)))
	}

	for _, program := range programs {
		value := program.Eval(operands)
		row.Computed = append(row.Computed, model.CellValue{
			Undefined: !value.Defined,
			Number:    value.Number,
		})
	}

	return row
}

// chartColumns returns the chart's data columns: every category name in
// first-seen declaration order across the chart's files. Expression
// column indices refer to this order.
func chartColumns(chart model.ChartSpec) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, file := range chart.Files {
		for _, category := range file.Categories {
			if !seen[category.Name] {
				seen[category.Name] = true
				columns = append(columns, category.Name)
			}
		}
	}
	return columns
}

// CompareOptions configures one compare batch.
type CompareOptions struct {
	// Section restricts the diff to one category, or to the union of a
	// "+"-joined combination. Empty means whole files.
	Section string
	// DebugFile narrows debug logging to one filename.
	DebugFile string
}

// Compare diffs the files common to two folders. Files present on only
// one side become warnings, not errors; the batch always processes
// every common file. With a section, added/removed are computed only
// over the lines inside the section's ranges, resolved per side against
// that side's own line numbering.
func (s *Service) Compare(spec *model.StatsSpec, folderA string, folderB string, options CompareOptions) (model.CompareResult, error) {
	result := model.CompareResult{
		FolderA: folderA,
		FolderB: folderB,
		Section: options.Section,
	}

	filesA, err := listFiles(folderA)
	if err != nil {
		return result, err
	}
	filesB, err := listFiles(folderB)
	if err != nil {
		return result, err
	}

	chartA := filepath.Base(filepath.Clean(folderA))
	chartB := filepath.Base(filepath.Clean(folderB))

	if options.Section != "" {
		if _, ok := spec.Chart(chartA); !ok {
			result.Warnings = append(result.Warnings, model.Warning{
				Path:    folderA,
				Message: fmt.Sprintf("chart %q not declared in stats file", chartA),
			})
		}
		if _, ok := spec.Chart(chartB); !ok {
			result.Warnings = append(result.Warnings, model.Warning{
				Path:    folderB,
				Message: fmt.Sprintf("chart %q not declared in stats file", chartB),
			})
		}
	}

	common := make([]string, 0, len(filesA))
	for name := range filesA {
		if filesB[name] {
			common = append(common, name)
			continue
		}
		result.Warnings = append(result.Warnings, model.Warning{
			Path:    filepath.Join(folderA, name),
			Message: fmt.Sprintf("missing from %s, skipped", folderB),
		})
	}
	for name := range filesB {
		if !filesA[name] {
			result.Warnings = append(result.Warnings, model.Warning{
				Path:    filepath.Join(folderB, name),
				Message: fmt.Sprintf("missing from %s, skipped", folderA),
			})
		}
	}
	sort.Strings(common)

	for _, name := range common {
		entry, warning := s.compareFile(spec, chartA, chartB, folderA, folderB, name, options)
		if warning != nil {
			result.Warnings = append(result.Warnings, *warning)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// compareFile diffs one common file pair.
func (s *Service) compareFile(
	spec *model.StatsSpec,
	chartA string, chartB string,
	folderA string, folderB string,
	name string,
	options CompareOptions,
) (model.CompareEntry, *model.Warning) {
	oldPath := filepath.Join(folderA, name)
	newPath := filepath.Join(folderB, name)

	oldLines, err := s.classifyFile(oldPath)
	if err != nil {
		return model.CompareEntry{}, &model.Warning{Path: oldPath, Message: err.Error()}
	}
	newLines, err := s.classifyFile(newPath)
	if err != nil {
		return model.CompareEntry{}, &model.Warning{Path: newPath, Message: err.Error()}
	}

	outcome := model.DiffOutcome{
		TotalLines: counter.MeaningfulTotal(oldLines),
	}

	var oldRestrict, newRestrict ranges.Set
	if options.Section != "" {
		outcome.HasSection = true
		oldRestrict, outcome.SectionLines = sectionRestriction(spec, chartA, name, options.Section, oldLines)
		// The same category's ranges reapplied against the new file's own
		// numbering: best effort, edits may have shifted lines.
		newRestrict, _ = sectionRestriction(spec, chartB, name, options.Section, newLines)
	}

	oldTexts := diffengine.MeaningfulTexts(oldLines, oldRestrict)
	newTexts := diffengine.MeaningfulTexts(newLines, newRestrict)
	outcome.Added, outcome.Removed = diffengine.Compare(oldTexts, newTexts)

	logger := s.fileLogger(options.DebugFile, name)
	logger.Debug().
		Str("old", oldPath).
		Str("new", newPath).
		Int("added", outcome.Added).
		Int("removed", outcome.Removed).
		Int("total", outcome.TotalLines).
		Msg("compared file pair")

	return model.CompareEntry{File: name, Outcome: outcome}, nil
}

// sectionRestriction resolves a section name (elemental or combination)
// for one side of a comparison. The restriction set is the union of the
// named categories' resolved ranges; the count is the combination count
// (elemental sums, double-counting overlap by design). A side whose
// spec does not declare the file or any named category is left
// unrestricted with a zero count, matching the fail-soft behavior of a
// missing stats entry.
func sectionRestriction(
	spec *model.StatsSpec,
	chartType string, fileName string,
	section string,
	lines []model.ClassifiedLine,
) (ranges.Set, int) {
	chart, ok := spec.Chart(chartType)
	if !ok {
		return nil, 0
	}
	fileSpec, ok := chart.File(fileName)
	if !ok {
		return nil, 0
	}

	var sets []ranges.Set
	count := 0
	for _, part := range model.SplitCombination(section) {
		rangeSet, declared := fileSpec.Category(part)
		if !declared {
			continue
		}
		resolved := ranges.Resolve(rangeSet, len(lines))
		sets = append(sets, resolved)
		count += counter.MeaningfulInSet(lines, resolved)
	}

	if len(sets) == 0 {
		return nil, 0
	}
	return ranges.Union(sets...), count
}

// classifyFile opens and classifies one file with the stripper matching
// its extension, falling open to the plain stripper for unknown ones.
func (s *Service) classifyFile(path string) ([]model.ClassifiedLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stripper, _ := s.registry.StripperForFile(path)
	lines, classifyErr := stripper.Classify(file)
	closeErr := file.Close()

	if classifyErr != nil {
		return nil, fmt.Errorf("classify %s: %w", path, classifyErr)
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return lines, nil
}

// listFiles maps the regular-file names directly under dir.
func listFiles(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	files := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files[entry.Name()] = true
	}
	return files, nil
}

// fileLogger narrows debug logging to one file when a filter is set.
func (s *Service) fileLogger(debugFile string, name string) zerolog.Logger {
	if debugFile != "" && debugFile != name {
		return zerolog.Nop()
	}
	return s.logger.With().Str("file", name).Logger()
}
