// Package counter aggregates classified lines into per-category counts.
package counter

import (
	"chartloc/internal/model"
	"chartloc/internal/ranges"
)

// Count produces the category counts for one file: for every declared
// category, the number of meaningful lines whose original line number
// falls inside the category's resolved ranges. Categories may overlap;
// a line then counts once per category. Pure computation, no I/O.
func Count(lines []model.ClassifiedLine, spec model.FileSpec) model.CategoryCount {
	counts := make(model.CategoryCount, len(spec.Categories))
	total := len(lines)

	for _, category := range spec.Categories {
		resolved := ranges.Resolve(category.Ranges, total)
		count := 0
		for _, line := range lines {
			if line.Meaningful && resolved.Contains(line.Number) {
				count++
			}
		}
		counts[category.Name] = count
	}

	return counts
}

// MeaningfulTotal counts all meaningful lines of a file, ignoring
// category declarations.
func MeaningfulTotal(lines []model.ClassifiedLine) int {
	total := 0
	for _, line := range lines {
		if line.Meaningful {
			total++
		}
	}
	return total
}

// MeaningfulInSet counts the meaningful lines whose number is in the
// resolved set.
func MeaningfulInSet(lines []model.ClassifiedLine, set ranges.Set) int {
	total := 0
	for _, line := range lines {
		if line.Meaningful && set.Contains(line.Number) {
			total++
		}
	}
	return total
}
