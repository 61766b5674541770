// Package ranges resolves declared line ranges against a file's actual
// length into concrete line-number sets.
package ranges

import "chartloc/internal/model"

// Set is a resolved group of 1-indexed line numbers.
type Set map[int]struct{}

// Contains reports membership of one line number.
func (s Set) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// Len returns the number of resolved lines.
func (s Set) Len() int {
	return len(s)
}

// Resolve turns a declared range set into the concrete line numbers it
// owns in a file of totalLines physical lines. The "all" sentinel
// resolves to 1..totalLines. Explicit ranges are unioned and clipped to
// [1, totalLines]: a declaration reaching past the end of the file is
// truncated, never an error, so downstream counts cannot reference
// nonexistent lines. Overlapping and unsorted input ranges are fine.
func Resolve(rangeSet model.RangeSet, totalLines int) Set {
	result := make(Set)
	if totalLines <= 0 {
		return result
	}

	if rangeSet.All {
		for line := 1; line <= totalLines; line++ {
			result[line] = struct{}{}
		}
		return result
	}

	for _, lineRange := range rangeSet.Ranges {
		start := lineRange.Start
		end := lineRange.End
		if start < 1 {
			start = 1
		}
		if end > totalLines {
			end = totalLines
		}
		for line := start; line <= end; line++ {
			result[line] = struct{}{}
		}
	}

	return result
}

// Union merges any number of resolved sets. Used when a combination
// section like Code+Data restricts a comparison.
func Union(sets ...Set) Set {
	result := make(Set)
	for _, set := range sets {
		for line := range set {
			result[line] = struct{}{}
		}
	}
	return result
}
