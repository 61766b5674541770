// Package diffengine aligns the meaningful lines of two file versions
// and counts additions and removals. Comments and blank lines are
// stripped before alignment, so reformatting comments never shows up as
// a change.
package diffengine

import (
	"strings"

	"chartloc/internal/model"
	"chartloc/internal/ranges"
)

// MeaningfulTexts extracts the comparison units for one file version:
// the comment-stripped text of every meaningful line, in file order,
// trailing whitespace removed (stripping an inline comment leaves the
// separator space behind). A non-nil restrict set keeps only lines
// whose original number is a member.
func MeaningfulTexts(lines []model.ClassifiedLine, restrict ranges.Set) []string {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if !line.Meaningful {
			continue
		}
		if restrict != nil && !restrict.Contains(line.Number) {
			continue
		}
		texts = append(texts, strings.TrimRight(line.Stripped, " \t"))
	}
	return texts
}

// Compare aligns two meaningful-text sequences with a longest-common-
// subsequence match and returns the counts of added lines (in new but
// unmatched) and removed lines (in old but unmatched). Each line's full
// text is the comparison unit; duplicate identical lines are matched by
// position among equal-valued candidates, which the subsequence
// formulation gives for free. The counts are invariant across the
// minimal-edit alignments, so repeated runs on unchanged input always
// report the same numbers.
func Compare(oldTexts, newTexts []string) (added int, removed int) {
	common := lcsLength(oldTexts, newTexts)
	return len(newTexts) - common, len(oldTexts) - common
}

// lcsLength computes the longest-common-subsequence length with the
// two-row dynamic program, keeping memory linear in the shorter
// sequence. Typical chart files are hundreds of lines, so the quadratic
// time is fine.
func lcsLength(oldTexts, newTexts []string) int {
	if len(oldTexts) == 0 || len(newTexts) == 0 {
		return 0
	}

	// Iterate over the longer sequence, keep rows sized by the shorter.
	outer, inner := oldTexts, newTexts
	if len(inner) > len(outer) {
		outer, inner = inner, outer
	}

	previous := make([]int, len(inner)+1)
	current := make([]int, len(inner)+1)

	for i := 1; i <= len(outer); i++ {
		for j := 1; j <= len(inner); j++ {
			if outer[i-1] == inner[j-1] {
				current[j] = previous[j-1] + 1
				continue
			}
			if previous[j] >= current[j-1] {
				current[j] = previous[j]
			} else {
				current[j] = current[j-1]
			}
		}
		previous, current = current, previous
	}

	return previous[len(inner)]
}
