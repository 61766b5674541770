package diffengine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chartloc/internal/model"
	"chartloc/internal/ranges"
)

func classified(texts ...string) []model.ClassifiedLine {
	lines := make([]model.ClassifiedLine, 0, len(texts))
	for i, text := range texts {
		lines = append(lines, model.ClassifiedLine{
			Number:     i + 1,
			Raw:        text,
			Stripped:   text,
			Meaningful: text != "",
		})
	}
	return lines
}

func TestCompareSingleSubstitution(t *testing.T) {
	added, removed := Compare([]string{"a", "b", "c"}, []string{"a", "x", "c"})
	require.Equal(t, 1, added)
	require.Equal(t, 1, removed)
}

func TestCompareSelfIsEmpty(t *testing.T) {
	texts := []string{"a", "b", "b", "c"}
	added, removed := Compare(texts, texts)
	require.Equal(t, 0, added)
	require.Equal(t, 0, removed)
}

func TestCompareSymmetry(t *testing.T) {
	oldTexts := []string{"a", "b", "c", "d", "b"}
	newTexts := []string{"b", "c", "x", "y"}

	addedForward, removedForward := Compare(oldTexts, newTexts)
	addedBackward, removedBackward := Compare(newTexts, oldTexts)

	require.Equal(t, addedForward, removedBackward)
	require.Equal(t, removedForward, addedBackward)
}

func TestCompareDuplicatesMatchedByPosition(t *testing.T) {
	// Three identical lines against two: exactly one removal, no
	// over-counting from content identity.
	added, removed := Compare([]string{"x", "x", "x"}, []string{"x", "x"})
	require.Equal(t, 0, added)
	require.Equal(t, 1, removed)
}

func TestCompareEmptySides(t *testing.T) {
	added, removed := Compare(nil, []string{"a", "b"})
	require.Equal(t, 2, added)
	require.Equal(t, 0, removed)

	added, removed = Compare([]string{"a"}, nil)
	require.Equal(t, 0, added)
	require.Equal(t, 1, removed)
}

func TestMeaningfulTextsFiltersAndTrims(t *testing.T) {
	lines := []model.ClassifiedLine{
		{Number: 1, Stripped: "code ", Meaningful: true},
		{Number: 2, Stripped: "", Meaningful: false},
		{Number: 3, Stripped: "more\t", Meaningful: true},
	}

	texts := MeaningfulTexts(lines, nil)
	require.Equal(t, []string{"code", "more"}, texts)
}

func TestMeaningfulTextsRestriction(t *testing.T) {
	lines := classified("a", "b", "c", "d")
	set := ranges.Resolve(model.RangeSet{Ranges: []model.LineRange{{Start: 2, End: 3}}}, len(lines))

	texts := MeaningfulTexts(lines, set)
	require.Equal(t, []string{"b", "c"}, texts)
}

func TestCompareIgnoresCommentOnlyAndBlankLines(t *testing.T) {
	oldLines := classified("a", "", "b")
	newLines := classified("a", "b")

	added, removed := Compare(MeaningfulTexts(oldLines, nil), MeaningfulTexts(newLines, nil))
	require.Equal(t, 0, added)
	require.Equal(t, 0, removed)
}
