package diffengine

import (
	"fmt"
	"testing"
)

// BenchmarkCompare exercises the quadratic alignment on sequences the
// size of a large chart file, with a realistic share of changed lines.
func BenchmarkCompare(b *testing.B) {
	const size = 500

	oldTexts := make([]string, 0, size)
	newTexts := make([]string, 0, size)
	for i := 0; i < size; i++ {
		line := fmt.Sprintf("line %d", i)
		oldTexts = append(oldTexts, line)
		if i%10 == 0 {
			newTexts = append(newTexts, fmt.Sprintf("changed %d", i))
			continue
		}
		newTexts = append(newTexts, line)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compare(oldTexts, newTexts)
	}
}
