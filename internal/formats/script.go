package formats

import (
	"io"
	"strings"

	"chartloc/internal/model"
)

// ScriptStripper handles script-like files (Python, R): # strips to end
// of line, and a triple-quote delimiter of either style toggles a
// multi-line span that is treated as comment text until the matching
// closer appears on some later line.
type ScriptStripper struct{}

// Name returns the format name.
func (s *ScriptStripper) Name() string {
	return "Script"
}

// Extensions returns the script suffixes.
func (s *ScriptStripper) Extensions() []string {
	return []string{".py", ".r"}
}

// Classify runs a fresh script engine over the input.
func (s *ScriptStripper) Classify(reader io.Reader) ([]model.ClassifiedLine, error) {
	engine := &scriptEngine{}
	return classifyLines(reader, engine.processLine)
}

// scriptEngine tracks which triple-quote style, if any, is currently
// open. The closer must match the opener's quote style.
type scriptEngine struct {
	inTripleSingle bool
	inTripleDouble bool
}

// processLine removes comment spans from one line. Triple-quote
// delimiters alternate state left to right, so an open-close pair on a
// single line removes only the delimited span and keeps the code around
// it. A # outside any span discards the rest of the line.
func (e *scriptEngine) processLine(line string) string {
	var kept strings.Builder
	runes := []rune(line)

	for idx := 0; idx < len(runes); {
		if e.inTripleSingle {
			if tripleAt(runes, idx, '\'') {
				e.inTripleSingle = false
				idx += 3
				continue
			}
			idx++
			continue
		}

		if e.inTripleDouble {
			if tripleAt(runes, idx, '"') {
				e.inTripleDouble = false
				idx += 3
				continue
			}
			idx++
			continue
		}

		if runes[idx] == '#' {
			break
		}

		if tripleAt(runes, idx, '\'') {
			e.inTripleSingle = true
			idx += 3
			continue
		}

		if tripleAt(runes, idx, '"') {
			e.inTripleDouble = true
			idx += 3
			continue
		}

		kept.WriteRune(runes[idx])
		idx++
	}

	return kept.String()
}

// tripleAt reports whether three consecutive quote runes start at idx.
func tripleAt(runes []rune, idx int, quote rune) bool {
	return idx+2 < len(runes) &&
		runes[idx] == quote && runes[idx+1] == quote && runes[idx+2] == quote
}
