package formats

import (
	"io"
	"strings"

	"chartloc/internal/model"
)

// MarkupStripper handles HTML-style markup files: <!-- --> block
// comments that may span any number of physical lines, plus // line
// comments for embedded script, recognized only outside a block span.
type MarkupStripper struct{}

// Name returns the format name.
func (s *MarkupStripper) Name() string {
	return "Markup"
}

// Extensions returns the markup suffixes.
func (s *MarkupStripper) Extensions() []string {
	return []string{".html", ".htm"}
}

// Classify runs a fresh markup engine over the input.
func (s *MarkupStripper) Classify(reader io.Reader) ([]model.ClassifiedLine, error) {
	engine := &markupEngine{}
	return classifyLines(reader, engine.processLine)
}

// markupEngine carries the only cross-line markup state: whether the
// scan position is currently inside a <!-- --> span.
type markupEngine struct {
	inBlockComment bool
}

// processLine removes comment spans from one line and returns what is
// left. The scan walks left to right and alternates the block state at
// every delimiter occurrence, so `text <!-- note --> more` keeps both
// text fragments while the delimited span disappears.
func (e *markupEngine) processLine(line string) string {
	var kept strings.Builder
	runes := []rune(line)

	for idx := 0; idx < len(runes); {
		if e.inBlockComment {
			if runes[idx] == '-' && idx+2 < len(runes) && runes[idx+1] == '-' && runes[idx+2] == '>' {
				e.inBlockComment = false
				idx += 3
				continue
			}
			idx++
			continue
		}

		if runes[idx] == '<' && idx+3 < len(runes) &&
			runes[idx+1] == '!' && runes[idx+2] == '-' && runes[idx+3] == '-' {
			e.inBlockComment = true
			idx += 4
			continue
		}

		// Line comment: the rest of the line is discarded.
		if runes[idx] == '/' && idx+1 < len(runes) && runes[idx+1] == '/' {
			break
		}

		kept.WriteRune(runes[idx])
		idx++
	}

	return kept.String()
}
