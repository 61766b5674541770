package formats

import (
	"io"

	"chartloc/internal/model"
)

// JSONStripper handles data-interchange files. JSON has no standardized
// comment syntax, but // line comments are tolerated as a common
// extension and stripped the same way as in markup files. There is no
// block-comment recognition and therefore no cross-line state.
type JSONStripper struct{}

// Name returns the format name.
func (s *JSONStripper) Name() string {
	return "JSON"
}

// Extensions returns the data-interchange suffixes.
func (s *JSONStripper) Extensions() []string {
	return []string{".json"}
}

// Classify strips // line comments from every line.
func (s *JSONStripper) Classify(reader io.Reader) ([]model.ClassifiedLine, error) {
	return classifyLines(reader, stripLineComment)
}

// stripLineComment cuts a line at the first // occurrence.
func stripLineComment(line string) string {
	runes := []rune(line)
	for idx := 0; idx+1 < len(runes); idx++ {
		if runes[idx] == '/' && runes[idx+1] == '/' {
			return string(runes[:idx])
		}
	}
	return line
}
