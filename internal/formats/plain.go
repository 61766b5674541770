package formats

import (
	"io"

	"chartloc/internal/model"
)

// PlainStripper is the fail-open fallback for unrecognized extensions:
// no comment detection at all, every non-blank line is meaningful. This
// direction of failure never misclassifies real content as comments.
type PlainStripper struct{}

// Name returns the format name.
func (s *PlainStripper) Name() string {
	return "Plain"
}

// Extensions returns nil; the plain stripper is never selected by
// extension, only as the registry fallback.
func (s *PlainStripper) Extensions() []string {
	return nil
}

// Classify keeps every line untouched.
func (s *PlainStripper) Classify(reader io.Reader) ([]model.ClassifiedLine, error) {
	return classifyLines(reader, func(line string) string { return line })
}
