// Package formats provides per-format comment strippers. Each stripper
// is a small state machine that classifies every physical line of a file
// as blank, comment-only or meaningful, and exposes the text with
// comment spans removed. State never leaks across files: a fresh engine
// is created per Classify call.
package formats

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"chartloc/internal/model"
)

// Stripper is a single-format comment stripper. Implementations must
// keep all multi-line state inside the engine created by Classify so
// that concurrent calls on different files stay independent.
type Stripper interface {
	// Name returns the format name (for example Markup, Script).
	Name() string
	// Extensions returns the supported suffixes, dot included.
	Extensions() []string
	// Classify scans the input and returns one ClassifiedLine per
	// physical line, original line numbers preserved.
	Classify(reader io.Reader) ([]model.ClassifiedLine, error)
}

// FormatDescriptor lists one registered format for display purposes.
type FormatDescriptor struct {
	Name       string
	Extensions []string
}

// Registry maps file extensions to strippers. Files with an unknown
// extension fall open to the plain stripper: every non-blank line is
// meaningful and no comment detection is attempted.
type Registry struct {
	strippers     []Stripper
	stripperByExt map[string]Stripper
	fallback      Stripper
}

// NewRegistry creates the registry with all built-in format strippers.
func NewRegistry() *Registry {
	strippers := []Stripper{
		&MarkupStripper{},
		&JSONStripper{},
		&ScriptStripper{},
	}

	registry := &Registry{
		strippers:     strippers,
		stripperByExt: make(map[string]Stripper),
		fallback:      &PlainStripper{},
	}

	for _, stripper := range strippers {
		for _, ext := range stripper.Extensions() {
			registry.stripperByExt[strings.ToLower(ext)] = stripper
		}
	}

	return registry
}

// StripperForFile resolves the stripper for a path by extension. The
// second return reports whether the extension was recognized; when it is
// false the plain fail-open stripper is returned, never nil.
func (r *Registry) StripperForFile(path string) (Stripper, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if stripper, ok := r.stripperByExt[ext]; ok {
		return stripper, true
	}
	return r.fallback, false
}

// Formats returns the registered formats sorted by name.
func (r *Registry) Formats() []FormatDescriptor {
	result := make([]FormatDescriptor, 0, len(r.strippers))
	for _, stripper := range r.strippers {
		extensions := append([]string(nil), stripper.Extensions()...)
		sort.Strings(extensions)
		result = append(result, FormatDescriptor{
			Name:       stripper.Name(),
			Extensions: extensions,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}
