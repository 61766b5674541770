package formats

import (
	"strings"
	"testing"

	"chartloc/internal/model"
)

// classifyText is a test helper that runs one stripper over an inline
// fixture.
func classifyText(t *testing.T, stripper Stripper, content string) []model.ClassifiedLine {
	t.Helper()

	lines, err := stripper.Classify(strings.NewReader(content))
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	return lines
}

// TestMarkupBlockCommentSpansLines verifies that an unclosed <!--
// carries comment state to later lines until --> appears.
func TestMarkupBlockCommentSpansLines(t *testing.T) {
	stripper := &MarkupStripper{}
	content := "<div>\n" +
		"<!-- start\n" +
		"still inside\n" +
		"end -->\n" +
		"</div>\n"

	lines := classifyText(t, stripper, content)

	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	expected := []bool{true, false, false, false, true}
	for i, want := range expected {
		if lines[i].Meaningful != want {
			t.Fatalf("line %d: meaningful=%v, want %v", lines[i].Number, lines[i].Meaningful, want)
		}
	}
}

// TestMarkupInlineBlockComment verifies that code around an inline
// comment span stays meaningful while the span itself is removed.
func TestMarkupInlineBlockComment(t *testing.T) {
	stripper := &MarkupStripper{}
	lines := classifyText(t, stripper, "<p>text</p> <!-- note --> <p>more</p>\n")

	if !lines[0].Meaningful {
		t.Fatalf("inline comment swallowed surrounding code: %+v", lines[0])
	}
	if strings.Contains(lines[0].Stripped, "note") {
		t.Fatalf("comment text not removed: %q", lines[0].Stripped)
	}
	if !strings.Contains(lines[0].Stripped, "<p>text</p>") || !strings.Contains(lines[0].Stripped, "<p>more</p>") {
		t.Fatalf("code text lost: %q", lines[0].Stripped)
	}
}

// TestMarkupLineComment verifies // handling outside block spans.
func TestMarkupLineComment(t *testing.T) {
	stripper := &MarkupStripper{}
	content := "// full comment line\n" +
		"let x = 1; // trailing\n"

	lines := classifyText(t, stripper, content)

	if lines[0].Meaningful {
		t.Fatalf("full // line should be comment-only: %+v", lines[0])
	}
	if !lines[1].Meaningful || strings.Contains(lines[1].Stripped, "trailing") {
		t.Fatalf("trailing // not stripped correctly: %+v", lines[1])
	}
}

// TestJSONLineComment verifies the data-interchange format strips //
// and nothing else.
func TestJSONLineComment(t *testing.T) {
	stripper := &JSONStripper{}
	content := "{\n" +
		"  \"a\": 1, // tolerated extension\n" +
		"  // full comment\n" +
		"}\n"

	lines := classifyText(t, stripper, content)

	if !lines[1].Meaningful || strings.Contains(lines[1].Stripped, "tolerated") {
		t.Fatalf("trailing comment handling wrong: %+v", lines[1])
	}
	if lines[2].Meaningful {
		t.Fatalf("full comment line counted as meaningful: %+v", lines[2])
	}
}

// TestScriptHashComment verifies # stripping.
func TestScriptHashComment(t *testing.T) {
	stripper := &ScriptStripper{}
	content := "x = 1  # note\n" +
		"# only comment\n"

	lines := classifyText(t, stripper, content)

	if !lines[0].Meaningful || strings.Contains(lines[0].Stripped, "note") {
		t.Fatalf("trailing # not stripped: %+v", lines[0])
	}
	if lines[1].Meaningful {
		t.Fatalf("full # line counted as meaningful: %+v", lines[1])
	}
}

// TestScriptTripleQuoteSpansLines verifies that a triple-quote span
// behaves like a block comment across lines, for both quote styles.
func TestScriptTripleQuoteSpansLines(t *testing.T) {
	stripper := &ScriptStripper{}
	content := "\"\"\"\n" +
		"docstring body\n" +
		"\"\"\"\n" +
		"x = 1\n" +
		"'''\n" +
		"more\n" +
		"'''\n"

	lines := classifyText(t, stripper, content)

	expected := []bool{false, false, false, true, false, false, false}
	for i, want := range expected {
		if lines[i].Meaningful != want {
			t.Fatalf("line %d: meaningful=%v, want %v", lines[i].Number, lines[i].Meaningful, want)
		}
	}
}

// TestScriptInlineTripleQuotePair verifies left-to-right alternation:
// an open-close pair on one line removes only the delimited span.
func TestScriptInlineTripleQuotePair(t *testing.T) {
	stripper := &ScriptStripper{}
	lines := classifyText(t, stripper, "a = ''' removed ''' + b\n")

	if !lines[0].Meaningful {
		t.Fatalf("surrounding code lost: %+v", lines[0])
	}
	if strings.Contains(lines[0].Stripped, "removed") {
		t.Fatalf("delimited span kept: %q", lines[0].Stripped)
	}
	if !strings.Contains(lines[0].Stripped, "a =") || !strings.Contains(lines[0].Stripped, "+ b") {
		t.Fatalf("code fragments lost: %q", lines[0].Stripped)
	}
}

// TestPlainFailOpen verifies unknown extensions keep every non-blank
// line meaningful, comment markers included.
func TestPlainFailOpen(t *testing.T) {
	registry := NewRegistry()
	stripper, known := registry.StripperForFile("notes.txt")
	if known {
		t.Fatalf(".txt should not be a recognized extension")
	}

	content := "# not a comment here\n" +
		"\n" +
		"<!-- nor this -->\n"

	lines := classifyText(t, stripper, content)

	if !lines[0].Meaningful || !lines[2].Meaningful {
		t.Fatalf("plain stripper must keep non-blank lines meaningful: %+v", lines)
	}
	if lines[1].Meaningful {
		t.Fatalf("blank line can never be meaningful: %+v", lines[1])
	}
}

// TestBlankLinesNeverMeaningful verifies whitespace-only lines are not
// meaningful in any state, including inside a block span.
func TestBlankLinesNeverMeaningful(t *testing.T) {
	stripper := &MarkupStripper{}
	content := "<!--\n" +
		"   \n" +
		"-->\n" +
		"\t\n" +
		"<p>x</p>\n"

	lines := classifyText(t, stripper, content)

	for _, line := range lines[:4] {
		if line.Meaningful {
			t.Fatalf("line %d should not be meaningful: %+v", line.Number, line)
		}
	}
	if !lines[4].Meaningful {
		t.Fatalf("line 5 should be meaningful: %+v", lines[4])
	}
}

// TestStateDoesNotLeakAcrossFiles verifies a fresh engine per Classify
// call: an unterminated block in one file must not poison the next.
func TestStateDoesNotLeakAcrossFiles(t *testing.T) {
	stripper := &MarkupStripper{}

	first := classifyText(t, stripper, "<!-- never closed\n")
	if first[0].Meaningful {
		t.Fatalf("unterminated block should be comment-only: %+v", first[0])
	}

	second := classifyText(t, stripper, "<p>fresh file</p>\n")
	if !second[0].Meaningful {
		t.Fatalf("block state leaked across files: %+v", second[0])
	}
}

// TestLineNumbersPreserved verifies classification keeps original
// 1-indexed numbering for range lookups.
func TestLineNumbersPreserved(t *testing.T) {
	stripper := &JSONStripper{}
	lines := classifyText(t, stripper, "{\n// c\n}\n")

	for i, line := range lines {
		if line.Number != i+1 {
			t.Fatalf("line %d numbered %d", i+1, line.Number)
		}
	}
}

// TestRegistryExtensions confirms the registered extension set.
func TestRegistryExtensions(t *testing.T) {
	registry := NewRegistry()

	for _, ext := range []string{".html", ".htm", ".json", ".py", ".r"} {
		if _, known := registry.StripperForFile("x" + ext); !known {
			t.Fatalf("missing stripper for extension %s", ext)
		}
	}
	if _, known := registry.StripperForFile("chart.R"); !known {
		t.Fatalf("extension matching must be case-insensitive")
	}
}
