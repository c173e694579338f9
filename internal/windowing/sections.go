package windowing

import (
	"fmt"
	"os"
	"strings"
)

// Section describes a contiguous span of diff lines [Start, End) belonging to
// one file. Path is taken from the "diff --git" header; the preamble before
// the first header (if any) has an empty Path.
type Section struct {
	Path  string
	Start int // inclusive line index
	End   int // exclusive line index
}

const fileHeaderPrefix = "diff --git "

// SplitSections groups unified-diff lines into per-file sections.
// Invariants:
// - Sections are contiguous, non-overlapping, and cover every line.
// - A section starts at each "diff --git" header line.
// - Lines before the first header form a preamble section with an empty Path.
func SplitSections(lines []string) []Section {
	var sections []Section
	start := -1
	path := ""
	for i, line := range lines {
		if !strings.HasPrefix(line, fileHeaderPrefix) {
			continue
		}
		if start >= 0 {
			sections = append(sections, Section{Path: path, Start: start, End: i})
		} else if i > 0 {
			sections = append(sections, Section{Start: 0, End: i})
		}
		start = i
		path = headerPath(line)
	}
	if start >= 0 {
		sections = append(sections, Section{Path: path, Start: start, End: len(lines)})
	} else if len(lines) > 0 {
		sections = append(sections, Section{Start: 0, End: len(lines)})
	}
	return sections
}

// headerPath extracts the b-side path from a "diff --git a/x b/y" header.
// Quoted or renamed paths fall back to the raw header remainder; sections
// only need a stable label, not a parsed path.
func headerPath(line string) string {
	rest := strings.TrimPrefix(line, fileHeaderPrefix)
	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return rest[i+len(" b/"):]
	}
	return rest
}

// minimal verbose logging when ORPHEUS_VERBOSE_WINDOW_LOGS=1
var verbose = os.Getenv("ORPHEUS_VERBOSE_WINDOW_LOGS") == "1"

func vlogf(format string, args ...any) {
	if verbose {
		fmt.Printf("[windowing] "+format+"\n", args...)
	}
}
