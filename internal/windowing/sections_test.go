package windowing_test

import (
	"strings"
	"testing"

	"github.com/petasbytes/orpheus/internal/windowing"
)

func TestSplitSections_PerFile(t *testing.T) {
	lines := []string{
		"diff --git a/a.go b/a.go",
		"--- a/a.go",
		"+++ b/a.go",
		"@@ -0,0 +1 @@",
		"+x",
		"diff --git a/b.go b/b.go",
		"--- a/b.go",
		"+++ b/b.go",
		"@@ -0,0 +1 @@",
		"+y",
	}

	sections := windowing.SplitSections(lines)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Path != "a.go" || sections[1].Path != "b.go" {
		t.Fatalf("unexpected paths: %+v", sections)
	}

	// Contiguous, non-overlapping, full coverage.
	if sections[0].Start != 0 || sections[0].End != sections[1].Start || sections[1].End != len(lines) {
		t.Fatalf("sections do not cover lines contiguously: %+v", sections)
	}
}

func TestSplitSections_Preamble(t *testing.T) {
	lines := []string{
		"warning: CRLF will be replaced by LF",
		"diff --git a/x b/x",
		"--- a/x",
	}

	sections := windowing.SplitSections(lines)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d: %+v", len(sections), sections)
	}
	if sections[0].Path != "" || sections[0].Start != 0 || sections[0].End != 1 {
		t.Fatalf("unexpected preamble section: %+v", sections[0])
	}
	if sections[1].Path != "x" || sections[1].Start != 1 || sections[1].End != 3 {
		t.Fatalf("unexpected file section: %+v", sections[1])
	}
}

func TestSplitSections_NoHeader(t *testing.T) {
	lines := []string{"just text", "more text"}

	sections := windowing.SplitSections(lines)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Path != "" || sections[0].Start != 0 || sections[0].End != 2 {
		t.Fatalf("unexpected section: %+v", sections[0])
	}
}

func TestSplitSections_Empty(t *testing.T) {
	if sections := windowing.SplitSections(nil); sections != nil {
		t.Fatalf("expected nil sections, got %+v", sections)
	}
}

func TestSplitSections_PathWithSpaces(t *testing.T) {
	lines := []string{"diff --git a/my file b/my file", "--- a/my file"}

	sections := windowing.SplitSections(lines)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Path != "my file" {
		t.Fatalf("unexpected path: %q", sections[0].Path)
	}
}

func TestSplitSections_RenameHeaderFallback(t *testing.T) {
	// No " b/" marker; label falls back to the raw remainder.
	lines := []string{`diff --git "a/old" "b/new"`}

	sections := windowing.SplitSections(lines)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].Path, "new") {
		t.Fatalf("expected fallback label to mention new path, got %q", sections[0].Path)
	}
}
