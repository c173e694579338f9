package windowing

import (
	"strings"
	"unicode/utf8"
)

// Stats summarizes the result of diff preparation.
//
// Fields:
// - TotalRunes: rune count of the included content, sentinel excluded.
// - Budget: the rune budget used.
// - IncludedFiles: number of file sections included whole.
// - SkippedFiles: total sections minus IncludedFiles.
// - Truncated: true when any content was dropped or clamped.
type Stats struct {
	TotalRunes    int
	Budget        int
	IncludedFiles int
	SkippedFiles  int
	Truncated     bool
}

const truncationSentinel = "-- diff truncated; staged changes exceed the prompt budget --\n"

// PrepareDiff returns diff content that fits within budget runes without
// splitting file sections.
//
// Rules:
// - Include whole file sections scanning first → last while total ≤ budget.
// - If the first section alone exceeds budget, hard-clamp it to budget runes.
// - If budget ≤ 0, clamping is disabled and the diff passes through unchanged.
// - Whenever content is dropped or clamped, append a trailing sentinel line.
func PrepareDiff(diff string, budget int) (string, Stats) {
	if diff == "" {
		return "", Stats{Budget: budget}
	}

	total := utf8.RuneCountInString(diff)
	if budget <= 0 || total <= budget {
		lines := strings.Split(diff, "\n")
		return diff, Stats{
			TotalRunes:    total,
			Budget:        budget,
			IncludedFiles: len(SplitSections(lines)),
		}
	}

	lines := strings.Split(diff, "\n")
	sections := SplitSections(lines)

	// Walk sections first → last, costing each as line runes plus one newline
	// per line. The estimate never undercounts the joined output, so whatever
	// is included is guaranteed to fit.
	sum := 0
	included := 0
	endLine := 0
	for _, s := range sections {
		cost := sectionRunes(lines, s)
		if included == 0 && cost > budget {
			vlogf("reason=over_budget_first_section budget=%d cost=%d path=%s", budget, cost, s.Path)
			clamped, _ := ClampRunes(strings.Join(lines[s.Start:s.End], "\n"), budget)
			return withSentinel(clamped), Stats{
				TotalRunes:    utf8.RuneCountInString(clamped),
				Budget:        budget,
				IncludedFiles: 0,
				SkippedFiles:  len(sections),
				Truncated:     true,
			}
		}
		if sum+cost > budget {
			break
		}
		sum += cost
		included++
		endLine = s.End
	}

	vlogf("reason=sections_dropped budget=%d included=%d skipped=%d", budget, included, len(sections)-included)
	out := strings.Join(lines[:endLine], "\n")
	return withSentinel(out), Stats{
		TotalRunes:    utf8.RuneCountInString(out),
		Budget:        budget,
		IncludedFiles: included,
		SkippedFiles:  len(sections) - included,
		Truncated:     true,
	}
}

// sectionRunes estimates a section's cost: line runes plus one newline per line.
func sectionRunes(lines []string, s Section) int {
	total := 0
	for i := s.Start; i < s.End && i < len(lines); i++ {
		total += utf8.RuneCountInString(lines[i]) + 1
	}
	return total
}

// ClampRunes clamps s to at most n runes, reporting whether clamping occurred.
func ClampRunes(s string, n int) (string, bool) {
	if n <= 0 {
		return "", len([]rune(s)) > 0
	}
	r := []rune(s)
	if len(r) <= n {
		return s, false
	}
	return string(r[:n]), true
}

func withSentinel(out string) string {
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + truncationSentinel
}
