package session

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/petasbytes/orpheus/handlers"
)

// Semantic colors for the status lines. Styles degrade to plain text when
// the output is not a terminal.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")).Bold(true)
)

// render prints one Response, switching on its status. Unrecognized status
// values get the generic warning form.
func (s *Session) render(resp handlers.Response) {
	switch resp.Status() {
	case handlers.StatusSuccess:
		fmt.Fprintf(s.out, "%s %s\n", successStyle.Render("✅"), s.successBody(resp))
	case handlers.StatusFailed:
		fmt.Fprintln(s.out, failureStyle.Render("❌ Execution failed: "+resp.Message()))
	case handlers.StatusNotHandled:
		fmt.Fprintln(s.out, neutralStyle.Render("❔ "+resp.Message()))
	default:
		fmt.Fprintln(s.out, warningStyle.Render(fmt.Sprintf("⚠️  Unknown response: %v", resp)))
	}
}

// successBody renders a markdown-flagged answer for the terminal, falling
// back to the raw text when markdown rendering is off or fails.
func (s *Session) successBody(resp handlers.Response) string {
	body := resp.Message()
	if format, _ := resp.Meta("format"); format != "markdown" || s.md == nil {
		return body
	}
	rendered, err := s.md.Render(body)
	if err != nil {
		return body
	}
	return rendered
}
