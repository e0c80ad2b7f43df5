package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/ui/theme"
)

// MultiChoice renders a lettered option list. Selection and submission state
// live in the round controller; this component only draws.
type MultiChoice struct {
	Prompt       string
	Options      []string
	CorrectIndex int
	Selected     int // -1 when nothing is selected
	Submitted    bool
	ChosenIndex  int // -1 for a skip
}

// View renders the prompt and options. Before submission the cursor row is
// highlighted; after submission the correct option turns green and a wrong
// choice turns red.
func (m MultiChoice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt) + "\n\n"

	for i, opt := range m.Options {
		label := string(rune('A' + i))
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		if m.Submitted {
			switch {
			case i == m.CorrectIndex:
				s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
			case i == m.ChosenIndex:
				s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
			default:
				s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
			}
		} else {
			if i == m.Selected {
				s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
			} else {
				s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
			}
		}
	}

	return s
}
