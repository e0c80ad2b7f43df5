package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/router"
	"github.com/quizprog/quizprog/internal/screen"
	sess "github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/ui/layout"
	"github.com/quizprog/quizprog/internal/ui/theme"
)

// SummaryScreen displays the finished round's results.
type SummaryScreen struct {
	summary *sess.RoundSummary
	scroll  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen from the session's finished round.
func New(s *sess.Session) *SummaryScreen {
	return &SummaryScreen{summary: s.Summary()}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Round complete!"))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("Score: %d/%d (%d%%)", sum.Score, sum.Total, sum.Percent)
	if sum.NewBest {
		scoreLine += "   " + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("New best!")
	} else if sum.BestScore > 0 {
		scoreLine += fmt.Sprintf("   Best: %d", sum.BestScore)
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(scoreLine))
	b.WriteString("\n\n")

	if sum.CourseTitle != "" {
		statsLine := fmt.Sprintf("%s: %d plays, %d%% lifetime accuracy",
			sum.CourseTitle, sum.CourseStats.Plays, sum.CourseStats.AccuracyPercent())
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(statsLine))
		b.WriteString("\n\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Questions")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	b.WriteString(s.renderOutcomes(width, height))
	return b.String()
}

// renderOutcomes lists each question with its verdict, windowed by scroll.
func (s *SummaryScreen) renderOutcomes(width, height int) string {
	outcomes := s.summary.Outcomes

	visible := height - 10
	if visible < 3 {
		visible = 3
	}
	maxScroll := len(outcomes) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	end := s.scroll + visible
	if end > len(outcomes) {
		end = len(outcomes)
	}

	var b strings.Builder
	for i, o := range outcomes[s.scroll:end] {
		n := s.scroll + i + 1

		var mark string
		switch {
		case o.IsSkip():
			mark = theme.Hint.Render("–")
		case o.IsCorrect():
			mark = theme.Correct.Render("✓")
		default:
			mark = theme.Incorrect.Render("✗")
		}

		prompt := o.Question.Prompt
		if lipgloss.Width(prompt) > width-12 {
			prompt = prompt[:width-15] + "..."
		}

		b.WriteString(fmt.Sprintf("  %s %2d. %s\n", mark, n, theme.Body.Render(prompt)))

		if !o.IsSkip() && !o.IsCorrect() {
			answer := o.Question.Options[o.Question.CorrectIndex]
			b.WriteString(theme.Hint.Render(fmt.Sprintf("        → %s", answer)))
			b.WriteString("\n")
		}
	}

	if end < len(outcomes) {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(outcomes)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
