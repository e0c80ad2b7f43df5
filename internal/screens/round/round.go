package round

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/router"
	"github.com/quizprog/quizprog/internal/screen"
	"github.com/quizprog/quizprog/internal/screens/summary"
	sess "github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/ui/components"
	"github.com/quizprog/quizprog/internal/ui/layout"
	"github.com/quizprog/quizprog/internal/ui/theme"
)

// RoundScreen drives one quiz round. The session must already have a round
// started or resumed when the screen is pushed.
type RoundScreen struct {
	session   *sess.Session
	statusMsg string
}

var _ screen.Screen = (*RoundScreen)(nil)
var _ screen.KeyHintProvider = (*RoundScreen)(nil)
var _ screen.EscHandler = (*RoundScreen)(nil)

// New creates a round screen over the live round.
func New(s *sess.Session) *RoundScreen {
	return &RoundScreen{session: s}
}

func (r *RoundScreen) Init() tea.Cmd {
	return nil
}

func (r *RoundScreen) Title() string {
	return "Round"
}

func (r *RoundScreen) KeyHints() []layout.KeyHint {
	if r.session.Submitted() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Save & exit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Submit"},
		{Key: "S", Description: "Skip"},
		{Key: "Esc", Description: "Save & exit"},
	}
}

// HandleEsc saves the round for later resume and leaves the screen.
func (r *RoundScreen) HandleEsc() tea.Cmd {
	r.session.ExitAndSave()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (r *RoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	s := r.session
	switch kmsg.String() {
	case "up", "k":
		r.moveSelection(-1)
	case "down", "j":
		r.moveSelection(1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(kmsg.String()[0] - '1')
		if err := s.SelectOption(idx); err != nil {
			break
		}
		r.statusMsg = ""
	case "s":
		if err := s.Skip(); err == nil {
			r.statusMsg = ""
		}
	case "enter":
		return r.handleEnter()
	}

	return r, nil
}

func (r *RoundScreen) handleEnter() (screen.Screen, tea.Cmd) {
	s := r.session

	if !s.Submitted() {
		if err := s.Submit(); err != nil {
			r.statusMsg = "Pick an option first, or press S to skip."
		}
		return r, nil
	}

	finished, err := s.Advance()
	if err != nil {
		return r, nil
	}
	if finished {
		return r, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(s)}
		}
	}
	r.statusMsg = ""
	return r, nil
}

func (r *RoundScreen) moveSelection(step int) {
	s := r.session
	q := s.CurrentQuestion()
	if q == nil || s.Submitted() {
		return
	}

	next := 0
	if cur, ok := s.SelectedOption(); ok {
		next = cur + step
	} else if step < 0 {
		next = len(q.Options) - 1
	}

	if next < 0 || next >= len(q.Options) {
		return
	}
	_ = s.SelectOption(next)
}

func (r *RoundScreen) View(width, height int) string {
	s := r.session
	q := s.CurrentQuestion()
	if q == nil {
		return theme.Hint.Render("\n  No question open.")
	}

	var b strings.Builder

	// Round info line.
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.ScopeLabel())

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d   Score %d", s.CurrentIndex()+1, s.TotalQuestions(), s.Score()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(s.CurrentIndex())/float64(s.TotalQuestions()), false, width-4)
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	// Question and options.
	selected := -1
	if cur, ok := s.SelectedOption(); ok {
		selected = cur
	}
	chosen := -1
	if s.Submitted() {
		if outcomes := s.Outcomes(); len(outcomes) > 0 {
			last := outcomes[len(outcomes)-1]
			if !last.IsSkip() {
				chosen = last.SelectedIndex
			}
		}
	}

	mc := components.MultiChoice{
		Prompt:       q.Prompt,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Selected:     selected,
		Submitted:    s.Submitted(),
		ChosenIndex:  chosen,
	}
	b.WriteString(mc.View())

	if s.Submitted() {
		b.WriteString("\n")
		b.WriteString(r.renderFeedback(chosen, q.CorrectIndex, q.Explanation))
	}

	if r.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + r.statusMsg))
	}

	return b.String()
}

func (r *RoundScreen) renderFeedback(chosen, correct int, explanation string) string {
	var verdict string
	switch {
	case chosen == correct:
		verdict = theme.Correct.Render("  Correct!")
	case chosen < 0:
		verdict = theme.Hint.Render("  Skipped.")
	default:
		verdict = theme.Incorrect.Render("  Wrong.")
	}

	return verdict + "\n\n" + theme.Body.Render("  "+explanation)
}
