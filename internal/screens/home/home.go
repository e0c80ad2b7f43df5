package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/quizprog/quizprog/internal/router"
	"github.com/quizprog/quizprog/internal/screen"
	"github.com/quizprog/quizprog/internal/screens/library"
	"github.com/quizprog/quizprog/internal/screens/round"
	sess "github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/ui/components"
	"github.com/quizprog/quizprog/internal/ui/layout"
	"github.com/quizprog/quizprog/internal/ui/theme"
)

// HomeScreen is the entry screen: round launcher plus the session settings.
type HomeScreen struct {
	session      *sess.Session
	menu         components.Menu
	mode         quiz.FilterMode
	limitInput   components.TextInput
	editingLimit bool
	statusMsg    string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen over the shared session.
func New(s *sess.Session) *HomeScreen {
	h := &HomeScreen{
		session:    s,
		mode:       quiz.ModeDue,
		limitInput: components.NewTextInput("count", true, 4),
	}
	if s.Settings().SelectedCourseID == "" {
		if courses := s.Index().Courses(); len(courses) > 0 {
			s.SetSelectedCourse(courses[0].ID)
		}
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	return []components.MenuItem{
		{Label: "START ROUND", Action: h.startRound},
		{Label: "RESUME ROUND", Disabled: !h.session.Resumable(), Action: h.resumeRound},
		{Label: "LIBRARY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: library.New(h.session)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) startRound() tea.Cmd {
	settings := h.session.Settings()
	err := h.session.StartRound(quiz.RepositoryScope(), h.mode, settings.QuestionLimit, settings.ShuffleQuestions)
	if err != nil {
		h.statusMsg = "No questions match this filter."
		return nil
	}
	h.statusMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: round.New(h.session)}
	}
}

func (h *HomeScreen) resumeRound() tea.Cmd {
	err := h.session.Resume()
	if errors.Is(err, sess.ErrStaleSnapshot) {
		h.statusMsg = "Saved round no longer matches the question decks; it was discarded."
		h.menu = components.NewMenu(h.menuItems())
		return nil
	}
	if err != nil {
		h.statusMsg = "Nothing to resume."
		return nil
	}
	h.statusMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: round.New(h.session)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.editingLimit {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply limit"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Tab", Description: "Filter"},
		{Key: "←→", Description: "Course"},
		{Key: "S", Description: "Shuffle"},
		{Key: "W", Description: "Wrong-only"},
		{Key: "L", Description: "Limit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if h.editingLimit {
		return h.updateLimitInput(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab":
			h.mode = nextMode(h.mode)
			return h, nil
		case "left":
			h.cycleCourse(-1)
			return h, nil
		case "right":
			h.cycleCourse(1)
			return h, nil
		case "s":
			h.session.SetShuffle(!h.session.Settings().ShuffleQuestions)
			return h, nil
		case "w":
			h.session.SetWrongAnswersOnly(!h.session.Settings().WrongAnswersOnly)
			return h, nil
		case "l":
			h.editingLimit = true
			h.limitInput.Reset()
			return h, h.limitInput.Init()
		}
	}

	// Refresh the resume entry in case a snapshot appeared or went away.
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.menuItems())
	h.menu.Selected = selected

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateLimitInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			n, err := h.limitInput.NumericValue()
			if err != nil {
				n = 0 // empty input clears the cap
			}
			h.session.SetQuestionLimit(n)
			h.editingLimit = false
			return h, nil
		case "esc":
			h.editingLimit = false
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.limitInput, cmd = h.limitInput.Update(msg)
	return h, cmd
}

func (h *HomeScreen) cycleCourse(step int) {
	courses := h.session.Index().Courses()
	if len(courses) == 0 {
		return
	}
	current := 0
	for i, c := range courses {
		if c.ID == h.session.Settings().SelectedCourseID {
			current = i
			break
		}
	}
	next := (current + step + len(courses)) % len(courses)
	h.session.SetSelectedCourse(courses[next].ID)
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("QUIZPROG"))
	sections = append(sections, theme.Subtitle.Width(width).Render("Spaced-repetition quiz trainer"))
	sections = append(sections, h.renderStatus(width))
	sections = append(sections, h.menu.View())

	if h.editingLimit {
		sections = append(sections, "  Question limit: "+h.limitInput.View())
	}
	if h.statusMsg != "" {
		sections = append(sections, theme.Hint.Render("  "+h.statusMsg))
	}

	return "\n" + strings.Join(sections, "\n\n")
}

// renderStatus draws the settings and filter card.
func (h *HomeScreen) renderStatus(width int) string {
	s := h.session
	settings := s.Settings()

	courseTitle := "(none)"
	bestLine := ""
	if c := s.Index().Course(settings.SelectedCourseID); c != nil {
		courseTitle = c.Title
		stats := s.CourseStatsFor(c.ID)
		bestLine = fmt.Sprintf("Best %d   Plays %d   Accuracy %d%%",
			s.BestScore(c.ID), stats.Plays, stats.AccuracyPercent())
	}

	available := s.AvailableCount(quiz.RepositoryScope(), h.mode)

	limitStr := "none"
	if settings.QuestionLimit > 0 {
		limitStr = fmt.Sprintf("%d", settings.QuestionLimit)
	}

	lines := []string{
		fmt.Sprintf("Course   %s", courseTitle),
		fmt.Sprintf("Filter   %s (%d available)", h.mode.Title(), available),
		fmt.Sprintf("Limit    %s   Shuffle %s   Wrong-only %s",
			limitStr, onOff(settings.ShuffleQuestions), onOff(settings.WrongAnswersOnly)),
	}
	if bestLine != "" {
		lines = append(lines, bestLine)
	}

	card := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func nextMode(m quiz.FilterMode) quiz.FilterMode {
	for i, mode := range quiz.Modes {
		if mode == m {
			return quiz.Modes[(i+1)%len(quiz.Modes)]
		}
	}
	return quiz.Modes[0]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
