package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/quizprog/quizprog/internal/router"
	"github.com/quizprog/quizprog/internal/screen"
	"github.com/quizprog/quizprog/internal/screens/home"
	"github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/ui/layout"
)

// Options carries the dependencies for the TUI.
type Options struct {
	Session *session.Session
	Version string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	session *session.Session
	router  *router.Router
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		session: opts.Session,
		router:  router.New(home.New(opts.Session)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.session.ExitAndSave()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok {
				return m, h.HandleEsc()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	due := m.session.AvailableCount(quiz.RepositoryScope(), quiz.ModeDue)
	header := layout.RenderHeader(title, due, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
