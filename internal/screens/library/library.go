package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/quizprog/quizprog/internal/router"
	"github.com/quizprog/quizprog/internal/screen"
	"github.com/quizprog/quizprog/internal/screens/round"
	sess "github.com/quizprog/quizprog/internal/session"
	"github.com/quizprog/quizprog/internal/ui/layout"
	"github.com/quizprog/quizprog/internal/ui/theme"
)

type viewKind int

const (
	viewCourses viewKind = iota
	viewFiles
	viewTags
)

// LibraryScreen browses the loaded decks: courses, their files, and tags.
// A round can be started scoped to one file or one tag.
type LibraryScreen struct {
	session   *sess.Session
	view      viewKind
	cursor    int
	courseKey string
	statusMsg string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.EscHandler = (*LibraryScreen)(nil)

// New creates the library screen over the shared session.
func New(s *sess.Session) *LibraryScreen {
	return &LibraryScreen{session: s}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return nil
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	switch l.view {
	case viewCourses:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Files"},
			{Key: "T", Description: "Tags"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start round"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// HandleEsc steps back one level before leaving the screen entirely.
func (l *LibraryScreen) HandleEsc() tea.Cmd {
	if l.view != viewCourses {
		l.view = viewCourses
		l.cursor = 0
		l.statusMsg = ""
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < l.rowCount()-1 {
			l.cursor++
		}
	case "t":
		if l.view == viewCourses {
			l.view = viewTags
			l.cursor = 0
		}
	case "enter":
		return l.handleEnter()
	}

	return l, nil
}

func (l *LibraryScreen) handleEnter() (screen.Screen, tea.Cmd) {
	s := l.session
	switch l.view {
	case viewCourses:
		summaries := quiz.CourseSummaries(s.Index(), s.Ledger(), s.Today())
		if l.cursor < len(summaries) {
			l.courseKey = summaries[l.cursor].CourseKey
			l.view = viewFiles
			l.cursor = 0
		}
		return l, nil

	case viewFiles:
		infos := l.courseFiles()
		if l.cursor < len(infos) {
			return l, l.startScoped(quiz.FileScope(infos[l.cursor].SourcePath))
		}
		return l, nil

	case viewTags:
		tags := s.Index().TagNames()
		if l.cursor < len(tags) {
			return l, l.startScoped(quiz.TagScope(tags[l.cursor]))
		}
		return l, nil
	}
	return l, nil
}

// startScoped begins a round over the scope with every question included,
// honoring the saved limit and shuffle settings.
func (l *LibraryScreen) startScoped(scope quiz.Scope) tea.Cmd {
	s := l.session
	settings := s.Settings()
	err := s.StartRound(scope, quiz.ModeAll, settings.QuestionLimit, settings.ShuffleQuestions)
	if err != nil {
		l.statusMsg = "No questions in this selection."
		return nil
	}
	l.statusMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: round.New(s)}
	}
}

func (l *LibraryScreen) rowCount() int {
	s := l.session
	switch l.view {
	case viewCourses:
		return len(quiz.CourseSummaries(s.Index(), s.Ledger(), s.Today()))
	case viewFiles:
		return len(l.courseFiles())
	case viewTags:
		return len(s.Index().TagNames())
	}
	return 0
}

func (l *LibraryScreen) courseFiles() []*content.FileInfo {
	var out []*content.FileInfo
	for _, info := range l.session.Index().FileInfos() {
		if info.CourseKey == l.courseKey {
			out = append(out, info)
		}
	}
	return out
}

func (l *LibraryScreen) View(width, height int) string {
	var b strings.Builder

	header := fmt.Sprintf("  %-34s %5s %5s %5s %5s %5s", "", "TOTAL", "DUE", "WRONG", "SKIP", "NEW")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(header))
	b.WriteString("\n\n")

	switch l.view {
	case viewCourses:
		b.WriteString(l.renderCourses())
	case viewFiles:
		b.WriteString(l.renderFiles())
	case viewTags:
		b.WriteString(l.renderTags())
	}

	if l.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  " + l.statusMsg))
	}

	return b.String()
}

func (l *LibraryScreen) renderCourses() string {
	s := l.session
	var b strings.Builder
	for i, cs := range quiz.CourseSummaries(s.Index(), s.Ledger(), s.Today()) {
		b.WriteString(l.renderRow(i, cs.CourseTitle, cs.Stats))
	}
	return b.String()
}

func (l *LibraryScreen) renderFiles() string {
	s := l.session
	var b strings.Builder
	for i, info := range l.courseFiles() {
		stats := quiz.Aggregate(s.Index().QuestionsForFile(info.SourcePath), s.Ledger(), s.Today())
		label := info.FileName
		if info.SectionName != "" {
			label = info.SectionName + " / " + info.FileName
		}
		b.WriteString(l.renderRow(i, label, stats))
	}
	return b.String()
}

func (l *LibraryScreen) renderTags() string {
	s := l.session
	var b strings.Builder
	for i, tag := range s.Index().TagNames() {
		stats := quiz.Aggregate(s.Index().QuestionsForTag(tag), s.Ledger(), s.Today())
		b.WriteString(l.renderRow(i, "#"+tag, stats))
	}
	return b.String()
}

func (l *LibraryScreen) renderRow(i int, label string, stats quiz.ScopeStats) string {
	if lipgloss.Width(label) > 32 {
		label = label[:29] + "..."
	}

	line := fmt.Sprintf("%-34s %5d %5d %5d %5d %5d",
		label, stats.Total, stats.Due, stats.Wrong, stats.Skipped, stats.Never)

	if i == l.cursor {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+line) + "\n"
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render("  "+line) + "\n"
}
