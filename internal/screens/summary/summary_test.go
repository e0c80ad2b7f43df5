package summary

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/quiz"
	sess "github.com/quizprog/quizprog/internal/session"
)

// finishedSession plays a full round: two correct, one wrong.
func finishedSession(t *testing.T) *sess.Session {
	t.Helper()

	questions := make([]*content.Question, 3)
	for i := range questions {
		questions[i] = &content.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d", i+1),
			Options:      []string{"right", "wrong"},
			CorrectIndex: 0,
			Explanation:  "Because.",
			CourseKey:    "geo",
			SourcePath:   "geo/deck.json",
		}
	}
	idx := content.NewIndex([]*content.Course{{
		ID: "course-geo", Key: "geo", Title: "Geography", Questions: questions,
	}}, nil)

	s := sess.New(idx, nil)
	if err := s.StartRound(quiz.RepositoryScope(), quiz.ModeAll, 0, false); err != nil {
		t.Fatal(err)
	}
	picks := []int{0, 0, 1}
	for _, pick := range picks {
		if err := s.SelectOption(pick); err != nil {
			t.Fatal(err)
		}
		if err := s.Submit(); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Advance(); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(finishedSession(t))
	if s.Title() != "Round Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Round Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(finishedSession(t))
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(finishedSession(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(finishedSession(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(finishedSession(t))
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
