package round

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/quiz"
	sess "github.com/quizprog/quizprog/internal/session"
)

func startedSession(t *testing.T) *sess.Session {
	t.Helper()

	questions := make([]*content.Question, 2)
	for i := range questions {
		questions[i] = &content.Question{
			ID:           fmt.Sprintf("q%d", i+1),
			Prompt:       fmt.Sprintf("Question %d", i+1),
			Options:      []string{"right", "wrong", "other"},
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
	return s
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestRoundScreen_SelectAndSubmit(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	r.Update(key('1'))
	if sel, ok := s.SelectedOption(); !ok || sel != 0 {
		t.Fatalf("selection = %d,%v after '1', want 0,true", sel, ok)
	}

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.Submitted() {
		t.Fatal("not submitted after Enter")
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
}

func TestRoundScreen_ArrowSelection(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sel, ok := s.SelectedOption(); !ok || sel != 0 {
		t.Fatalf("selection = %d,%v after down, want 0,true", sel, ok)
	}

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if sel, _ := s.SelectedOption(); sel != 1 {
		t.Errorf("selection = %d after two downs, want 1", sel)
	}

	r.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if sel, _ := s.SelectedOption(); sel != 0 {
		t.Errorf("selection = %d after up, want 0", sel)
	}
}

func TestRoundScreen_SubmitWithoutSelectionShowsHint(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.Submitted() {
		t.Error("submitted with no selection")
	}
	if r.statusMsg == "" {
		t.Error("expected a hint message")
	}
}

func TestRoundScreen_Skip(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	r.Update(key('s'))
	if !s.Submitted() {
		t.Fatal("skip did not close the question")
	}
	if s.Score() != 0 {
		t.Errorf("score = %d after skip, want 0", s.Score())
	}
}

func TestRoundScreen_FinishReplacesWithSummary(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	// Answer both questions; the final advance must yield a command.
	r.Update(key('1'))
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // submit
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // advance
	r.Update(key('1'))
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // submit

	_, cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}) // advance, finishes
	if cmd == nil {
		t.Fatal("expected a replace command at round end")
	}
	if !s.Finished() {
		t.Error("round not finished")
	}
}

func TestRoundScreen_EscSavesAndPops(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	cmd := r.HandleEsc()
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if s.Started() {
		t.Error("round still foreground after esc")
	}
	if !s.Resumable() {
		t.Error("round not saved for resume")
	}
}

func TestRoundScreen_View(t *testing.T) {
	s := startedSession(t)
	r := New(s)

	if view := r.View(80, 24); view == "" {
		t.Error("expected non-empty view")
	}

	r.Update(key('1'))
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if view := r.View(80, 24); view == "" {
		t.Error("expected non-empty feedback view")
	}
}
