package session

import (
	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/quiz"
)

// outcomeSnapshot is one persisted outcome log entry. A negative selected
// index denotes a skip.
type outcomeSnapshot struct {
	QuestionID    string `json:"questionID"`
	SelectedIndex int    `json:"selectedIndex"`
}

// progressSnapshot is the serialized projection of an in-flight round plus
// the settings in effect, sufficient to reconstruct it exactly as long as
// every referenced question ID still resolves.
type progressSnapshot struct {
	RoundID       string            `json:"roundID"`
	QuestionIDs   []string          `json:"questionIDs"`
	CurrentIndex  int               `json:"currentIndex"`
	Score         int               `json:"score"`
	SelectedIndex *int              `json:"selectedIndex,omitempty"`
	DidSubmit     bool              `json:"didSubmit"`
	Outcomes      []outcomeSnapshot `json:"outcomes"`
	Scope         quiz.Scope        `json:"scope"`
	Mode          quiz.FilterMode   `json:"mode"`
	Settings      Settings          `json:"settings"`
}

// canRestore reports whether the snapshot is wholly resolvable against the
// current index. Restore is all-or-nothing: a single stale ID refuses it.
func (snap *progressSnapshot) canRestore(idx *content.Index) bool {
	if snap == nil || len(snap.QuestionIDs) == 0 {
		return false
	}
	if !idx.Contains(snap.QuestionIDs) {
		return false
	}
	for _, o := range snap.Outcomes {
		if idx.Question(o.QuestionID) == nil {
			return false
		}
	}
	return true
}
