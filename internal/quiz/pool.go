package quiz

import (
	"sort"
	"time"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/spacedrep"
)

// FilterMode narrows a scope to a quiz pool based on each question's
// performance history.
type FilterMode string

const (
	ModeDue            FilterMode = "due"
	ModeAll            FilterMode = "all"
	ModeUnanswered     FilterMode = "unanswered"
	ModeWrong          FilterMode = "wrong"
	ModeSkipped        FilterMode = "skipped"
	ModeWrongOrSkipped FilterMode = "wrongOrSkipped"
)

// Modes lists every filter mode in menu order.
var Modes = []FilterMode{ModeDue, ModeAll, ModeUnanswered, ModeWrong, ModeSkipped, ModeWrongOrSkipped}

// Title returns the mode's display label.
func (m FilterMode) Title() string {
	switch m {
	case ModeDue:
		return "Due today"
	case ModeUnanswered:
		return "Unanswered"
	case ModeWrong:
		return "Wrong"
	case ModeSkipped:
		return "Skipped"
	case ModeWrongOrSkipped:
		return "Wrong or skipped"
	default:
		return "All questions"
	}
}

type scopeKind string

const (
	scopeRepository scopeKind = "repository"
	scopeFile       scopeKind = "file"
	scopeTag        scopeKind = "tag"
)

// Scope selects the candidate question set before any filtering: the whole
// repository, one source file, or one tag.
type Scope struct {
	Kind  scopeKind `json:"kind"`
	Value string    `json:"value,omitempty"`
}

// RepositoryScope selects every question.
func RepositoryScope() Scope {
	return Scope{Kind: scopeRepository}
}

// FileScope selects the questions from one source path.
func FileScope(sourcePath string) Scope {
	return Scope{Kind: scopeFile, Value: sourcePath}
}

// TagScope selects the questions carrying one tag.
func TagScope(tag string) Scope {
	return Scope{Kind: scopeTag, Value: tag}
}

// Label returns the scope's display label, resolving file paths to their
// display names through the index.
func (s Scope) Label(idx *content.Index) string {
	switch s.Kind {
	case scopeFile:
		for _, info := range idx.FileInfos() {
			if info.SourcePath == s.Value {
				return "File: " + info.FileName
			}
		}
		return "File: " + s.Value
	case scopeTag:
		return "Tag: " + s.Value
	default:
		return "All questions"
	}
}

// Questions resolves the scope to its candidate set in ingestion order.
// Performance state is never consulted here.
func (s Scope) Questions(idx *content.Index) []*content.Question {
	switch s.Kind {
	case scopeFile:
		return idx.QuestionsForFile(s.Value)
	case scopeTag:
		return idx.QuestionsForTag(s.Value)
	default:
		return idx.Questions()
	}
}

// BuildPool resolves the scope and applies the filter mode over the ledger.
// Order preserves the candidate set, except wrongOrSkipped which sorts
// descending by lifetime wrong count (ties keep relative order). An empty
// result is a valid outcome, not an error.
func BuildPool(idx *content.Index, ledger *spacedrep.Ledger, scope Scope, mode FilterMode, today time.Time) []*content.Question {
	candidates := scope.Questions(idx)
	if len(candidates) == 0 {
		return nil
	}

	switch mode {
	case ModeUnanswered:
		return filter(candidates, func(r *spacedrep.Record) bool {
			return len(r.History) == 0
		}, ledger)

	case ModeWrong:
		return filter(candidates, func(r *spacedrep.Record) bool {
			last, ok := r.LastOutcome()
			return ok && last == spacedrep.OutcomeWrong
		}, ledger)

	case ModeSkipped:
		return filter(candidates, func(r *spacedrep.Record) bool {
			last, ok := r.LastOutcome()
			return ok && last == spacedrep.OutcomeSkipped
		}, ledger)

	case ModeWrongOrSkipped:
		pool := filter(candidates, func(r *spacedrep.Record) bool {
			last, ok := r.LastOutcome()
			return ok && (last == spacedrep.OutcomeWrong || last == spacedrep.OutcomeSkipped)
		}, ledger)
		sort.SliceStable(pool, func(i, j int) bool {
			return ledger.Record(pool[i].ID).WrongCount() > ledger.Record(pool[j].ID).WrongCount()
		})
		return pool

	case ModeDue:
		return filter(candidates, func(r *spacedrep.Record) bool {
			return r.IsDue(today)
		}, ledger)

	default: // ModeAll
		out := make([]*content.Question, len(candidates))
		copy(out, candidates)
		return out
	}
}

func filter(candidates []*content.Question, keep func(*spacedrep.Record) bool, ledger *spacedrep.Ledger) []*content.Question {
	var out []*content.Question
	for _, q := range candidates {
		if keep(ledger.Record(q.ID)) {
			out = append(out, q)
		}
	}
	return out
}
