package quiz

import (
	"time"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/spacedrep"
)

// ScopeStats summarizes a question set's latest outcomes and due state.
// Derived on demand, never stored.
type ScopeStats struct {
	Total   int
	Never   int
	Skipped int
	Wrong   int
	Correct int
	Due     int
}

// Aggregate classifies each question's most recent outcome and due status.
// It is pure: same inputs, same counts.
func Aggregate(questions []*content.Question, ledger *spacedrep.Ledger, today time.Time) ScopeStats {
	stats := ScopeStats{Total: len(questions)}
	for _, q := range questions {
		rec := ledger.Record(q.ID)
		if last, ok := rec.LastOutcome(); ok {
			switch last {
			case spacedrep.OutcomeSkipped:
				stats.Skipped++
			case spacedrep.OutcomeWrong:
				stats.Wrong++
			case spacedrep.OutcomeCorrect:
				stats.Correct++
			}
		} else {
			stats.Never++
		}
		if rec.IsDue(today) {
			stats.Due++
		}
	}
	return stats
}

// FileSummary pairs a source file with its stats.
type FileSummary struct {
	Info  *content.FileInfo
	Stats ScopeStats
}

// CourseSummary pairs a course with its stats.
type CourseSummary struct {
	CourseKey   string
	CourseTitle string
	Total       int
	Stats       ScopeStats
}

// FileSummaries returns per-file stats in the index's file order.
func FileSummaries(idx *content.Index, ledger *spacedrep.Ledger, today time.Time) []FileSummary {
	infos := idx.FileInfos()
	out := make([]FileSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, FileSummary{
			Info:  info,
			Stats: Aggregate(idx.QuestionsForFile(info.SourcePath), ledger, today),
		})
	}
	return out
}

// CourseSummaries returns per-course stats ordered by course title,
// following the file ordering.
func CourseSummaries(idx *content.Index, ledger *spacedrep.Ledger, today time.Time) []CourseSummary {
	var keys []string
	seen := make(map[string]bool)
	for _, info := range idx.FileInfos() {
		if !seen[info.CourseKey] {
			seen[info.CourseKey] = true
			keys = append(keys, info.CourseKey)
		}
	}

	out := make([]CourseSummary, 0, len(keys))
	for _, key := range keys {
		questions := idx.QuestionsForCourseKey(key)
		out = append(out, CourseSummary{
			CourseKey:   key,
			CourseTitle: idx.CourseTitleForKey(key),
			Total:       len(questions),
			Stats:       Aggregate(questions, ledger, today),
		})
	}
	return out
}
