package session

// RoundSummary is the finished round's result for the summary view.
type RoundSummary struct {
	CourseTitle string
	Score       int
	Total       int
	Percent     int
	BestScore   int
	NewBest     bool
	Outcomes    []Outcome
	CourseStats CourseStats
}

// Summary returns the finished round's results, or nil while a round is
// still in progress.
func (s *Session) Summary() *RoundSummary {
	if !s.finished {
		return nil
	}
	courseID := s.settings.SelectedCourseID
	title := ""
	if c := s.idx.Course(courseID); c != nil {
		title = c.Title
	}
	return &RoundSummary{
		CourseTitle: title,
		Score:       s.score,
		Total:       len(s.questions),
		Percent:     s.ScorePercent(),
		BestScore:   s.bestScores[courseID],
		NewBest:     s.newBest,
		Outcomes:    s.outcomes,
		CourseStats: s.statsByCourse[courseID],
	}
}
