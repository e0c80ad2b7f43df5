package session

// Settings are the persisted round preferences.
type Settings struct {
	SelectedCourseID string `json:"selectedCourseID"`
	QuestionLimit    int    `json:"questionLimit"`
	ShuffleQuestions bool   `json:"shuffleQuestions"`
	WrongAnswersOnly bool   `json:"wrongAnswersOnly"`
}

// CourseStats accumulates per-course round results. Updated only when a
// round finishes, never mid-round.
type CourseStats struct {
	Plays    int `json:"plays"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

// AccuracyPercent returns the lifetime accuracy as a rounded percentage.
func (s CourseStats) AccuracyPercent() int {
	if s.Answered == 0 {
		return 0
	}
	return int(float64(s.Correct)/float64(s.Answered)*100.0 + 0.5)
}
