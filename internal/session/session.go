package session

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quizprog/quizprog/internal/content"
	"github.com/quizprog/quizprog/internal/quiz"
	"github.com/quizprog/quizprog/internal/spacedrep"
	"github.com/quizprog/quizprog/internal/store"
)

var (
	// ErrNoQuestions means the requested scope and filter yield an empty pool.
	// The caller's prior round, if any, is left untouched.
	ErrNoQuestions = errors.New("no questions for this selection")

	// ErrStaleSnapshot means the saved round references content that no
	// longer exists; the snapshot has been discarded.
	ErrStaleSnapshot = errors.New("saved round references missing questions")

	// ErrNoSnapshot means there is no resumable round.
	ErrNoSnapshot = errors.New("no saved round to resume")

	// ErrNotAnswering is returned for operations only valid while a question
	// is open and unsubmitted.
	ErrNotAnswering = errors.New("no question is awaiting an answer")

	// ErrNoSelection is returned by Submit when no option is selected.
	ErrNoSelection = errors.New("no option selected")

	// ErrNotSubmitted is returned by Advance before the current question is
	// submitted or skipped.
	ErrNotSubmitted = errors.New("current question not yet submitted")

	// ErrInvalidOption is returned for a selection index outside the current
	// question's options.
	ErrInvalidOption = errors.New("option index out of range")
)

// noSelection marks a skipped question in the outcome log.
const noSelection = -1

// Outcome is one answered-or-skipped entry of the round's log.
type Outcome struct {
	Question      *content.Question
	SelectedIndex int // noSelection for a skip
}

// IsSkip reports whether the entry records a skip.
func (o Outcome) IsSkip() bool {
	return o.SelectedIndex == noSelection
}

// IsCorrect reports whether the chosen option was the correct one.
func (o Outcome) IsCorrect() bool {
	return !o.IsSkip() && o.SelectedIndex == o.Question.CorrectIndex
}

// Session owns one user's quiz state: the live round, the performance ledger
// and the persisted aggregates. All operations are synchronous; persistence
// failures degrade to in-memory state and are never surfaced mid-round.
type Session struct {
	idx       *content.Index
	store     *store.Store
	ledger    *spacedrep.Ledger
	scheduler *spacedrep.Scheduler
	now       func() time.Time

	settings      Settings
	bestScores    map[string]int
	statsByCourse map[string]CourseStats
	wrongIDs      map[string]map[string]bool
	snapshot      *progressSnapshot

	roundID   string
	questions []*content.Question
	current   int
	score     int
	selected  int
	submitted bool
	outcomes  []Outcome
	started   bool
	finished  bool
	newBest   bool

	activeScope quiz.Scope
	activeMode  quiz.FilterMode
}

// New builds a session over the index, loading all persisted state from st.
// st may be nil, in which case everything stays in memory.
func New(idx *content.Index, st *store.Store) *Session {
	s := &Session{
		idx:           idx,
		store:         st,
		now:           time.Now,
		bestScores:    make(map[string]int),
		statsByCourse: make(map[string]CourseStats),
		wrongIDs:      make(map[string]map[string]bool),
		selected:      noSelection,
		activeScope:   quiz.RepositoryScope(),
		activeMode:    quiz.ModeAll,
	}

	var records map[string]*spacedrep.Record
	var saver spacedrep.Saver
	if st != nil {
		repo := store.NewPerformanceRepo(st)
		records = repo.Load()
		saver = repo
	}
	examDates := make(map[string]string)
	for _, c := range idx.Courses() {
		if d, ok := idx.ExamDate(c.Key); ok {
			examDates[c.Key] = d
		}
	}
	s.ledger = spacedrep.NewLedger(records)
	s.scheduler = spacedrep.NewScheduler(s.ledger, examDates, saver)

	s.loadPersisted()
	return s
}

func (s *Session) loadPersisted() {
	if s.store != nil {
		_, _ = s.store.GetJSON(store.KeyBestScores, &s.bestScores)
		_, _ = s.store.GetJSON(store.KeyCourseStats, &s.statsByCourse)

		wrongArrays := make(map[string][]string)
		_, _ = s.store.GetJSON(store.KeyWrongIDs, &wrongArrays)
		for courseID, ids := range wrongArrays {
			set := make(map[string]bool, len(ids))
			for _, id := range ids {
				set[id] = true
			}
			s.wrongIDs[courseID] = set
		}

		var settings Settings
		if ok, _ := s.store.GetJSON(store.KeySettings, &settings); ok {
			s.settings = settings
		}

		var snap progressSnapshot
		if ok, _ := s.store.GetJSON(store.KeyProgress, &snap); ok {
			if snap.canRestore(s.idx) {
				s.snapshot = &snap
			} else {
				_ = s.store.Delete(store.KeyProgress)
			}
		}
	}

	if s.idx.Course(s.settings.SelectedCourseID) == nil {
		if courses := s.idx.Courses(); len(courses) > 0 {
			s.settings.SelectedCourseID = courses[0].ID
			s.settings.ShuffleQuestions = true
		}
	}
	if s.settings.QuestionLimit < 0 {
		s.settings.QuestionLimit = 0
	}
	s.persistSettings()
}

// Ledger returns the performance ledger.
func (s *Session) Ledger() *spacedrep.Ledger {
	return s.ledger
}

// Index returns the question index the session runs over.
func (s *Session) Index() *content.Index {
	return s.idx
}

// Today returns the effective calendar day used for due checks.
func (s *Session) Today() time.Time {
	return spacedrep.EffectiveToday(s.now())
}

// SetNow overrides the clock. Used by tests.
func (s *Session) SetNow(now func() time.Time) {
	s.now = now
	s.scheduler.SetNow(now)
}

// Settings returns the current persisted preferences.
func (s *Session) Settings() Settings {
	return s.settings
}

// SetSelectedCourse changes the course aggregates are folded into.
func (s *Session) SetSelectedCourse(courseID string) {
	if s.idx.Course(courseID) == nil || courseID == s.settings.SelectedCourseID {
		return
	}
	s.settings.SelectedCourseID = courseID
	s.persistSettings()
}

// SetQuestionLimit sets the per-round cap; zero means unbounded.
func (s *Session) SetQuestionLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	s.settings.QuestionLimit = limit
	s.persistSettings()
}

// SetShuffle toggles random question order for new rounds.
func (s *Session) SetShuffle(on bool) {
	s.settings.ShuffleQuestions = on
	s.persistSettings()
}

// SetWrongAnswersOnly toggles the legacy wrong-only preference. When set, new
// rounds force the wrong filter regardless of the requested mode.
func (s *Session) SetWrongAnswersOnly(on bool) {
	s.settings.WrongAnswersOnly = on
	s.persistSettings()
}

// AvailableCount returns the pool size a round with the given scope and mode
// would start from.
func (s *Session) AvailableCount(scope quiz.Scope, mode quiz.FilterMode) int {
	return len(quiz.BuildPool(s.idx, s.ledger, scope, mode, s.Today()))
}

// StartRound builds the pool for scope and mode, optionally shuffles it,
// truncates to limit (0 = no cap) and begins a fresh round. On an empty pool
// it returns ErrNoQuestions without touching any in-progress round.
func (s *Session) StartRound(scope quiz.Scope, mode quiz.FilterMode, limit int, shuffle bool) error {
	effective := mode
	if s.settings.WrongAnswersOnly {
		effective = quiz.ModeWrong
	}

	pool := quiz.BuildPool(s.idx, s.ledger, scope, effective, s.Today())
	if len(pool) == 0 {
		return ErrNoQuestions
	}

	round := make([]*content.Question, len(pool))
	copy(round, pool)
	if shuffle {
		rand.Shuffle(len(round), func(i, j int) {
			round[i], round[j] = round[j], round[i]
		})
	}
	if limit > 0 && limit < len(round) {
		round = round[:limit]
	}

	s.activeScope = scope
	s.activeMode = effective
	s.roundID = uuid.New().String()
	s.questions = round
	s.current = 0
	s.score = 0
	s.selected = noSelection
	s.submitted = false
	s.outcomes = nil
	s.started = true
	s.finished = false
	s.newBest = false

	s.saveSnapshot()
	return nil
}

// Resumable reports whether a saved round can be resumed.
func (s *Session) Resumable() bool {
	return s.snapshot != nil
}

// Resume restores the saved round exactly. If the snapshot references
// questions missing from the current index it is discarded whole and
// ErrStaleSnapshot is returned; the caller should start a fresh round.
func (s *Session) Resume() error {
	if s.snapshot == nil {
		return ErrNoSnapshot
	}
	snap := s.snapshot
	if !snap.canRestore(s.idx) {
		s.discardSnapshot()
		return ErrStaleSnapshot
	}

	s.settings = snap.Settings
	if s.settings.QuestionLimit < 0 {
		s.settings.QuestionLimit = 0
	}
	s.persistSettings()

	questions := make([]*content.Question, len(snap.QuestionIDs))
	for i, id := range snap.QuestionIDs {
		questions[i] = s.idx.Question(id)
	}

	s.activeScope = snap.Scope
	s.activeMode = snap.Mode
	s.roundID = snap.RoundID
	if s.roundID == "" {
		s.roundID = uuid.New().String()
	}
	s.questions = questions
	s.current = clamp(snap.CurrentIndex, 0, len(questions)-1)
	s.score = clamp(snap.Score, 0, len(questions))
	s.submitted = snap.DidSubmit

	// An out-of-range restored selection degrades to "no selection".
	s.selected = noSelection
	if snap.SelectedIndex != nil {
		if i := *snap.SelectedIndex; i >= 0 && i < len(s.questions[s.current].Options) {
			s.selected = i
		}
	}

	s.outcomes = make([]Outcome, 0, len(snap.Outcomes))
	for _, o := range snap.Outcomes {
		q := s.idx.Question(o.QuestionID)
		sel := o.SelectedIndex
		if sel < 0 || sel >= len(q.Options) {
			sel = noSelection
		}
		s.outcomes = append(s.outcomes, Outcome{Question: q, SelectedIndex: sel})
	}

	s.started = true
	s.finished = false
	s.newBest = false
	s.saveSnapshot()
	return nil
}

// SelectOption stores a tentative choice. Valid only while answering; the
// ledger is untouched.
func (s *Session) SelectOption(index int) error {
	if !s.answering() {
		return ErrNotAnswering
	}
	if index < 0 || index >= len(s.CurrentQuestion().Options) {
		return ErrInvalidOption
	}
	s.selected = index
	return nil
}

// Submit grades the selected option, logs the outcome, updates the wrong-set
// index and the review schedule, and persists a new snapshot.
func (s *Session) Submit() error {
	if !s.answering() {
		return ErrNotAnswering
	}
	if s.selected == noSelection {
		return ErrNoSelection
	}

	q := s.CurrentQuestion()
	s.submitted = true
	outcome := Outcome{Question: q, SelectedIndex: s.selected}
	s.outcomes = append(s.outcomes, outcome)

	result := spacedrep.OutcomeWrong
	if outcome.IsCorrect() {
		s.score++
		result = spacedrep.OutcomeCorrect
	}

	s.updateWrongSet(outcome)
	s.scheduler.RecordOutcome(q.ID, q.CourseKey, result)
	s.saveSnapshot()
	return nil
}

// Skip records a skipped question: no selection, no score change, a skipped
// outcome in both the round log and the question's history.
func (s *Session) Skip() error {
	if !s.answering() {
		return ErrNotAnswering
	}

	q := s.CurrentQuestion()
	s.submitted = true
	s.selected = noSelection
	s.outcomes = append(s.outcomes, Outcome{Question: q, SelectedIndex: noSelection})

	s.scheduler.RecordOutcome(q.ID, q.CourseKey, spacedrep.OutcomeSkipped)
	s.saveSnapshot()
	return nil
}

// Advance moves past a submitted question. When questions remain it returns
// false and opens the next one; on the last question it finishes the round,
// folds the results into the course aggregate, updates the best score and
// clears the saved snapshot. A finished round is not resumable.
func (s *Session) Advance() (finished bool, err error) {
	if !s.started || s.finished {
		return false, ErrNotAnswering
	}
	if !s.submitted {
		return false, ErrNotSubmitted
	}

	if s.current+1 < len(s.questions) {
		s.current++
		s.selected = noSelection
		s.submitted = false
		s.saveSnapshot()
		return false, nil
	}

	s.finished = true

	courseID := s.settings.SelectedCourseID
	stats := s.statsByCourse[courseID]
	stats.Plays++
	stats.Answered += len(s.questions)
	stats.Correct += s.score
	s.statsByCourse[courseID] = stats
	s.saveCourseStats()

	if s.score > s.bestScores[courseID] {
		s.bestScores[courseID] = s.score
		s.newBest = true
		s.saveBestScores()
	}

	s.discardSnapshot()
	return true, nil
}

// ExitAndSave persists the current round for later resume and backgrounds it
// without altering round content.
func (s *Session) ExitAndSave() {
	if !s.started || s.finished {
		return
	}
	s.saveSnapshot()
	s.started = false
}

// ResetWrongHistory clears the course's legacy wrong-question marker set.
// Performance records, histories and schedules are untouched.
func (s *Session) ResetWrongHistory(courseID string) {
	s.wrongIDs[courseID] = make(map[string]bool)
	s.saveWrongIDs()
}

// WrongQuestionIDs returns the course's wrong-marked question IDs, sorted.
func (s *Session) WrongQuestionIDs(courseID string) []string {
	set := s.wrongIDs[courseID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Observable round state.

// Started reports whether a round is in the foreground.
func (s *Session) Started() bool { return s.started }

// Finished reports whether the round has completed.
func (s *Session) Finished() bool { return s.finished }

// CurrentQuestion returns the open question, or nil outside a round.
func (s *Session) CurrentQuestion() *content.Question {
	if len(s.questions) == 0 || s.current >= len(s.questions) {
		return nil
	}
	return s.questions[s.current]
}

// CurrentIndex returns the zero-based position within the round.
func (s *Session) CurrentIndex() int { return s.current }

// TotalQuestions returns the round size.
func (s *Session) TotalQuestions() int { return len(s.questions) }

// Score returns the running correct count.
func (s *Session) Score() int { return s.score }

// ScorePercent returns the score as a rounded percentage of the round size.
func (s *Session) ScorePercent() int {
	if len(s.questions) == 0 {
		return 0
	}
	return int(float64(s.score)/float64(len(s.questions))*100.0 + 0.5)
}

// Submitted reports whether the current question has been submitted/skipped.
func (s *Session) Submitted() bool { return s.submitted }

// SelectedOption returns the tentative choice and whether one exists.
func (s *Session) SelectedOption() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

// Outcomes returns the round's outcome log.
func (s *Session) Outcomes() []Outcome { return s.outcomes }

// RoundID returns the identifier of the in-flight round.
func (s *Session) RoundID() string { return s.roundID }

// ActiveScope returns the scope the round was built from.
func (s *Session) ActiveScope() quiz.Scope { return s.activeScope }

// ActiveMode returns the filter mode the round was built from.
func (s *Session) ActiveMode() quiz.FilterMode { return s.activeMode }

// ScopeLabel returns the display label of the active scope.
func (s *Session) ScopeLabel() string { return s.activeScope.Label(s.idx) }

// BestScore returns the best score recorded for a course.
func (s *Session) BestScore(courseID string) int { return s.bestScores[courseID] }

// CourseStatsFor returns the accumulated aggregate for a course.
func (s *Session) CourseStatsFor(courseID string) CourseStats {
	return s.statsByCourse[courseID]
}

func (s *Session) answering() bool {
	return s.started && !s.finished && !s.submitted && s.CurrentQuestion() != nil
}

func (s *Session) updateWrongSet(outcome Outcome) {
	courseID := s.settings.SelectedCourseID
	if id, ok := s.idx.CourseIDForKey(outcome.Question.CourseKey); ok {
		courseID = id
	}
	set := s.wrongIDs[courseID]
	if set == nil {
		set = make(map[string]bool)
		s.wrongIDs[courseID] = set
	}
	if outcome.IsCorrect() {
		delete(set, outcome.Question.ID)
	} else {
		set[outcome.Question.ID] = true
	}
	s.saveWrongIDs()
}

// Persistence. Every write is synchronous but non-fatal: a failure leaves the
// in-memory state authoritative and the next successful write supersedes it.

func (s *Session) saveSnapshot() {
	if !s.started || s.finished || len(s.questions) == 0 {
		return
	}

	snap := &progressSnapshot{
		RoundID:      s.roundID,
		QuestionIDs:  make([]string, len(s.questions)),
		CurrentIndex: s.current,
		Score:        s.score,
		DidSubmit:    s.submitted,
		Outcomes:     make([]outcomeSnapshot, len(s.outcomes)),
		Scope:        s.activeScope,
		Mode:         s.activeMode,
		Settings:     s.settings,
	}
	for i, q := range s.questions {
		snap.QuestionIDs[i] = q.ID
	}
	if s.selected != noSelection {
		sel := s.selected
		snap.SelectedIndex = &sel
	}
	for i, o := range s.outcomes {
		snap.Outcomes[i] = outcomeSnapshot{QuestionID: o.Question.ID, SelectedIndex: o.SelectedIndex}
	}

	s.snapshot = snap
	if s.store != nil {
		_ = s.store.PutJSON(store.KeyProgress, snap)
	}
}

func (s *Session) discardSnapshot() {
	s.snapshot = nil
	if s.store != nil {
		_ = s.store.Delete(store.KeyProgress)
	}
}

func (s *Session) persistSettings() {
	if s.store != nil {
		_ = s.store.PutJSON(store.KeySettings, s.settings)
	}
}

func (s *Session) saveBestScores() {
	if s.store != nil {
		_ = s.store.PutJSON(store.KeyBestScores, s.bestScores)
	}
}

func (s *Session) saveCourseStats() {
	if s.store != nil {
		_ = s.store.PutJSON(store.KeyCourseStats, s.statsByCourse)
	}
}

func (s *Session) saveWrongIDs() {
	if s.store == nil {
		return
	}
	serializable := make(map[string][]string, len(s.wrongIDs))
	for courseID := range s.wrongIDs {
		serializable[courseID] = s.WrongQuestionIDs(courseID)
	}
	_ = s.store.PutJSON(store.KeyWrongIDs, serializable)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
