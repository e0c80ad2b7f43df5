package spacedrep

import (
	"math"
	"time"
)

// Saver persists the full ledger after a scheduling update. Implemented by
// the store layer; a nil Saver keeps updates in memory only.
type Saver interface {
	SavePerformance(records map[string]*Record) error
}

// Scheduler applies the SM-2 review update to ledger records.
type Scheduler struct {
	ledger    *Ledger
	examDates map[string]string
	saver     Saver
	now       func() time.Time
}

// NewScheduler creates a scheduler over the given ledger. examDates maps
// course keys to ISO yyyy-MM-dd exam dates and may be nil.
func NewScheduler(ledger *Ledger, examDates map[string]string, saver Saver) *Scheduler {
	return &Scheduler{
		ledger:    ledger,
		examDates: examDates,
		saver:     saver,
		now:       time.Now,
	}
}

// SetNow overrides the clock. Used by tests.
func (s *Scheduler) SetNow(now func() time.Time) {
	s.now = now
}

// Ledger returns the ledger the scheduler updates.
func (s *Scheduler) Ledger() *Ledger {
	return s.ledger
}

// Today returns the current effective calendar day.
func (s *Scheduler) Today() time.Time {
	return EffectiveToday(s.now())
}

// RecordOutcome appends the outcome to the question's history and recomputes
// ease, interval, repetition and next-review. The update is synchronous and
// persisted before returning; a failed write degrades to in-memory state.
func (s *Scheduler) RecordOutcome(questionID, courseKey string, outcome Outcome) *Record {
	rec := s.ledger.Record(questionID)
	today := s.Today()

	quality := 0
	if outcome == OutcomeCorrect {
		quality = 5
	}

	rec.History = append(rec.History, outcome)

	if quality >= 3 {
		rec.Repetition++
		switch rec.Repetition {
		case 1:
			rec.Interval = 1
		case 2:
			rec.Interval = 3
		default:
			next := int(math.Round(float64(rec.Interval) * rec.Ease))
			if next < 1 {
				next = 1
			}
			rec.Interval = next
		}
	} else {
		rec.Repetition = 0
		rec.Interval = 1
	}

	penalty := float64(5 - quality)
	rec.Ease = math.Max(MinEase, rec.Ease+(0.1-penalty*(0.08+penalty*0.02)))

	if days, ok := s.daysUntilExam(courseKey, today); ok && rec.Interval > days {
		rec.Interval = days
	}

	rec.NextReview = today.AddDate(0, 0, rec.Interval).Format(DateLayout)
	s.ledger.put(questionID, rec)

	if s.saver != nil {
		// A lost write is recoverable: the next successful save supersedes it.
		_ = s.saver.SavePerformance(s.ledger.Records())
	}
	return rec
}

// daysUntilExam returns the interval cap for a course with a configured exam
// date, never less than one day. Reviews are never scheduled past the exam.
func (s *Scheduler) daysUntilExam(courseKey string, today time.Time) (int, bool) {
	dateStr, ok := s.examDates[courseKey]
	if !ok {
		return 0, false
	}
	exam, err := time.ParseInLocation(DateLayout, dateStr, today.Location())
	if err != nil {
		return 0, false
	}
	days := int(math.Round(exam.Sub(today).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, true
}
