package spacedrep

import "time"

// Outcome is one recorded attempt result.
type Outcome string

const (
	OutcomeCorrect Outcome = "correct"
	OutcomeWrong   Outcome = "wrong"
	OutcomeSkipped Outcome = "skipped"
)

// DateLayout is the calendar-day format used for next-review dates.
const DateLayout = "2006-01-02"

// InitialEase is the ease factor assigned before any attempt.
const InitialEase = 2.5

// MinEase is the floor the ease factor never drops below.
const MinEase = 1.3

// Record holds the attempt history and review schedule for one question.
type Record struct {
	History    []Outcome `json:"history"`
	Ease       float64   `json:"ease"`
	Interval   int       `json:"interval"`
	Repetition int       `json:"repetition"`
	NextReview string    `json:"nextReview,omitempty"`
}

// NewRecord returns the default record for a question with no attempts.
func NewRecord() *Record {
	return &Record{Ease: InitialEase}
}

// LastOutcome returns the most recent outcome, or false for empty history.
func (r *Record) LastOutcome() (Outcome, bool) {
	if len(r.History) == 0 {
		return "", false
	}
	return r.History[len(r.History)-1], true
}

// WrongCount returns the lifetime number of wrong outcomes.
func (r *Record) WrongCount() int {
	n := 0
	for _, o := range r.History {
		if o == OutcomeWrong {
			n++
		}
	}
	return n
}

// IsDue reports whether the question is due on the given effective day.
// A record with no parseable next-review date is always due.
func (r *Record) IsDue(today time.Time) bool {
	if r.NextReview == "" {
		return true
	}
	next, err := time.ParseInLocation(DateLayout, r.NextReview, today.Location())
	if err != nil {
		return true
	}
	return !next.After(today)
}

// Ledger is the mutable per-question performance state, keyed by stable
// question ID. Records are created lazily on first attempt; lookups for
// unknown questions return a fresh default without inserting it.
type Ledger struct {
	records map[string]*Record
}

// NewLedger builds a ledger from previously persisted records. A nil map
// yields an empty ledger.
func NewLedger(records map[string]*Record) *Ledger {
	if records == nil {
		records = make(map[string]*Record)
	}
	for _, r := range records {
		if r.Ease < MinEase {
			r.Ease = InitialEase
		}
	}
	return &Ledger{records: records}
}

// Record returns the stored record for a question ID, or a default record if
// none exists. The default is not inserted; repeated lookups are side-effect
// free.
func (l *Ledger) Record(questionID string) *Record {
	if r, ok := l.records[questionID]; ok {
		return r
	}
	return NewRecord()
}

// put stores an updated record. Only the Scheduler writes to the ledger.
func (l *Ledger) put(questionID string, r *Record) {
	l.records[questionID] = r
}

// Records exposes the underlying records for persistence.
func (l *Ledger) Records() map[string]*Record {
	return l.records
}
