package content

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Question is a single multiple-choice question. Immutable once built.
type Question struct {
	ID           string
	Category     string
	Prompt       string
	Options      []string
	CorrectIndex int
	Explanation  string
	CourseKey    string
	SectionName  string
	SourcePath   string
	SourceName   string
	Tags         []string
}

// HasTag reports whether the question carries the given tag.
func (q *Question) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Course groups the questions loaded for one course, in file order.
type Course struct {
	ID        string
	Key       string
	Title     string
	Questions []*Question
}

// FileInfo describes one source quiz file for the library views.
type FileInfo struct {
	ID            string
	SourcePath    string
	FileName      string
	CourseKey     string
	CourseTitle   string
	SectionName   string
	QuestionCount int
}

// stableHash returns the hex SHA-256 of text. Question and course IDs are
// derived from it so that performance history keyed on them survives
// re-ingestion of unchanged content.
func stableHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CourseID derives the stable course identifier from the raw course name.
func CourseID(rawName string) string {
	return stableHash("course|" + rawName)
}

// questionID derives the stable question identifier from the course ID and the
// question's position and normalized content within its source file. Any change
// to the fingerprint scheme invalidates all stored performance history.
func questionID(courseID, relativePath string, ordinal int, prompt string, options []string, correctIndex int) string {
	fingerprint := strings.Join([]string{
		relativePath,
		strconv.Itoa(ordinal),
		prompt,
		strings.Join(options, "||"),
		strconv.Itoa(correctIndex),
	}, "|")
	return stableHash(courseID + "|" + fingerprint)
}
