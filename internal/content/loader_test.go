package content

import (
	"os"
	"path/filepath"
	"testing"
)

const validQuizJSON = `{
  "file_name": "Capitals",
  "questions": [
    {
      "question": "Capital of France?",
      "answers": [
        {"text": "Paris", "correct": true},
        {"text": "Lyon", "correct": false}
      ],
      "explanation": "Paris has been the capital since 987.",
      "tags": ["europe"]
    },
    {
      "question": "Capital of Japan?",
      "answers": [
        {"text": "Kyoto", "correct": false},
        {"text": "Tokyo", "correct": true}
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, rel, data string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "03_geography/01_europe/capitals.json", validQuizJSON)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	courses := idx.Courses()
	if len(courses) != 1 {
		t.Fatalf("got %d courses, want 1", len(courses))
	}

	c := courses[0]
	if c.Title != "geography" {
		t.Errorf("course title = %q, want %q", c.Title, "geography")
	}
	if c.Key != "03_geography" {
		t.Errorf("course key = %q, want %q", c.Key, "03_geography")
	}
	if len(c.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(c.Questions))
	}

	q := c.Questions[0]
	if q.Prompt != "Capital of France?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if q.CorrectIndex != 0 {
		t.Errorf("correctIndex = %d, want 0", q.CorrectIndex)
	}
	if q.SectionName != "europe" {
		t.Errorf("section = %q, want %q", q.SectionName, "europe")
	}
	if !q.HasTag("europe") {
		t.Error("expected tag 'europe'")
	}

	// Missing explanation gets the default.
	if c.Questions[1].Explanation != "No explanation provided." {
		t.Errorf("explanation = %q", c.Questions[1].Explanation)
	}
}

func TestLoadStableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/capitals.json", validQuizJSON)

	first, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	a := first.Questions()
	b := second.Questions()
	if len(a) != len(b) {
		t.Fatalf("question counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Errorf("question %d: ID changed across loads", i)
		}
	}
}

func TestLoadIDChangesWithContent(t *testing.T) {
	dir1 := t.TempDir()
	writeFile(t, dir1, "geo/capitals.json", validQuizJSON)

	dir2 := t.TempDir()
	writeFile(t, dir2, "geo/capitals.json", `{
  "questions": [
    {
      "question": "Capital of France? (edited)",
      "answers": [
        {"text": "Paris", "correct": true},
        {"text": "Lyon", "correct": false}
      ]
    }
  ]
}`)

	first, _ := Load(dir1)
	second, _ := Load(dir2)

	if first.Questions()[0].ID == second.Questions()[0].ID {
		t.Error("expected different IDs for different prompts")
	}
}

func TestLoadSkipsDisabledAndHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/capitals.json", validQuizJSON)
	writeFile(t, dir, "geo/.hidden.json", validQuizJSON)
	writeFile(t, dir, "geo/off.json", `{"disabled": true, "questions": [
		{"question": "x?", "answers": [{"text": "a", "correct": true}, {"text": "b"}]}
	]}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(idx.Questions()); got != 2 {
		t.Errorf("got %d questions, want 2", got)
	}
}

func TestLoadSkipsFilesFailingSchema(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/capitals.json", validQuizJSON)
	writeFile(t, dir, "geo/bad.json", `{"questions": "not an array"}`)
	writeFile(t, dir, "geo/broken.json", `{"questions": [`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(idx.Questions()); got != 2 {
		t.Errorf("got %d questions, want 2", got)
	}
}

func TestLoadDropsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/mixed.json", `{
  "questions": [
    {"question": "ok?", "answers": [{"text": "a", "correct": true}, {"text": "b"}]},
    {"question": "", "answers": [{"text": "a", "correct": true}, {"text": "b"}]},
    {"question": "one answer?", "answers": [{"text": "a", "correct": true}]},
    {"question": "no correct?", "answers": [{"text": "a"}, {"text": "b"}]},
    {"question": "empty option?", "answers": [{"text": "a", "correct": true}, {"text": "  "}]}
  ]
}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	questions := idx.Questions()
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].Prompt != "ok?" {
		t.Errorf("kept wrong entry: %q", questions[0].Prompt)
	}
}

func TestLoadFirstCorrectAnswerWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/multi.json", `{
  "questions": [
    {"question": "pick?", "answers": [
      {"text": "a"},
      {"text": "b", "correct": true},
      {"text": "c", "correct": true}
    ]}
  ]
}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.Questions()[0].CorrectIndex; got != 1 {
		t.Errorf("correctIndex = %d, want 1", got)
	}
}

func TestLoadEmptyDirServesSampleCourse(t *testing.T) {
	idx, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	courses := idx.Courses()
	if len(courses) != 1 || courses[0].Key != SampleCourseKey {
		t.Fatalf("expected the sample course, got %+v", courses)
	}
	if len(courses[0].Questions) == 0 {
		t.Error("sample course has no questions")
	}
}

func TestLoadMissingDirServesSampleCourse(t *testing.T) {
	idx, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatal(err)
	}
	if idx.Courses()[0].Key != SampleCourseKey {
		t.Error("expected the sample course for a missing directory")
	}
}

func TestLoadExamDates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/capitals.json", validQuizJSON)
	writeFile(t, dir, "exam_dates.json", `{"geo": "2026-06-01"}`)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	date, ok := idx.ExamDate("geo")
	if !ok || date != "2026-06-01" {
		t.Errorf("exam date = %q, %v", date, ok)
	}
}

func TestPrettyTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"03_basic_concepts", "basic concepts"},
		{"1-introduction", "introduction"},
		{"plain", "plain"},
		{"12  spaced", "spaced"},
	}
	for _, tt := range tests {
		if got := prettyTitle(tt.in); got != tt.want {
			t.Errorf("prettyTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCourseIDStable(t *testing.T) {
	if CourseID("geo") != CourseID("geo") {
		t.Error("CourseID is not deterministic")
	}
	if CourseID("geo") == CourseID("geo2") {
		t.Error("CourseID collides for different names")
	}
}

func TestIndexContains(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "geo/capitals.json", validQuizJSON)

	idx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	ids := []string{idx.Questions()[0].ID, idx.Questions()[1].ID}
	if !idx.Contains(ids) {
		t.Error("Contains = false for known IDs")
	}
	if idx.Contains(append(ids, "missing")) {
		t.Error("Contains = true with an unknown ID")
	}
}
