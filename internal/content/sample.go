package content

// SampleCourseKey is the course key of the built-in deck.
const SampleCourseKey = "sample-course"

// SampleCourse returns the built-in deck used when no quiz files are found,
// so every screen stays usable on a fresh install.
func SampleCourse() *Course {
	questions := []*Question{
		{
			ID:       "sample-1",
			Category: "Sample Course",
			Prompt:   "Which data structure gives O(1) average lookup by key?",
			Options: []string{
				"Hash table",
				"Linked list",
				"Binary heap",
				"Sorted array",
			},
			CorrectIndex: 0,
			Explanation:  "Hash tables map keys to buckets, giving constant-time lookups on average.",
		},
		{
			ID:           "sample-2",
			Category:     "Sample Course",
			Prompt:       "Which HTTP status code means a resource was not found?",
			Options:      []string{"200", "301", "404", "500"},
			CorrectIndex: 2,
			Explanation:  "Status code 404 is returned when the requested resource cannot be found.",
		},
		{
			ID:           "sample-3",
			Category:     "Sample Course",
			Prompt:       "What is the time complexity of binary search on a sorted array?",
			Options:      []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
			CorrectIndex: 1,
			Explanation:  "Binary search halves the search interval each step, giving logarithmic complexity.",
		},
		{
			ID:           "sample-4",
			Category:     "Sample Course",
			Prompt:       "Which SQL clause filters rows before grouping?",
			Options:      []string{"HAVING", "ORDER BY", "WHERE", "LIMIT"},
			CorrectIndex: 2,
			Explanation:  "WHERE filters individual rows before aggregation, while HAVING filters grouped results.",
		},
		{
			ID:           "sample-5",
			Category:     "Sample Course",
			Prompt:       "In MVC, which layer contains UI rendering logic?",
			Options:      []string{"Model", "Controller", "View", "Router"},
			CorrectIndex: 2,
			Explanation:  "The View layer is responsible for presenting data and rendering UI.",
		},
	}
	for _, q := range questions {
		q.CourseKey = SampleCourseKey
		q.SectionName = DefaultSectionName
		q.SourceName = "Sample Quiz"
	}
	return &Course{
		ID:        SampleCourseKey,
		Key:       SampleCourseKey,
		Title:     "Sample Course",
		Questions: questions,
	}
}
