package content

import (
	"sort"
	"strings"
)

// Index is the immutable question ledger built once from ingested content:
// every question keyed by stable ID, plus the orderings derived from it.
type Index struct {
	courses     []*Course
	coursesByID map[string]*Course
	idByKey     map[string]string

	questions []*Question
	byID      map[string]*Question

	fileInfos []*FileInfo
	examDates map[string]string
}

// NewIndex builds an index over the given courses. Course order is preserved;
// all derived orderings are computed eagerly with stable sorts.
func NewIndex(courses []*Course, examDates map[string]string) *Index {
	idx := &Index{
		courses:     courses,
		coursesByID: make(map[string]*Course, len(courses)),
		idByKey:     make(map[string]string, len(courses)),
		byID:        make(map[string]*Question),
		examDates:   examDates,
	}
	if idx.examDates == nil {
		idx.examDates = map[string]string{}
	}

	for _, c := range courses {
		idx.coursesByID[c.ID] = c
		idx.idByKey[c.Key] = c.ID
		for _, q := range c.Questions {
			idx.questions = append(idx.questions, q)
			idx.byID[q.ID] = q
		}
	}
	idx.fileInfos = buildFileInfos(idx.questions)
	return idx
}

// Courses returns all courses, sorted by title at load time.
func (idx *Index) Courses() []*Course {
	return idx.courses
}

// Course returns the course with the given ID, or nil.
func (idx *Index) Course(id string) *Course {
	return idx.coursesByID[id]
}

// CourseIDForKey maps a course key (raw folder name) to its course ID.
func (idx *Index) CourseIDForKey(key string) (string, bool) {
	id, ok := idx.idByKey[key]
	return id, ok
}

// Questions returns every question in ingestion order: grouped by source file,
// by position within each file.
func (idx *Index) Questions() []*Question {
	return idx.questions
}

// Question resolves a stable question ID, or returns nil if the content no
// longer contains it.
func (idx *Index) Question(id string) *Question {
	return idx.byID[id]
}

// Contains reports whether every given ID still resolves in the index.
func (idx *Index) Contains(ids []string) bool {
	for _, id := range ids {
		if idx.byID[id] == nil {
			return false
		}
	}
	return true
}

// FileInfos returns one entry per source file, ordered by course title, then
// section, then file name (case-insensitive).
func (idx *Index) FileInfos() []*FileInfo {
	return idx.fileInfos
}

// QuestionsForFile returns the questions whose source path matches exactly.
func (idx *Index) QuestionsForFile(sourcePath string) []*Question {
	var out []*Question
	for _, q := range idx.questions {
		if q.SourcePath == sourcePath {
			out = append(out, q)
		}
	}
	return out
}

// QuestionsForCourseKey returns the questions belonging to a course key.
func (idx *Index) QuestionsForCourseKey(key string) []*Question {
	var out []*Question
	for _, q := range idx.questions {
		if q.CourseKey == key {
			out = append(out, q)
		}
	}
	return out
}

// QuestionsForTag returns the questions carrying the given tag.
func (idx *Index) QuestionsForTag(tag string) []*Question {
	var out []*Question
	for _, q := range idx.questions {
		if q.HasTag(tag) {
			out = append(out, q)
		}
	}
	return out
}

// TagNames returns the distinct tags across all questions, sorted
// case-insensitively.
func (idx *Index) TagNames() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, q := range idx.questions {
		for _, t := range q.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}

// ExamDate returns the ISO exam date for a course key, if one is configured.
func (idx *Index) ExamDate(courseKey string) (string, bool) {
	d, ok := idx.examDates[courseKey]
	return d, ok
}

// CourseTitleForKey returns the display title for a course key, falling back
// to the key itself.
func (idx *Index) CourseTitleForKey(key string) string {
	if id, ok := idx.idByKey[key]; ok {
		if c := idx.coursesByID[id]; c != nil {
			return c.Title
		}
	}
	return key
}

func buildFileInfos(questions []*Question) []*FileInfo {
	var order []string
	grouped := make(map[string][]*Question)
	for _, q := range questions {
		if _, seen := grouped[q.SourcePath]; !seen {
			order = append(order, q.SourcePath)
		}
		grouped[q.SourcePath] = append(grouped[q.SourcePath], q)
	}

	infos := make([]*FileInfo, 0, len(order))
	for _, path := range order {
		qs := grouped[path]
		first := qs[0]
		name := first.SourceName
		if name == "" {
			name = path
		}
		id := path
		if id == "" {
			id = name
		}
		infos = append(infos, &FileInfo{
			ID:            id,
			SourcePath:    path,
			FileName:      name,
			CourseKey:     first.CourseKey,
			CourseTitle:   first.Category,
			SectionName:   first.SectionName,
			QuestionCount: len(qs),
		})
	}

	sort.SliceStable(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if !strings.EqualFold(a.CourseTitle, b.CourseTitle) {
			return strings.ToLower(a.CourseTitle) < strings.ToLower(b.CourseTitle)
		}
		if !strings.EqualFold(a.SectionName, b.SectionName) {
			return strings.ToLower(a.SectionName) < strings.ToLower(b.SectionName)
		}
		return strings.ToLower(a.FileName) < strings.ToLower(b.FileName)
	})
	return infos
}
