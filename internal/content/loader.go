package content

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const examDatesFileName = "exam_dates.json"

// DefaultSectionName is used for files that sit directly under a course folder.
const DefaultSectionName = "(No subfolder)"

type quizFile struct {
	Disabled  bool        `json:"disabled"`
	FileName  string      `json:"file_name"`
	Questions []quizEntry `json:"questions"`
}

type quizEntry struct {
	Question    string       `json:"question"`
	Answers     []quizAnswer `json:"answers"`
	Explanation string       `json:"explanation"`
	Tags        []string     `json:"tags"`
}

type quizAnswer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// DefaultDataDir resolves the quiz data directory: QUIZPROG_DATA env var if
// set, otherwise ./quiz_data.
func DefaultDataDir() string {
	if p := os.Getenv("QUIZPROG_DATA"); p != "" {
		return p
	}
	return "quiz_data"
}

// Load walks dataDir, parses every quiz file and returns the built index.
// Files that are hidden, disabled, malformed, or fail schema validation are
// skipped. An empty or missing directory yields an index over the sample deck.
func Load(dataDir string) (*Index, error) {
	paths, err := discoverQuizFiles(dataDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("discover quiz files: %w", err)
	}

	grouped := make(map[string][]*Question)
	titles := make(map[string]string)
	var courseOrder []string

	for _, path := range paths {
		relPath, err := filepath.Rel(dataDir, path)
		if err != nil {
			continue
		}
		relPath = filepath.ToSlash(relPath)

		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := validateQuizFile(raw); err != nil {
			continue
		}
		var file quizFile
		if err := json.Unmarshal(raw, &file); err != nil || file.Disabled {
			continue
		}

		questions := buildQuestions(&file, relPath)
		if len(questions) == 0 {
			continue
		}

		courseID := CourseID(questions[0].CourseKey)
		if _, seen := grouped[courseID]; !seen {
			courseOrder = append(courseOrder, courseID)
		}
		grouped[courseID] = append(grouped[courseID], questions...)
		titles[courseID] = questions[0].Category
	}

	courses := make([]*Course, 0, len(courseOrder))
	for _, id := range courseOrder {
		qs := grouped[id]
		courses = append(courses, &Course{
			ID:        id,
			Key:       qs[0].CourseKey,
			Title:     titles[id],
			Questions: qs,
		})
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return strings.ToLower(courses[i].Title) < strings.ToLower(courses[j].Title)
	})

	if len(courses) == 0 {
		courses = []*Course{SampleCourse()}
	}

	return NewIndex(courses, loadExamDates(dataDir)), nil
}

// discoverQuizFiles returns the quiz files under dataDir sorted by path,
// excluding dotfiles and the exam dates file.
func discoverQuizFiles(dataDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != dataDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || name == examDatesFileName {
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// buildQuestions converts one parsed quiz file into validated questions.
// Entries with an empty prompt, fewer than two answers, no correct answer,
// or any empty option text are dropped.
func buildQuestions(file *quizFile, relPath string) []*Question {
	parts := strings.Split(relPath, "/")
	baseName := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))

	fileTitle := strings.TrimSpace(file.FileName)
	sourceName := fileTitle
	if sourceName == "" {
		sourceName = filepath.Base(relPath)
	}

	var rawCourseName string
	switch {
	case len(parts) > 1:
		rawCourseName = parts[0]
	case fileTitle != "":
		rawCourseName = fileTitle
	default:
		rawCourseName = baseName
	}

	sectionName := DefaultSectionName
	if len(parts) > 2 {
		sectionName = prettyTitle(parts[1])
	}

	courseTitle := normalizedCourseTitle(rawCourseName)
	courseID := CourseID(rawCourseName)

	var questions []*Question
	for i, entry := range file.Questions {
		prompt := strings.TrimSpace(entry.Question)
		if prompt == "" || len(entry.Answers) < 2 {
			continue
		}

		correctIndex := -1
		options := make([]string, 0, len(entry.Answers))
		valid := true
		for j, ans := range entry.Answers {
			text := strings.TrimSpace(ans.Text)
			if text == "" {
				valid = false
				break
			}
			if ans.Correct && correctIndex < 0 {
				correctIndex = j
			}
			options = append(options, text)
		}
		if !valid || correctIndex < 0 {
			continue
		}

		explanation := strings.TrimSpace(entry.Explanation)
		if explanation == "" {
			explanation = "No explanation provided."
		}

		var tags []string
		for _, t := range entry.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}

		questions = append(questions, &Question{
			ID:           questionID(courseID, relPath, i, prompt, options, correctIndex),
			Category:     courseTitle,
			Prompt:       prompt,
			Options:      options,
			CorrectIndex: correctIndex,
			Explanation:  explanation,
			CourseKey:    rawCourseName,
			SectionName:  sectionName,
			SourcePath:   relPath,
			SourceName:   sourceName,
			Tags:         tags,
		})
	}
	return questions
}

// loadExamDates reads the optional exam_dates.json mapping course key to an
// ISO yyyy-MM-dd date. Missing or malformed files yield an empty map.
func loadExamDates(dataDir string) map[string]string {
	raw, err := os.ReadFile(filepath.Join(dataDir, examDatesFileName))
	if err != nil {
		return map[string]string{}
	}
	var dates map[string]string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return map[string]string{}
	}
	return dates
}

var leadingOrdinal = regexp.MustCompile(`^\d+[_\-\s]*`)

// prettyTitle strips a leading numeric ordering prefix ("03_", "1-") and
// turns underscores into spaces for display.
func prettyTitle(rawName string) string {
	s := leadingOrdinal.ReplaceAllString(rawName, "")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.TrimSpace(s)
}

func normalizedCourseTitle(rawName string) string {
	trimmed := strings.TrimSpace(rawName)
	base := strings.TrimSuffix(filepath.Base(trimmed), filepath.Ext(trimmed))
	if base == "" {
		base = trimmed
	}
	return prettyTitle(base)
}
