package store

// Persisted blob keys, one per logical record.
const (
	KeySettings    = "settings"
	KeyBestScores  = "bestScoresByCourse"
	KeyCourseStats = "courseStats"
	KeyWrongIDs    = "wrongQuestionIdsByCourse"
	KeyPerformance = "performanceByQuestionId"
	KeyProgress    = "progressSnapshot"
)
