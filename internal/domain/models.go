package domain

import "time"

// Company is one entry of the prep catalog. Immutable once loaded.
type Company struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Domain  string `json:"domain"`
	Level   string `json:"level"`
	Summary string `json:"summary"`
}

// InterviewQuestion is a free-text mock question with suggested talking points.
type InterviewQuestion struct {
	Question string   `json:"question"`
	Points   []string `json:"points"`
}

// McqQuestion is a multiple-choice question; Answer indexes into Choices.
type McqQuestion struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
}

// QuestionSet holds both question collections for one company.
type QuestionSet struct {
	Interview []InterviewQuestion `json:"interview"`
	Mcq       []McqQuestion       `json:"mcq"`
}

// Catalog is the whole company/question document, read-only after load.
type Catalog struct {
	Companies          []Company              `json:"companies"`
	QuestionsByCompany map[string]QuestionSet `json:"questionsByCompany"`
}

// ExamItem is a session-scoped copy of an McqQuestion. IDs are positional,
// 1..N, assigned at session start and stable for the session's lifetime.
type ExamItem struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   int      `json:"answer"`
}

// ExamResult summarizes a graded attempt.
type ExamResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Seconds int `json:"seconds"`
}

// AttemptType distinguishes mock runs from timed exams in history.
type AttemptType string

const (
	AttemptMock AttemptType = "Mock"
	AttemptExam AttemptType = "Exam"
)

// HistoryRecord is one completed attempt. CompanyName is copied at record
// creation so old records survive catalog edits.
type HistoryRecord struct {
	Type        AttemptType `json:"type"`
	Company     string      `json:"company"`
	CompanyName string      `json:"companyName"`
	Score       int         `json:"score"`
	Total       int         `json:"total"`
	Seconds     int         `json:"seconds"`
	Date        time.Time   `json:"date"`
}

// ReadinessPoint is one sample of the readiness chart feed.
type ReadinessPoint struct {
	At    time.Time `json:"t"`
	Score int       `json:"s"`
}

// Streak tracks daily check-ins. Last is a UTC calendar date (YYYY-MM-DD).
type Streak struct {
	Last  string `json:"last"`
	Count int    `json:"count"`
}

// LeaderboardEntry is a sorted view of one user's points.
type LeaderboardEntry struct {
	User   string `json:"user"`
	Points int    `json:"points"`
}

// TrackerEntry is one logged job application.
type TrackerEntry struct {
	ID      string    `json:"id"`
	Company string    `json:"company"`
	Result  string    `json:"result"`
	Notes   string    `json:"notes"`
	At      time.Time `json:"at"`
}
