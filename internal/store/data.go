package store

import "time"

// SkillStatsData is the persisted form of one learner's mastery of one skill.
type SkillStatsData struct {
	UserID        string    `json:"user_id"`
	Section       string    `json:"section"`
	Skill         string    `json:"skill"`
	MasteryScore  float64   `json:"mastery_score"`
	Attempts      int       `json:"attempts"`
	CorrectCount  int       `json:"correct_count"`
	AvgTimeSec    float64   `json:"avg_time_sec"`
	RecentResults []bool    `json:"recent_results"`
	LastUpdated   time.Time `json:"last_updated"`
}

// RecommendationData is a persisted weekly-plan entry.
type RecommendationData struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Type               string    `json:"type"`
	Section            string    `json:"section,omitempty"`
	Skill              string    `json:"skill,omitempty"`
	Message            string    `json:"message"`
	SuggestedQuestions int       `json:"suggested_questions"`
	SuggestedMinutes   int       `json:"suggested_minutes"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// AnswerData records one answered question inside a session.
type AnswerData struct {
	QuestionID   string `json:"question_id"`
	Skill        string `json:"skill"`
	Difficulty   string `json:"difficulty"`
	Selected     int    `json:"selected"`
	Correct      bool   `json:"correct"`
	TimeSpentSec int    `json:"time_spent_sec"`
}

// SectionResultData is one section of a finished session.
type SectionResultData struct {
	Section      string       `json:"section"`
	Questions    int          `json:"questions"`
	TimeLimitSec int          `json:"time_limit_sec,omitempty"`
	Answers      []AnswerData `json:"answers"`
}

// SessionData is a completed practice or exam session.
type SessionData struct {
	ID           string              `json:"id"`
	UserID       string              `json:"user_id"`
	Mode         string              `json:"mode"`
	Difficulty   string              `json:"difficulty"`
	TimerMode    string              `json:"timer_mode"`
	StartedAt    time.Time           `json:"started_at"`
	EndedAt      time.Time           `json:"ended_at"`
	Sections     []SectionResultData `json:"sections"`
	TotalScore   float64             `json:"total_score"`
	TotalTimeSec int                 `json:"total_time_sec"`
}

// Settings holds per-learner preferences.
type Settings struct {
	UserID              string    `json:"user_id"`
	LearnerName         string    `json:"learner_name"`
	TimerMode           string    `json:"timer_mode"`
	QuestionsPerSection int       `json:"questions_per_section"`
	CreatedAt           time.Time `json:"created_at"`
}

// DefaultSettings returns the settings of a learner that has never saved any.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:              userID,
		TimerMode:           "none",
		QuestionsPerSection: 5,
	}
}
