package mastery

import (
	"time"

	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

const (
	// InitialScore is the mastery score of a skill with no history.
	InitialScore = 50.0

	// RecentWindow is the number of recent results kept per skill.
	RecentWindow = 10
)

// Key identifies one learner's record for one skill.
type Key struct {
	UserID  string
	Section skills.SectionType
	Skill   skills.SkillTag
}

// SkillStats is the mastery record of a (user, section, skill) triple.
type SkillStats struct {
	Key
	MasteryScore  float64
	Attempts      int
	CorrectCount  int
	AvgTimeSec    float64
	RecentResults []bool // oldest first, at most RecentWindow entries
	LastUpdated   time.Time
}

// NewSkillStats returns the initial record for key.
func NewSkillStats(key Key) *SkillStats {
	return &SkillStats{Key: key, MasteryScore: InitialScore}
}

// Accuracy returns the lifetime ratio of correct answers.
func (s *SkillStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0.0
	}
	return float64(s.CorrectCount) / float64(s.Attempts)
}

func fromData(d *store.SkillStatsData) *SkillStats {
	recent := make([]bool, len(d.RecentResults))
	copy(recent, d.RecentResults)
	return &SkillStats{
		Key: Key{
			UserID:  d.UserID,
			Section: skills.SectionType(d.Section),
			Skill:   skills.SkillTag(d.Skill),
		},
		MasteryScore:  d.MasteryScore,
		Attempts:      d.Attempts,
		CorrectCount:  d.CorrectCount,
		AvgTimeSec:    d.AvgTimeSec,
		RecentResults: recent,
		LastUpdated:   d.LastUpdated,
	}
}

func (s *SkillStats) toData() *store.SkillStatsData {
	recent := make([]bool, len(s.RecentResults))
	copy(recent, s.RecentResults)
	return &store.SkillStatsData{
		UserID:        s.UserID,
		Section:       string(s.Section),
		Skill:         string(s.Skill),
		MasteryScore:  s.MasteryScore,
		Attempts:      s.Attempts,
		CorrectCount:  s.CorrectCount,
		AvgTimeSec:    s.AvgTimeSec,
		RecentResults: recent,
		LastUpdated:   s.LastUpdated,
	}
}
