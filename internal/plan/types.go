package plan

import (
	"time"

	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

// Type is the kind of a recommendation.
type Type string

const (
	TypeFocusArea     Type = "focus_area"
	TypeEncouragement Type = "encouragement"
	TypePracticePlan  Type = "practice_plan"
)

// Status is the lifecycle state of a recommendation.
type Status string

const (
	StatusActive    Status = "active"
	StatusDismissed Status = "dismissed"
	StatusCompleted Status = "completed"
)

// Suggested practice budgets.
const (
	FocusQuestions         = 10
	FocusMinutes           = 15
	EncouragementQuestions = 5
	EncouragementMinutes   = 10
	DefaultPlanQuestions   = 20
	DefaultPlanMinutes     = 30
)

// Recommendation is one entry of a weekly practice plan.
type Recommendation struct {
	ID                 string
	UserID             string
	Type               Type
	Section            skills.SectionType // focus areas only
	Skill              skills.SkillTag    // focus areas only
	Message            string
	SuggestedQuestions int
	SuggestedMinutes   int
	Status             Status
	CreatedAt          time.Time
}

func (r *Recommendation) toData() *store.RecommendationData {
	return &store.RecommendationData{
		ID:                 r.ID,
		UserID:             r.UserID,
		Type:               string(r.Type),
		Section:            string(r.Section),
		Skill:              string(r.Skill),
		Message:            r.Message,
		SuggestedQuestions: r.SuggestedQuestions,
		SuggestedMinutes:   r.SuggestedMinutes,
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt,
	}
}

func fromData(d *store.RecommendationData) Recommendation {
	return Recommendation{
		ID:                 d.ID,
		UserID:             d.UserID,
		Type:               Type(d.Type),
		Section:            skills.SectionType(d.Section),
		Skill:              skills.SkillTag(d.Skill),
		Message:            d.Message,
		SuggestedQuestions: d.SuggestedQuestions,
		SuggestedMinutes:   d.SuggestedMinutes,
		Status:             Status(d.Status),
		CreatedAt:          d.CreatedAt,
	}
}
