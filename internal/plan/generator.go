package plan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

var (
	// ErrNotFound is returned when a recommendation does not exist for the
	// learner.
	ErrNotFound = errors.New("recommendation not found")

	// ErrNotActive is returned when changing the status of a
	// recommendation that is no longer active.
	ErrNotActive = errors.New("recommendation is not active")
)

// SkillReader is the part of the mastery service the plan needs.
type SkillReader interface {
	WeakSkills(ctx context.Context, userID string) ([]*mastery.SkillStats, error)
	AllSkills(ctx context.Context, userID string) ([]*mastery.SkillStats, error)
}

// Generator builds and tracks weekly practice plans.
type Generator struct {
	skills SkillReader
	repo   store.RecommendationRepo
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewGenerator creates a plan generator.
func NewGenerator(sk SkillReader, repo store.RecommendationRepo, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		skills: sk,
		repo:   repo,
		logger: logger.Named("plan"),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// WeeklyPlan derives recommendations from the learner's current mastery,
// persists them and returns them. There is one focus area per weak skill,
// an encouragement when nothing is weak but some history exists, and
// always one overall practice plan last.
func (g *Generator) WeeklyPlan(ctx context.Context, userID string) ([]Recommendation, error) {
	weak, err := g.skills.WeakSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load weak skills: %w", err)
	}
	all, err := g.skills.AllSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}

	now := g.now()
	var recs []Recommendation
	add := func(r Recommendation) {
		r.ID = g.newID()
		r.UserID = userID
		r.Status = StatusActive
		r.CreatedAt = now
		recs = append(recs, r)
	}

	for _, st := range weak {
		add(Recommendation{
			Type:               TypeFocusArea,
			Section:            st.Section,
			Skill:              st.Skill,
			Message:            focusMessage(st),
			SuggestedQuestions: FocusQuestions,
			SuggestedMinutes:   FocusMinutes,
		})
	}
	if len(weak) == 0 && len(all) > 0 {
		add(Recommendation{
			Type:               TypeEncouragement,
			Message:            "Great work! Every topic is in good shape. Keep practising to stay there!",
			SuggestedQuestions: EncouragementQuestions,
			SuggestedMinutes:   EncouragementMinutes,
		})
	}

	summary := Recommendation{
		Type:               TypePracticePlan,
		Message:            "Weekly plan: maintenance practice",
		SuggestedQuestions: DefaultPlanQuestions,
		SuggestedMinutes:   DefaultPlanMinutes,
	}
	if n := len(weak); n > 0 {
		summary.Message = fmt.Sprintf("Weekly plan: %d %s to strengthen", n, plural(n, "topic", "topics"))
		summary.SuggestedQuestions = n * FocusQuestions
		summary.SuggestedMinutes = n * FocusMinutes
	}
	add(summary)

	for i := range recs {
		if err := g.repo.Save(ctx, recs[i].toData()); err != nil {
			return nil, fmt.Errorf("save recommendation: %w", err)
		}
	}
	g.logger.Info("weekly plan generated",
		zap.String("user", userID),
		zap.Int("weak_skills", len(weak)),
		zap.Int("recommendations", len(recs)),
	)
	return recs, nil
}

// Active returns the learner's active recommendations, newest first.
func (g *Generator) Active(ctx context.Context, userID string) ([]Recommendation, error) {
	data, err := g.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	var out []Recommendation
	for i := range data {
		if Status(data[i].Status) == StatusActive {
			out = append(out, fromData(&data[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Dismiss marks an active recommendation as dismissed.
func (g *Generator) Dismiss(ctx context.Context, userID, id string) error {
	return g.transition(ctx, userID, id, StatusDismissed)
}

// Complete marks an active recommendation as done.
func (g *Generator) Complete(ctx context.Context, userID, id string) error {
	return g.transition(ctx, userID, id, StatusCompleted)
}

func (g *Generator) transition(ctx context.Context, userID, id string, to Status) error {
	d, err := g.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load recommendation: %w", err)
	}
	if d.UserID != userID {
		return ErrNotFound
	}
	if Status(d.Status) != StatusActive {
		return fmt.Errorf("%w: %s", ErrNotActive, d.Status)
	}
	d.Status = string(to)
	if err := g.repo.Save(ctx, d); err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}
	return nil
}

func focusMessage(st *mastery.SkillStats) string {
	return fmt.Sprintf("Practice %s (%s): current score %d",
		skills.Name(st.Skill), st.Section.DisplayName(), int(math.Round(st.MasteryScore)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
