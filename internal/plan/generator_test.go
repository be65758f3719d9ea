package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

type fakeSkills struct {
	weak, all []*mastery.SkillStats
	err       error
}

func (f *fakeSkills) WeakSkills(context.Context, string) ([]*mastery.SkillStats, error) {
	return f.weak, f.err
}

func (f *fakeSkills) AllSkills(context.Context, string) ([]*mastery.SkillStats, error) {
	return f.all, f.err
}

// memRepo implements store.RecommendationRepo in memory.
type memRepo struct {
	records map[string]store.RecommendationData
	saveErr error
}

func newMemRepo() *memRepo { return &memRepo{records: map[string]store.RecommendationData{}} }

func (m *memRepo) Get(_ context.Context, id string) (*store.RecommendationData, error) {
	d, ok := m.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (m *memRepo) Save(_ context.Context, d *store.RecommendationData) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[d.ID] = *d
	return nil
}

func (m *memRepo) List(_ context.Context, userID string) ([]store.RecommendationData, error) {
	var out []store.RecommendationData
	for _, d := range m.records {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func stat(sec skills.SectionType, tag skills.SkillTag, score float64) *mastery.SkillStats {
	return &mastery.SkillStats{Key: mastery.Key{UserID: "kid", Section: sec, Skill: tag}, MasteryScore: score}
}

func newTestGenerator(sk *fakeSkills, repo *memRepo) *Generator {
	g := NewGenerator(sk, repo, nil)
	n := 0
	g.newID = func() string { n++; return fmt.Sprintf("rec-%d", n) }
	g.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return g
}

func TestWeeklyPlan_WeakSkills(t *testing.T) {
	weak := []*mastery.SkillStats{
		stat(skills.SectionMath, skills.MoneyChange, 22.6),
		stat(skills.SectionShapes, skills.Transformation, 48),
	}
	repo := newMemRepo()
	g := newTestGenerator(&fakeSkills{weak: weak, all: weak}, repo)

	recs, err := g.WeeklyPlan(context.Background(), "kid")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("len = %d, want 3", len(recs))
	}
	for i, r := range recs[:2] {
		if r.Type != TypeFocusArea {
			t.Errorf("recs[%d].Type = %v, want focus_area", i, r.Type)
		}
		if r.SuggestedQuestions != 10 || r.SuggestedMinutes != 15 {
			t.Errorf("recs[%d] budget = %d/%d, want 10/15", i, r.SuggestedQuestions, r.SuggestedMinutes)
		}
	}
	if recs[0].Skill != skills.MoneyChange || recs[0].Section != skills.SectionMath {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if !strings.Contains(recs[0].Message, "23") || !strings.Contains(recs[0].Message, skills.Name(skills.MoneyChange)) {
		t.Errorf("focus message = %q", recs[0].Message)
	}

	summary := recs[2]
	if summary.Type != TypePracticePlan || summary.SuggestedQuestions != 20 || summary.SuggestedMinutes != 30 {
		t.Errorf("summary = %+v, want practice_plan 20/30", summary)
	}
	if !strings.Contains(summary.Message, "2 topics") {
		t.Errorf("summary message = %q", summary.Message)
	}

	if len(repo.records) != 3 {
		t.Errorf("persisted %d, want 3", len(repo.records))
	}
	for _, r := range recs {
		if r.Status != StatusActive || r.UserID != "kid" || r.ID == "" {
			t.Errorf("rec %+v not stamped", r)
		}
	}
}

func TestWeeklyPlan_Encouragement(t *testing.T) {
	all := []*mastery.SkillStats{stat(skills.SectionMath, skills.TimeClock, 80)}
	recs, err := newTestGenerator(&fakeSkills{all: all}, newMemRepo()).WeeklyPlan(context.Background(), "kid")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Type != TypeEncouragement || recs[0].SuggestedQuestions != 5 || recs[0].SuggestedMinutes != 10 {
		t.Errorf("recs[0] = %+v", recs[0])
	}
	if recs[1].SuggestedQuestions != 20 || recs[1].SuggestedMinutes != 30 {
		t.Errorf("summary budget = %d/%d, want 20/30", recs[1].SuggestedQuestions, recs[1].SuggestedMinutes)
	}
}

func TestWeeklyPlan_NoHistory(t *testing.T) {
	recs, err := newTestGenerator(&fakeSkills{}, newMemRepo()).WeeklyPlan(context.Background(), "kid")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Type != TypePracticePlan {
		t.Errorf("recs = %+v, want a single practice plan", recs)
	}
}

func TestWeeklyPlan_Errors(t *testing.T) {
	_, err := newTestGenerator(&fakeSkills{err: errors.New("db")}, newMemRepo()).WeeklyPlan(context.Background(), "kid")
	if err == nil {
		t.Error("expected load error")
	}

	repo := newMemRepo()
	repo.saveErr = errors.New("disk full")
	_, err = newTestGenerator(&fakeSkills{}, repo).WeeklyPlan(context.Background(), "kid")
	if err == nil {
		t.Error("expected save error")
	}
}

func TestTransitions(t *testing.T) {
	weak := []*mastery.SkillStats{stat(skills.SectionMath, skills.MoneyChange, 10)}
	repo := newMemRepo()
	g := newTestGenerator(&fakeSkills{weak: weak, all: weak}, repo)
	ctx := context.Background()

	recs, err := g.WeeklyPlan(ctx, "kid")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Dismiss(ctx, "kid", recs[0].ID); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := g.Complete(ctx, "kid", recs[0].ID); !errors.Is(err, ErrNotActive) {
		t.Errorf("Complete after Dismiss = %v, want ErrNotActive", err)
	}
	if err := g.Complete(ctx, "other", recs[1].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Complete for other user = %v, want ErrNotFound", err)
	}
	if err := g.Complete(ctx, "kid", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Complete missing = %v, want ErrNotFound", err)
	}

	active, err := g.Active(ctx, "kid")
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != recs[1].ID {
		t.Errorf("Active = %+v, want only %s", active, recs[1].ID)
	}
	if got := repo.records[recs[0].ID].Status; got != string(StatusDismissed) {
		t.Errorf("stored status = %q, want dismissed", got)
	}
}
