package mastery

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

// memRepo implements store.SkillStatsRepo in memory.
type memRepo struct {
	mu      sync.Mutex
	records map[string]store.SkillStatsData
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]store.SkillStatsData)}
}

func (m *memRepo) Get(_ context.Context, userID, section, skill string) (*store.SkillStatsData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.records[store.SkillStatsID(userID, section, skill)]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memRepo) Save(_ context.Context, d *store.SkillStatsData) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[store.SkillStatsID(d.UserID, d.Section, d.Skill)] = *d
	return nil
}

func (m *memRepo) List(_ context.Context, userID string) ([]store.SkillStatsData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.SkillStatsData
	for _, d := range m.records {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

var testKey = Key{UserID: "kid", Section: skills.SectionMath, Skill: skills.WordProblems}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestUpdateMastery_FromInitial(t *testing.T) {
	tests := []struct {
		name        string
		correct     bool
		spent       float64
		recommended float64
		want        float64
	}{
		{"correct fast", true, 30, 60, 65},
		{"correct on time", true, 60, 60, 60},
		{"correct slow", true, 90, 60, 55},
		{"correct very slow", true, 600, 60, 55},
		{"incorrect instant", false, 0, 60, 35},
		{"incorrect on time", false, 60, 60, 38.5},
		{"incorrect after double time", false, 120, 60, 42},
		{"no recommendation is neutral", true, 500, 0, 60},
		{"negative recommendation is neutral", false, 10, -5, 38.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			got, err := svc.UpdateMastery(context.Background(), Answer{
				Key:                testKey,
				Correct:            tt.correct,
				TimeSpentSec:       tt.spent,
				RecommendedTimeSec: tt.recommended,
			})
			if err != nil {
				t.Fatalf("UpdateMastery: %v", err)
			}
			if !approx(got.MasteryScore, tt.want) {
				t.Errorf("MasteryScore = %v, want %v", got.MasteryScore, tt.want)
			}
			if got.Attempts != 1 {
				t.Errorf("Attempts = %d, want 1", got.Attempts)
			}
		})
	}
}

func TestUpdateMastery_Counters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	answers := []struct {
		correct bool
		spent   float64
	}{
		{true, 10},
		{false, 20},
		{true, 30},
	}
	var got *SkillStats
	for _, a := range answers {
		var err error
		got, err = svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: a.correct, TimeSpentSec: a.spent, RecommendedTimeSec: 60})
		if err != nil {
			t.Fatalf("UpdateMastery: %v", err)
		}
	}

	if got.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", got.Attempts)
	}
	if got.CorrectCount != 2 {
		t.Errorf("CorrectCount = %d, want 2", got.CorrectCount)
	}
	if !approx(got.AvgTimeSec, 20) {
		t.Errorf("AvgTimeSec = %v, want 20", got.AvgTimeSec)
	}
	want := []bool{true, false, true}
	for i := range want {
		if got.RecentResults[i] != want[i] {
			t.Errorf("RecentResults[%d] = %v, want %v", i, got.RecentResults[i], want[i])
		}
	}
	if !got.LastUpdated.Equal(svc.now()) {
		t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, svc.now())
	}
	if acc := got.Accuracy(); !approx(acc, 2.0/3.0) {
		t.Errorf("Accuracy = %v, want 2/3", acc)
	}
}

func TestUpdateMastery_ScoreIsClamped(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	var got *SkillStats
	for i := 0; i < 10; i++ {
		got, _ = svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: true, TimeSpentSec: 1, RecommendedTimeSec: 60})
	}
	if got.MasteryScore != 100 {
		t.Errorf("MasteryScore = %v, want 100", got.MasteryScore)
	}

	for i := 0; i < 20; i++ {
		got, _ = svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: false, TimeSpentSec: 1, RecommendedTimeSec: 60})
	}
	if got.MasteryScore != 0 {
		t.Errorf("MasteryScore = %v, want 0", got.MasteryScore)
	}
}

func TestUpdateMastery_RecentWindowIsBounded(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 10 misses followed by 3 hits: the window holds the last 10.
	var got *SkillStats
	for i := 0; i < 10; i++ {
		got, _ = svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: false, TimeSpentSec: 30, RecommendedTimeSec: 60})
	}
	for i := 0; i < 3; i++ {
		got, _ = svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: true, TimeSpentSec: 30, RecommendedTimeSec: 60})
	}

	if len(got.RecentResults) != RecentWindow {
		t.Fatalf("len(RecentResults) = %d, want %d", len(got.RecentResults), RecentWindow)
	}
	for i, r := range got.RecentResults {
		want := i >= 7
		if r != want {
			t.Errorf("RecentResults[%d] = %v, want %v", i, r, want)
		}
	}
	if got.Attempts != 13 {
		t.Errorf("Attempts = %d, want 13", got.Attempts)
	}
}

func TestUpdateMastery_InvalidTimes(t *testing.T) {
	svc, _ := newTestService()
	got, err := svc.UpdateMastery(context.Background(), Answer{
		Key:                testKey,
		Correct:            true,
		TimeSpentSec:       math.NaN(),
		RecommendedTimeSec: 60,
	})
	if err != nil {
		t.Fatalf("UpdateMastery: %v", err)
	}
	if got.AvgTimeSec != 0 {
		t.Errorf("AvgTimeSec = %v, want 0", got.AvgTimeSec)
	}
	if math.IsNaN(got.MasteryScore) {
		t.Fatal("MasteryScore is NaN")
	}
}

func TestUpdateMastery_InfiniteTimeIsSlowest(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	got, err := svc.UpdateMastery(ctx, Answer{
		Key: testKey, Correct: true, TimeSpentSec: math.Inf(1), RecommendedTimeSec: 60,
	})
	if err != nil {
		t.Fatalf("UpdateMastery: %v", err)
	}
	if !approx(got.MasteryScore, 55) {
		t.Errorf("MasteryScore after correct = %v, want 55", got.MasteryScore)
	}
	if got.AvgTimeSec != MaxTimeSec {
		t.Errorf("AvgTimeSec = %v, want %v", got.AvgTimeSec, float64(MaxTimeSec))
	}

	got, err = svc.UpdateMastery(ctx, Answer{
		Key: testKey, Correct: false, TimeSpentSec: math.Inf(1), RecommendedTimeSec: 60,
	})
	if err != nil {
		t.Fatalf("UpdateMastery: %v", err)
	}
	if !approx(got.MasteryScore, 47) {
		t.Errorf("MasteryScore after incorrect = %v, want 47", got.MasteryScore)
	}
	if math.IsInf(got.AvgTimeSec, 0) {
		t.Error("AvgTimeSec must stay finite")
	}
}

func TestUpdateMastery_InvalidTimeTable(t *testing.T) {
	tests := []struct {
		name    string
		correct bool
		spent   float64
		rec     float64
		want    float64
	}{
		{"negative spent counts as instant", true, -30, 60, 65},
		{"negative infinity counts as instant", false, math.Inf(-1), 60, 35},
		{"infinite recommendation is neutral", true, 30, math.Inf(1), 60},
		{"NaN recommendation is neutral", false, 30, math.NaN(), 38.5},
	}
	for _, tt := range tests {
		svc, _ := newTestService()
		got, err := svc.UpdateMastery(context.Background(), Answer{
			Key: testKey, Correct: tt.correct, TimeSpentSec: tt.spent, RecommendedTimeSec: tt.rec,
		})
		if err != nil {
			t.Fatalf("%s: UpdateMastery: %v", tt.name, err)
		}
		if !approx(got.MasteryScore, tt.want) {
			t.Errorf("%s: MasteryScore = %v, want %v", tt.name, got.MasteryScore, tt.want)
		}
	}
}

// A fast correct answer followed by a slow wrong one on the same skill.
func TestUpdateMastery_FastThenSlowSequence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	got, err := svc.UpdateMastery(ctx, Answer{
		Key: testKey, Correct: true, TimeSpentSec: 20, RecommendedTimeSec: 75,
	})
	if err != nil {
		t.Fatalf("UpdateMastery: %v", err)
	}
	// ratio 0.267 earns the full speed bonus.
	if !approx(got.MasteryScore, 65) {
		t.Errorf("MasteryScore = %v, want 65", got.MasteryScore)
	}
	if got.Attempts != 1 || got.CorrectCount != 1 || got.AvgTimeSec != 20 {
		t.Errorf("after first answer = %d attempts, %d correct, %v avg; want 1, 1, 20",
			got.Attempts, got.CorrectCount, got.AvgTimeSec)
	}
	if len(got.RecentResults) != 1 || !got.RecentResults[0] {
		t.Errorf("RecentResults = %v, want [true]", got.RecentResults)
	}

	got, err = svc.UpdateMastery(ctx, Answer{
		Key: testKey, Correct: false, TimeSpentSec: 100, RecommendedTimeSec: 75,
	})
	if err != nil {
		t.Fatalf("UpdateMastery: %v", err)
	}
	want := 65 - (8 + (1-100.0/75*0.5)*7)
	if !approx(got.MasteryScore, want) {
		t.Errorf("MasteryScore = %v, want %v", got.MasteryScore, want)
	}
	if math.Abs(got.MasteryScore-54.6667) > 1e-3 {
		t.Errorf("MasteryScore = %v, want about 54.667", got.MasteryScore)
	}
	if got.Attempts != 2 || got.CorrectCount != 1 || got.AvgTimeSec != 60 {
		t.Errorf("after second answer = %d attempts, %d correct, %v avg; want 2, 1, 60",
			got.Attempts, got.CorrectCount, got.AvgTimeSec)
	}
	if len(got.RecentResults) != 2 || got.RecentResults[1] {
		t.Errorf("RecentResults = %v, want [true false]", got.RecentResults)
	}
}

func TestUpdateMastery_StorageError(t *testing.T) {
	svc, repo := newTestService()
	repo.saveErr = errors.New("disk full")

	_, err := svc.UpdateMastery(context.Background(), Answer{Key: testKey, Correct: true})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, repo.saveErr) {
		t.Errorf("err = %v, want wrapped %v", err, repo.saveErr)
	}
}

func TestUpdateMastery_Concurrent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.UpdateMastery(ctx, Answer{Key: testKey, Correct: true, TimeSpentSec: 10, RecommendedTimeSec: 60})
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, testKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Attempts != n {
		t.Errorf("Attempts = %d, want %d", got.Attempts, n)
	}
}

func TestWeakAndStrongSkills(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	seed := []store.SkillStatsData{
		{UserID: "kid", Section: "math", Skill: "word_problems", MasteryScore: 30},
		{UserID: "kid", Section: "math", Skill: "time_clock", MasteryScore: 60, RecentResults: []bool{true, false, false, false}},
		{UserID: "kid", Section: "shapes", Skill: "odd_one_out", MasteryScore: 80},
		{UserID: "kid", Section: "shapes", Skill: "fill_frame", MasteryScore: 90, RecentResults: []bool{false, false, false}},
		{UserID: "kid", Section: "word_relations", Skill: "part_whole", MasteryScore: 50, RecentResults: []bool{false, false}},
		{UserID: "other", Section: "math", Skill: "math_logic", MasteryScore: 10},
	}
	for i := range seed {
		repo.Save(ctx, &seed[i])
	}

	weak, err := svc.WeakSkills(ctx, "kid")
	if err != nil {
		t.Fatalf("WeakSkills: %v", err)
	}
	gotWeak := map[skills.SkillTag]bool{}
	for _, s := range weak {
		gotWeak[s.Skill] = true
	}
	for _, tag := range []skills.SkillTag{skills.WordProblems, skills.TimeClock, skills.FillFrame} {
		if !gotWeak[tag] {
			t.Errorf("expected %s to be weak", tag)
		}
	}
	if len(weak) != 3 {
		t.Errorf("len(weak) = %d, want 3", len(weak))
	}
	if weak[0].Skill != skills.WordProblems {
		t.Errorf("weak[0] = %s, want lowest score first", weak[0].Skill)
	}

	strong, err := svc.StrongSkills(ctx, "kid")
	if err != nil {
		t.Fatalf("StrongSkills: %v", err)
	}
	// A strong score with a losing streak is both weak and strong.
	if len(strong) != 2 {
		t.Errorf("len(strong) = %d, want 2", len(strong))
	}
	if strong[0].Skill != skills.FillFrame {
		t.Errorf("strong[0] = %s, want fill_frame", strong[0].Skill)
	}

	medium, err := svc.MediumSkills(ctx, "kid")
	if err != nil {
		t.Fatalf("MediumSkills: %v", err)
	}
	if len(medium) != 2 {
		t.Errorf("len(medium) = %d, want 2", len(medium))
	}
}

func TestAllSkills_CanonicalOrder(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.Save(ctx, &store.SkillStatsData{UserID: "kid", Section: "numbers_in_shapes", Skill: "number_grid"})
	repo.Save(ctx, &store.SkillStatsData{UserID: "kid", Section: "math", Skill: "math_logic"})
	repo.Save(ctx, &store.SkillStatsData{UserID: "kid", Section: "math", Skill: "basic_arithmetic"})

	all, err := svc.AllSkills(ctx, "kid")
	if err != nil {
		t.Fatalf("AllSkills: %v", err)
	}
	want := []skills.SkillTag{skills.BasicArithmetic, skills.MathLogic, skills.NumberGrid}
	for i, w := range want {
		if all[i].Skill != w {
			t.Errorf("all[%d] = %s, want %s", i, all[i].Skill, w)
		}
	}
}
