package mastery

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

// Service updates and queries mastery records.
type Service struct {
	mu     sync.Mutex
	repo   store.SkillStatsRepo
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a mastery service backed by repo. A nil logger
// disables logging.
func NewService(repo store.SkillStatsRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger.Named("mastery"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the record for key, or the initial record when none exists.
func (s *Service) Get(ctx context.Context, key Key) (*SkillStats, error) {
	d, err := s.repo.Get(ctx, key.UserID, string(key.Section), string(key.Skill))
	if err != nil {
		return nil, fmt.Errorf("load skill stats: %w", err)
	}
	if d == nil {
		return NewSkillStats(key), nil
	}
	return fromData(d), nil
}

// UpdateMastery applies one answer to the learner's record and persists it.
// Only storage failures produce an error.
func (s *Service) UpdateMastery(ctx context.Context, a Answer) (*SkillStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.Get(ctx, a.Key)
	if err != nil {
		return nil, err
	}
	before := stats.MasteryScore

	Apply(stats, a, s.now())

	if err := s.repo.Save(ctx, stats.toData()); err != nil {
		return nil, fmt.Errorf("save skill stats: %w", err)
	}

	s.logger.Debug("mastery updated",
		zap.String("user", a.UserID),
		zap.String("section", string(a.Section)),
		zap.String("skill", string(a.Skill)),
		zap.Bool("correct", a.Correct),
		zap.Float64("from", before),
		zap.Float64("to", stats.MasteryScore),
		zap.Int("attempts", stats.Attempts),
	)
	return stats, nil
}

// AllSkills returns every record of a learner in canonical section order.
func (s *Service) AllSkills(ctx context.Context, userID string) ([]*SkillStats, error) {
	data, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list skill stats: %w", err)
	}
	out := make([]*SkillStats, 0, len(data))
	for i := range data {
		out = append(out, fromData(&data[i]))
	}
	sortCanonical(out)
	return out, nil
}

// WeakSkills returns the learner's weak skills, lowest score first.
func (s *Service) WeakSkills(ctx context.Context, userID string) ([]*SkillStats, error) {
	out, err := s.filter(ctx, userID, IsWeak)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MasteryScore < out[j].MasteryScore
	})
	return out, nil
}

// StrongSkills returns the learner's strong skills, highest score first.
func (s *Service) StrongSkills(ctx context.Context, userID string) ([]*SkillStats, error) {
	out, err := s.filter(ctx, userID, IsStrong)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MasteryScore > out[j].MasteryScore
	})
	return out, nil
}

// MediumSkills returns the skills in the medium band.
func (s *Service) MediumSkills(ctx context.Context, userID string) ([]*SkillStats, error) {
	return s.filter(ctx, userID, IsMedium)
}

func (s *Service) filter(ctx context.Context, userID string, keep func(*SkillStats) bool) ([]*SkillStats, error) {
	all, err := s.AllSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	var out []*SkillStats
	for _, st := range all {
		if keep(st) {
			out = append(out, st)
		}
	}
	return out, nil
}

// sortCanonical orders records by section order, then by skill order
// within the section. Unknown tags sort last by name.
func sortCanonical(stats []*SkillStats) {
	rank := make(map[skills.SkillTag]int)
	n := 0
	for _, sec := range skills.AllSections() {
		for _, tag := range skills.Tags(sec) {
			rank[tag] = n
			n++
		}
	}
	pos := func(s *SkillStats) int {
		if r, ok := rank[s.Skill]; ok {
			return r
		}
		return n
	}
	sort.SliceStable(stats, func(i, j int) bool {
		pi, pj := pos(stats[i]), pos(stats[j])
		if pi != pj {
			return pi < pj
		}
		return stats[i].Skill < stats[j].Skill
	})
}
