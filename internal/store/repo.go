package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SkillStatsRepo persists per-skill mastery records.
type SkillStatsRepo interface {
	// Get returns the record for a skill, or nil if the learner has never
	// answered a question of it.
	Get(ctx context.Context, userID, section, skill string) (*SkillStatsData, error)

	// Save upserts a record.
	Save(ctx context.Context, data *SkillStatsData) error

	// List returns every record of a learner.
	List(ctx context.Context, userID string) ([]SkillStatsData, error)
}

// RecommendationRepo persists weekly-plan recommendations.
type RecommendationRepo interface {
	Get(ctx context.Context, id string) (*RecommendationData, error)
	Save(ctx context.Context, data *RecommendationData) error
	List(ctx context.Context, userID string) ([]RecommendationData, error)
}

// SessionRepo persists finished sessions.
type SessionRepo interface {
	Get(ctx context.Context, id string) (*SessionData, error)
	Save(ctx context.Context, data *SessionData) error
	// List returns sessions newest first.
	List(ctx context.Context, userID string) ([]SessionData, error)
}

// SettingsRepo persists learner preferences.
type SettingsRepo interface {
	// Get returns stored settings or DefaultSettings when none exist.
	Get(ctx context.Context, userID string) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

// SkillStatsID builds the record id of a (user, section, skill) triple.
func SkillStatsID(userID, section, skill string) string {
	return strings.Join([]string{userID, section, skill}, "|")
}

type skillStatsRepo struct{ r *records }

func (s *skillStatsRepo) Get(ctx context.Context, userID, section, skill string) (*SkillStatsData, error) {
	var d SkillStatsData
	err := s.r.get(ctx, CollectionSkillStats, SkillStatsID(userID, section, skill), &d)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *skillStatsRepo) Save(ctx context.Context, data *SkillStatsData) error {
	id := SkillStatsID(data.UserID, data.Section, data.Skill)
	return s.r.put(ctx, CollectionSkillStats, id, data.UserID, data)
}

func (s *skillStatsRepo) List(ctx context.Context, userID string) ([]SkillStatsData, error) {
	return listDecoded[SkillStatsData](ctx, s.r, CollectionSkillStats, userID)
}

type recommendationRepo struct{ r *records }

func (s *recommendationRepo) Get(ctx context.Context, id string) (*RecommendationData, error) {
	var d RecommendationData
	if err := s.r.get(ctx, CollectionRecommendations, id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *recommendationRepo) Save(ctx context.Context, data *RecommendationData) error {
	if data.ID == "" {
		return fmt.Errorf("save recommendation: empty id")
	}
	return s.r.put(ctx, CollectionRecommendations, data.ID, data.UserID, data)
}

func (s *recommendationRepo) List(ctx context.Context, userID string) ([]RecommendationData, error) {
	return listDecoded[RecommendationData](ctx, s.r, CollectionRecommendations, userID)
}

type sessionRepo struct{ r *records }

func (s *sessionRepo) Get(ctx context.Context, id string) (*SessionData, error) {
	var d SessionData
	if err := s.r.get(ctx, CollectionSessions, id, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *sessionRepo) Save(ctx context.Context, data *SessionData) error {
	if data.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	return s.r.put(ctx, CollectionSessions, data.ID, data.UserID, data)
}

func (s *sessionRepo) List(ctx context.Context, userID string) ([]SessionData, error) {
	out, err := listDecoded[SessionData](ctx, s.r, CollectionSessions, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

type settingsRepo struct{ r *records }

func (s *settingsRepo) Get(ctx context.Context, userID string) (*Settings, error) {
	var d Settings
	err := s.r.get(ctx, CollectionSettings, userID, &d)
	if errors.Is(err, ErrNotFound) {
		def := DefaultSettings(userID)
		return &def, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *settingsRepo) Save(ctx context.Context, st *Settings) error {
	if st.CreatedAt.IsZero() {
		st.CreatedAt = time.Now().UTC()
	}
	return s.r.put(ctx, CollectionSettings, st.UserID, st.UserID, st)
}
