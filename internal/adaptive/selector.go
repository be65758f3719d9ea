package adaptive

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/skills"
)

// Tier shares of a session.
const (
	WeakShare  = 0.6
	MixedShare = 0.25
)

// Tier names the part of the mix a question was selected for.
type Tier string

const (
	TierWeak   Tier = "weak"
	TierMixed  Tier = "mixed"
	TierStrong Tier = "strong"
)

// Selection is a selected question together with its tier.
type Selection struct {
	Question content.Question
	Tier     Tier
}

// Classifier reports a learner's weak and strong skills.
// *mastery.Service implements it.
type Classifier interface {
	WeakSkills(ctx context.Context, userID string) ([]*mastery.SkillStats, error)
	StrongSkills(ctx context.Context, userID string) ([]*mastery.SkillStats, error)
}

// Options configures a Selector.
type Options struct {
	Mastery Classifier
	Source  content.Source

	// Rand shuffles sections and the final list. Nil seeds from the clock.
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Selector assembles adaptive question sets. It is not safe for
// concurrent use because its random source is not.
type Selector struct {
	mastery Classifier
	source  content.Source
	rng     *rand.Rand
	logger  *zap.Logger
}

// NewSelector creates a Selector.
func NewSelector(opts Options) *Selector {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		mastery: opts.Mastery,
		source:  opts.Source,
		rng:     rng,
		logger:  logger.Named("adaptive"),
	}
}

// WeakQuota is the number of questions aimed at weak sections.
func WeakQuota(total int) int { return int(math.Round(float64(total) * WeakShare)) }

// MixedQuota is the number of medium reinforcement questions.
func MixedQuota(total int) int { return int(math.Round(float64(total) * MixedShare)) }

// Select returns up to total unique questions for userID.
func (s *Selector) Select(ctx context.Context, userID string, total int) ([]content.Question, error) {
	sel, err := s.SelectDetailed(ctx, userID, total)
	if err != nil {
		return nil, err
	}
	out := make([]content.Question, len(sel))
	for i, it := range sel {
		out[i] = it.Question
	}
	return out, nil
}

// SelectDetailed is Select with tier attribution.
//
// The mix is built in three passes. Weak sections get WeakQuota questions
// at a difficulty matching their weak skills. All sections then share the
// MixedQuota at medium. Whatever is left goes to strong sections, or to
// every section when nothing is strong yet, at hard. The result is
// shuffled and cut to total; it is shorter only when the source runs dry.
func (s *Selector) SelectDetailed(ctx context.Context, userID string, total int) ([]Selection, error) {
	if total <= 0 {
		return nil, nil
	}
	weak, err := s.mastery.WeakSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load weak skills: %w", err)
	}
	strong, err := s.mastery.StrongSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load strong skills: %w", err)
	}

	b := &batch{sel: s, seen: make(map[string]bool)}
	weakQuota, mixedQuota := WeakQuota(total), MixedQuota(total)

	// Weak tier.
	if weakSecs := sectionsOf(weak); len(weakSecs) > 0 && weakQuota > 0 {
		per := perSection(weakQuota, len(weakSecs))
		for _, sec := range weakSecs {
			d := DifficultyFromMastery(averageScore(weak, sec))
			if err := b.fetch(ctx, sec, d, per, TierWeak); err != nil {
				return nil, err
			}
		}
	}

	// Mixed tier.
	mixedTarget := weakQuota + mixedQuota
	if remaining := mixedTarget - len(b.items); remaining > 0 {
		secs := skills.AllSections()
		shuffle(s.rng, secs)
		per := perSection(remaining, len(secs))
		for _, sec := range secs {
			if len(b.items) >= mixedTarget {
				break
			}
			if err := b.fetch(ctx, sec, skills.Medium, per, TierMixed); err != nil {
				return nil, err
			}
		}
	}

	// Strong tier.
	if remaining := total - len(b.items); remaining > 0 {
		secs := sectionsOf(strong)
		if len(secs) == 0 {
			secs = skills.AllSections()
		}
		shuffle(s.rng, secs)
		per := perSection(remaining, len(secs))
		for _, sec := range secs {
			if len(b.items) >= total {
				break
			}
			if err := b.fetch(ctx, sec, skills.Hard, per, TierStrong); err != nil {
				return nil, err
			}
		}
	}

	shuffle(s.rng, b.items)
	if len(b.items) > total {
		b.items = b.items[:total]
	}
	s.logger.Debug("adaptive selection",
		zap.String("user", userID),
		zap.Int("requested", total),
		zap.Int("selected", len(b.items)),
		zap.Int("weak_skills", len(weak)),
		zap.Int("strong_skills", len(strong)),
	)
	return b.items, nil
}

// batch accumulates selections and drops repeated ids.
type batch struct {
	sel   *Selector
	items []Selection
	seen  map[string]bool
}

// fetch asks the source for n questions. A failing section is logged and
// skipped; only cancellation aborts the selection.
func (b *batch) fetch(ctx context.Context, sec skills.SectionType, d skills.Difficulty, n int, tier Tier) error {
	qs, err := b.sel.source.Generate(ctx, sec, d, n)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.sel.logger.Warn("section skipped",
			zap.String("section", string(sec)),
			zap.String("tier", string(tier)),
			zap.Error(err),
		)
		return nil
	}
	for _, q := range qs {
		if b.seen[q.ID] {
			continue
		}
		b.seen[q.ID] = true
		b.items = append(b.items, Selection{Question: q, Tier: tier})
	}
	return nil
}

func shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// perSection splits quota across n sections, rounding up, at least one each.
func perSection(quota, n int) int {
	return max(1, (quota+n-1)/n)
}

// sectionsOf returns the distinct sections of stats in canonical order.
func sectionsOf(stats []*mastery.SkillStats) []skills.SectionType {
	has := make(map[skills.SectionType]bool)
	for _, st := range stats {
		has[st.Section] = true
	}
	var out []skills.SectionType
	for _, sec := range skills.AllSections() {
		if has[sec] {
			out = append(out, sec)
		}
	}
	return out
}

// averageScore is the mean mastery of the stats that belong to sec.
func averageScore(stats []*mastery.SkillStats, sec skills.SectionType) float64 {
	var sum float64
	n := 0
	for _, st := range stats {
		if st.Section == sec {
			sum += st.MasteryScore
			n++
		}
	}
	if n == 0 {
		return mastery.InitialScore
	}
	return sum / float64(n)
}
