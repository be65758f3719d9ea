package content

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/skills"
)

func openPool(t *testing.T, opts Options) *Pool {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = seeded()
	}
	p := NewPool(opts)
	require.NoError(t, p.Open())
	return p
}

// fixedIDGenerator hands out questions whose ids repeat across calls.
type fixedIDGenerator struct{ section skills.SectionType }

func (g fixedIDGenerator) Section() skills.SectionType { return g.section }

func (g fixedIDGenerator) Generate(_ *rand.Rand, _ skills.Difficulty, count int) []Question {
	out := make([]Question, count)
	for i := range out {
		out[i] = Question{
			ID: "fixed-" + string(rune('a'+i)), Section: g.section, Skill: skills.BasicArithmetic,
			Difficulty: skills.Easy, Stem: "1 + 1?", Options: []string{"1", "2", "3", "4"},
			CorrectOption: 1, RecommendedTimeSec: 65,
		}
	}
	return out
}

type stubSource struct {
	questions []Question
	err       error
	calls     int
}

func (s *stubSource) Generate(_ context.Context, _ skills.SectionType, _ skills.Difficulty, count int) ([]Question, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.questions[:min(count, len(s.questions))], nil
}

func TestPoolRequiresOpen(t *testing.T) {
	p := NewPool(Options{Rand: seeded()})
	_, err := p.Generate(context.Background(), skills.SectionMath, skills.Easy, 3)
	assert.ErrorIs(t, err, ErrNotOpen)

	require.NoError(t, p.Open())
	require.NoError(t, p.Open(), "second Open is a no-op")
	qs, err := p.Generate(context.Background(), skills.SectionMath, skills.Easy, 3)
	require.NoError(t, err)
	assert.Len(t, qs, 3)
}

func TestPoolOpenRejectsDuplicateSection(t *testing.T) {
	p := NewPool(Options{Generators: []Generator{newMathGenerator(), newMathGenerator()}})
	assert.Error(t, p.Open())
}

func TestPoolRegistersQuestions(t *testing.T) {
	p := openPool(t, Options{})
	ctx := context.Background()

	math, err := p.Generate(ctx, skills.SectionMath, skills.Medium, 5)
	require.NoError(t, err)
	shapes, err := p.Generate(ctx, skills.SectionShapes, skills.Adaptive, 4)
	require.NoError(t, err)

	assert.Equal(t, 9, p.Size())
	assert.Len(t, p.ForSection(skills.SectionMath), 5)
	assert.Len(t, p.ForSection(skills.SectionShapes), 4)
	assert.Empty(t, p.ForSection(skills.SectionWordRelations))

	assert.Equal(t, shapes[2].Stem, p.ForSection(skills.SectionShapes)[2].Stem)
	assert.Equal(t, math[0].ID, p.ForSection(skills.SectionMath)[0].ID)
}

func TestPoolIDsUniqueAcrossCalls(t *testing.T) {
	p := openPool(t, Options{})
	ids := map[string]bool{}
	for _, sec := range skills.AllSections() {
		for i := 0; i < 3; i++ {
			qs, err := p.Generate(context.Background(), sec, skills.Adaptive, 10)
			require.NoError(t, err)
			for _, q := range qs {
				assert.False(t, ids[q.ID], "id %s reused", q.ID)
				ids[q.ID] = true
			}
		}
	}
	assert.Equal(t, len(ids), p.Size())
}

func TestPoolDropsReusedIDs(t *testing.T) {
	p := openPool(t, Options{Generators: []Generator{fixedIDGenerator{skills.SectionMath}}})
	first, err := p.Generate(context.Background(), skills.SectionMath, skills.Easy, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := p.Generate(context.Background(), skills.SectionMath, skills.Easy, 2)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, 2, p.Size())
}

func TestPoolUnknownSection(t *testing.T) {
	p := openPool(t, Options{})
	_, err := p.Generate(context.Background(), skills.SectionType("art"), skills.Easy, 1)
	assert.Error(t, err)
}

func TestPoolPrefersLLMSource(t *testing.T) {
	llmQ := fixedIDGenerator{skills.SectionMath}.Generate(nil, skills.Easy, 2)
	for i := range llmQ {
		llmQ[i].Source = SourceLLM
	}
	src := &stubSource{questions: llmQ}
	p := openPool(t, Options{LLM: src})

	qs, err := p.Generate(context.Background(), skills.SectionMath, skills.Easy, 5)
	require.NoError(t, err)
	require.Len(t, qs, 5)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, SourceLLM, qs[0].Source)
	assert.Equal(t, SourceLLM, qs[1].Source)
	for _, q := range qs[2:] {
		assert.Equal(t, SourceGenerated, q.Source)
	}
}

func TestPoolFallsBackWhenLLMFails(t *testing.T) {
	src := &stubSource{err: errors.New("boom")}
	p := openPool(t, Options{LLM: src})

	qs, err := p.Generate(context.Background(), skills.SectionWordRelations, skills.Hard, 4)
	require.NoError(t, err)
	assert.Len(t, qs, 4)
	for _, q := range qs {
		assert.Equal(t, SourceGenerated, q.Source)
	}
}

func TestPoolStopsOnCancelledContext(t *testing.T) {
	src := &stubSource{err: context.Canceled}
	p := openPool(t, Options{LLM: src})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, skills.SectionMath, skills.Easy, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
