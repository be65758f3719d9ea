package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/skills"
)

func batchJSON(t *testing.T, qs ...questionOutput) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(batchOutput{Questions: qs})
	require.NoError(t, err)
	return raw
}

func TestLLMGeneratorBuildsQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t,
		questionOutput{
			Skill: "synonyms_antonyms", Difficulty: "easy", Stem: "hot : cold is like ___",
			Options: []string{"up : down", "big : large", "pen : write", "wood : table"}, CorrectOption: 0,
			Explanation: "Opposites.",
		},
		questionOutput{
			Skill: "part_whole", Difficulty: "hard", Stem: "page : book is like ___",
			Options: []string{"petal : flower", "fire : smoke", "dog : animal", "clay : pot"}, CorrectOption: 0,
			Explanation: "A part of a whole.",
		},
	)})
	g := NewLLMGenerator(mock, DefaultLLMConfig(), nil)

	qs, err := g.Generate(context.Background(), skills.SectionWordRelations, skills.Adaptive, 2)
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, skills.SynonymsAntonyms, qs[0].Skill)
	assert.Equal(t, skills.Easy, qs[0].Difficulty)
	assert.Equal(t, 40, qs[0].RecommendedTimeSec)
	assert.Equal(t, skills.Hard, qs[1].Difficulty)
	assert.Equal(t, 60, qs[1].RecommendedTimeSec)
	for _, q := range qs {
		assert.Equal(t, SourceLLM, q.Source)
		assert.NotEmpty(t, q.ID)
	}

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, "question-batch-word-relations", req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, "part_whole")
}

func TestLLMGeneratorForcesRequestedDifficulty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, questionOutput{
		Skill: "time_clock", Difficulty: "easy", Stem: "What time is it?",
		Options: []string{"1:00", "2:00", "3:00", "4:00"}, CorrectOption: 3, Explanation: "Read the clock.",
	})})
	qs, err := NewLLMGenerator(mock, LLMConfig{}, nil).Generate(context.Background(), skills.SectionMath, skills.Hard, 1)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, skills.Hard, qs[0].Difficulty)
	assert.Equal(t, 85, qs[0].RecommendedTimeSec)
}

func TestLLMGeneratorDropsInvalidQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t,
		questionOutput{
			Skill: "vocabulary", Difficulty: "medium", Stem: "Pick one",
			Options: []string{"same", "same", "other", "more"}, CorrectOption: 0, Explanation: "x",
		},
		questionOutput{
			Skill: "vocabulary", Difficulty: "medium", Stem: "The sky is ___.",
			Options: []string{"blue", "loud", "salty", "square"}, CorrectOption: 0, Explanation: "x",
		},
	)})
	qs, err := NewLLMGenerator(mock, DefaultLLMConfig(), nil).Generate(context.Background(), skills.SectionSentenceCompletion, skills.Medium, 2)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "The sky is ___.", qs[0].Stem)
}

func TestLLMGeneratorRejectsForeignSkill(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(t, questionOutput{
		Skill: "vocabulary", Difficulty: "easy", Stem: "2 + 2?",
		Options: []string{"1", "2", "3", "4"}, CorrectOption: 3, Explanation: "x",
	})})
	_, err := NewLLMGenerator(mock, DefaultLLMConfig(), nil).Generate(context.Background(), skills.SectionMath, skills.Easy, 1)
	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestLLMGeneratorProviderError(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewLLMGenerator(mock, DefaultLLMConfig(), nil).Generate(context.Background(), skills.SectionShapes, skills.Easy, 3)
	var unavailable *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}
