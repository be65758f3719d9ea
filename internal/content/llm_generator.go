package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/skills"
)

// LLMConfig tunes LLM-backed generation.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns conservative defaults for batch generation.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{MaxTokens: 4096, Temperature: 0.7}
}

// LLMGenerator is a Source that asks a language model for questions.
type LLMGenerator struct {
	provider llm.Provider
	config   LLMConfig
	logger   *zap.Logger
}

// NewLLMGenerator creates an LLMGenerator. A nil logger discards output.
func NewLLMGenerator(provider llm.Provider, cfg LLMConfig, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultLLMConfig().MaxTokens
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger.Named("llm-content")}
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Skill         string   `json:"skill"`
	Difficulty    string   `json:"difficulty"`
	Stem          string   `json:"stem"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation"`
}

// Generate requests count questions for section. Items that fail
// validation are dropped, so fewer than count may be returned.
func (g *LLMGenerator) Generate(ctx context.Context, section skills.SectionType, d skills.Difficulty, count int) ([]Question, error) {
	if count <= 0 {
		return nil, nil
	}
	if !section.Valid() {
		return nil, fmt.Errorf("unknown section %q", section)
	}
	ctx = llm.WithPurpose(ctx, "question-batch")

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: batchMessage(section, d, count)}},
		Schema:      batchSchema(section),
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	qs := make([]Question, 0, len(out.Questions))
	for _, raw := range out.Questions {
		level := skills.Difficulty(raw.Difficulty)
		if d.Concrete() {
			level = d
		}
		q := Question{
			ID:                 uuid.NewString(),
			Section:            section,
			Skill:              skills.SkillTag(raw.Skill),
			Difficulty:         level,
			Stem:               strings.TrimSpace(raw.Stem),
			Options:            raw.Options,
			CorrectOption:      raw.CorrectOption,
			Explanation:        strings.TrimSpace(raw.Explanation),
			RecommendedTimeSec: RecommendedTime(section, level),
			Source:             SourceLLM,
		}
		if err := Validate(q); err != nil {
			g.logger.Warn("dropping generated question", zap.String("section", string(section)), zap.Error(err))
			continue
		}
		qs = append(qs, q)
		if len(qs) == count {
			break
		}
	}
	return qs, nil
}

const systemPrompt = `You write multiple-choice practice questions for children aged 8 to 10 preparing for a gifted-program screening test.

Rules:
- Every question has exactly 4 distinct options and exactly one correct option.
- correct_option is the zero-based index of the correct option.
- Use only the skill tags listed in the request.
- Shape questions must be fully described in words; there are no pictures.
- Distractors should reflect common mistakes, not random values.
- The explanation is one or two short sentences a child can follow.
- Do not repeat questions within the batch.`

func batchMessage(section skills.SectionType, d skills.Difficulty, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Section: %s\n", section.DisplayName())
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	if d.Concrete() {
		fmt.Fprintf(&b, "Difficulty: %s\n", d)
	} else {
		b.WriteString("Difficulty: mix easy, medium and hard\n")
	}
	b.WriteString("\nSkills (tag: name), spread the questions across them:\n")
	for _, tag := range skills.Tags(section) {
		fmt.Fprintf(&b, "- %s: %s\n", tag, skills.Name(tag))
	}
	return b.String()
}

// batchSchema builds the output schema for one section, restricting the
// skill field to that section's tags.
func batchSchema(section skills.SectionType) *llm.Schema {
	tags := skills.Tags(section)
	enum := make([]any, len(tags))
	for i, t := range tags {
		enum[i] = string(t)
	}
	return &llm.Schema{
		Name:        "question-batch-" + strings.ReplaceAll(string(section), "_", "-"),
		Description: "A batch of multiple-choice questions for one section",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"skill": map[string]any{"type": "string", "enum": enum},
							"difficulty": map[string]any{
								"type": "string",
								"enum": []any{"easy", "medium", "hard"},
							},
							"stem": map[string]any{"type": "string", "description": "The question text"},
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": OptionCount,
								"maxItems": OptionCount,
							},
							"correct_option": map[string]any{
								"type":    "integer",
								"minimum": 0,
								"maximum": OptionCount - 1,
							},
							"explanation": map[string]any{"type": "string"},
						},
						"required":             []any{"skill", "difficulty", "stem", "options", "correct_option", "explanation"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
