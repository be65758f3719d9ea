package skills

import "time"

// SectionConfig holds display and session defaults for a section.
type SectionConfig struct {
	Type                 SectionType
	Name                 string
	DefaultTime          time.Duration
	DefaultQuestionCount int
	Skills               []Skill
}

var sectionConfigs = []SectionConfig{
	{
		Type:                 SectionMath,
		Name:                 "Math",
		DefaultTime:          16 * time.Minute,
		DefaultQuestionCount: 15,
		Skills: []Skill{
			{BasicArithmetic, "Basic arithmetic"},
			{WordProblems, "Word problems"},
			{TimeClock, "Time and clocks"},
			{MoneyChange, "Money and change"},
			{MultiplicationDivision, "Multiplication and division"},
			{NumberSequences, "Number sequences"},
			{MathLogic, "Math logic"},
		},
	},
	{
		Type:                 SectionSentenceCompletion,
		Name:                 "Sentence completion",
		DefaultTime:          14 * time.Minute,
		DefaultQuestionCount: 15,
		Skills: []Skill{
			{Vocabulary, "Vocabulary"},
			{LogicalConnection, "Logical connection"},
			{SemanticContext, "Semantic context"},
			{ContrastCompletion, "Contrast completion"},
			{GeneralKnowledge, "General knowledge"},
			{IdiomsProverbs, "Idioms and proverbs"},
		},
	},
	{
		Type:                 SectionWordRelations,
		Name:                 "Word relations",
		DefaultTime:          10 * time.Minute,
		DefaultQuestionCount: 12,
		Skills: []Skill{
			{SynonymsAntonyms, "Synonyms and antonyms"},
			{PartWhole, "Part and whole"},
			{ToolUse, "Tool and use"},
			{MaterialProduct, "Material and product"},
			{CategoryItem, "Category and item"},
			{CauseEffect, "Cause and effect"},
			{VerbalAnalogy, "Verbal analogies"},
		},
	},
	{
		Type:                 SectionShapes,
		Name:                 "Shapes",
		DefaultTime:          14 * time.Minute,
		DefaultQuestionCount: 15,
		Skills: []Skill{
			{ShapeAnalogy, "Shape analogies"},
			{Transformation, "Transformations"},
			{GraphicPattern, "Graphic patterns"},
			{OddOneOut, "Odd one out"},
			{FillFrame, "Fills and frames"},
			{ShapeSequence, "Shape sequences"},
			{GraphicRule, "Graphic rules"},
			{RotationPositionCount, "Rotation, position and count"},
			{FillFrameDirection, "Fill and direction changes"},
			{MultiRuleJump, "Multi-rule jumps"},
		},
	},
	{
		Type:                 SectionNumbersInShapes,
		Name:                 "Numbers in shapes",
		DefaultTime:          15 * time.Minute,
		DefaultQuestionCount: 12,
		Skills: []Skill{
			{DividedCircle, "Divided circle"},
			{NumberPyramid, "Number pyramid"},
			{NumberFlow, "Number flow"},
			{NumberGrid, "Number grid"},
			{NumberPattern, "Number pattern"},
		},
	},
}

var (
	byType       = make(map[SectionType]SectionConfig, len(sectionConfigs))
	sectionByTag = make(map[SkillTag]SectionType)
	nameByTag    = make(map[SkillTag]string)
)

func init() {
	for _, cfg := range sectionConfigs {
		byType[cfg.Type] = cfg
		for _, s := range cfg.Skills {
			sectionByTag[s.Tag] = cfg.Type
			nameByTag[s.Tag] = s.Name
		}
	}
}

// Config returns the configuration of a section.
func Config(section SectionType) (SectionConfig, bool) {
	cfg, ok := byType[section]
	return cfg, ok
}

// Configs returns all section configurations in canonical order.
func Configs() []SectionConfig {
	out := make([]SectionConfig, len(sectionConfigs))
	copy(out, sectionConfigs)
	return out
}
