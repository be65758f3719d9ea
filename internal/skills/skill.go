package skills

// SkillTag is a leaf-level competency. Its value space is the union of the
// per-section skill vocabularies below.
type SkillTag string

// MathSkill is a skill of the math section.
type MathSkill = SkillTag

const (
	BasicArithmetic        MathSkill = "basic_arithmetic"
	WordProblems           MathSkill = "word_problems"
	TimeClock              MathSkill = "time_clock"
	MoneyChange            MathSkill = "money_change"
	MultiplicationDivision MathSkill = "multiplication_division"
	NumberSequences        MathSkill = "number_sequences"
	MathLogic              MathSkill = "math_logic"
)

// SentenceSkill is a skill of the sentence completion section.
type SentenceSkill = SkillTag

const (
	Vocabulary         SentenceSkill = "vocabulary"
	LogicalConnection  SentenceSkill = "logical_connection"
	SemanticContext    SentenceSkill = "semantic_context"
	ContrastCompletion SentenceSkill = "contrast_completion"
	GeneralKnowledge   SentenceSkill = "general_knowledge"
	IdiomsProverbs     SentenceSkill = "idioms_proverbs"
)

// WordRelationSkill is a skill of the word relations section.
type WordRelationSkill = SkillTag

const (
	SynonymsAntonyms WordRelationSkill = "synonyms_antonyms"
	PartWhole        WordRelationSkill = "part_whole"
	ToolUse          WordRelationSkill = "tool_use"
	MaterialProduct  WordRelationSkill = "material_product"
	CategoryItem     WordRelationSkill = "category_item"
	CauseEffect      WordRelationSkill = "cause_effect"
	VerbalAnalogy    WordRelationSkill = "verbal_analogy"
)

// ShapeSkill is a skill of the shapes section.
type ShapeSkill = SkillTag

const (
	ShapeAnalogy          ShapeSkill = "shape_analogy"
	Transformation        ShapeSkill = "transformation"
	GraphicPattern        ShapeSkill = "graphic_pattern"
	OddOneOut             ShapeSkill = "odd_one_out"
	FillFrame             ShapeSkill = "fill_frame"
	ShapeSequence         ShapeSkill = "shape_sequence"
	GraphicRule           ShapeSkill = "graphic_rule"
	RotationPositionCount ShapeSkill = "rotation_position_count"
	FillFrameDirection    ShapeSkill = "fill_frame_direction"
	MultiRuleJump         ShapeSkill = "multi_rule_jump"
)

// NumbersInShapesSkill is a skill of the numbers-in-shapes section.
type NumbersInShapesSkill = SkillTag

const (
	DividedCircle NumbersInShapesSkill = "divided_circle"
	NumberPyramid NumbersInShapesSkill = "number_pyramid"
	NumberFlow    NumbersInShapesSkill = "number_flow"
	NumberGrid    NumbersInShapesSkill = "number_grid"
	NumberPattern NumbersInShapesSkill = "number_pattern"
)

// Skill pairs a tag with its display name.
type Skill struct {
	Tag  SkillTag
	Name string
}

// SectionOf returns the section that owns tag.
func SectionOf(tag SkillTag) (SectionType, bool) {
	s, ok := sectionByTag[tag]
	return s, ok
}

// BelongsTo reports whether tag is part of section's vocabulary.
func BelongsTo(section SectionType, tag SkillTag) bool {
	s, ok := sectionByTag[tag]
	return ok && s == section
}

// Name returns the display name of tag, or the tag itself when unknown.
func Name(tag SkillTag) string {
	if n, ok := nameByTag[tag]; ok {
		return n
	}
	return string(tag)
}

// Tags returns the skill tags of a section in display order.
func Tags(section SectionType) []SkillTag {
	cfg, ok := byType[section]
	if !ok {
		return nil
	}
	tags := make([]SkillTag, len(cfg.Skills))
	for i, s := range cfg.Skills {
		tags[i] = s.Tag
	}
	return tags
}
