package skills

import (
	"fmt"
	"strings"
)

// SectionType is one of the five top-level question domains.
type SectionType string

const (
	SectionMath               SectionType = "math"
	SectionSentenceCompletion SectionType = "sentence_completion"
	SectionWordRelations      SectionType = "word_relations"
	SectionShapes             SectionType = "shapes"
	SectionNumbersInShapes    SectionType = "numbers_in_shapes"
)

// AllSections returns every section in canonical order.
func AllSections() []SectionType {
	return []SectionType{
		SectionMath,
		SectionSentenceCompletion,
		SectionWordRelations,
		SectionShapes,
		SectionNumbersInShapes,
	}
}

// Valid reports whether s is a known section.
func (s SectionType) Valid() bool {
	_, ok := byType[s]
	return ok
}

// DisplayName returns a human-readable name for a section.
func (s SectionType) DisplayName() string {
	if cfg, ok := byType[s]; ok {
		return cfg.Name
	}
	return string(s)
}

// ParseSection accepts the canonical id or a dashed variant ("word-relations").
func ParseSection(v string) (SectionType, error) {
	s := SectionType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_"))
	if !s.Valid() {
		return "", fmt.Errorf("unknown section %q", v)
	}
	return s, nil
}

// Difficulty is the requested difficulty of generated content.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"

	// Adaptive asks the generator to pick a concrete level per question.
	Adaptive Difficulty = "adaptive"
)

// Concrete reports whether d is one of easy, medium or hard.
func (d Difficulty) Concrete() bool {
	return d == Easy || d == Medium || d == Hard
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(v string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(v))); d {
	case Easy, Medium, Hard, Adaptive:
		return d, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be easy, medium, hard or adaptive", v)
}
