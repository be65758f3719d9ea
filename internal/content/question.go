package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/adaptiq/internal/skills"
)

// OptionCount is the number of options every question carries.
const OptionCount = 4

// SourceKind records where a question came from.
type SourceKind string

const (
	SourceGenerated SourceKind = "generated"
	SourceLLM       SourceKind = "llm"
)

// Question is an immutable multiple-choice item.
type Question struct {
	ID                 string
	Section            skills.SectionType
	Skill              skills.SkillTag
	Difficulty         skills.Difficulty
	Stem               string
	Options            []string
	CorrectOption      int
	Explanation        string
	RecommendedTimeSec int
	Source             SourceKind
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectOption
}

// Source supplies fresh questions for a section.
type Source interface {
	// Generate returns up to count questions. Fewer are returned when the
	// source cannot fill the request; that is not an error.
	Generate(ctx context.Context, section skills.SectionType, difficulty skills.Difficulty, count int) ([]Question, error)
}

// ErrInvalidQuestion wraps every validation failure.
var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks the structural invariants of q.
func Validate(q Question) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w %s: %s", ErrInvalidQuestion, q.ID, fmt.Sprintf(format, args...))
	}
	switch {
	case q.ID == "":
		return fail("empty id")
	case q.Stem == "":
		return fail("empty stem")
	case !q.Section.Valid():
		return fail("unknown section %q", q.Section)
	case !skills.BelongsTo(q.Section, q.Skill):
		return fail("skill %q is not part of %q", q.Skill, q.Section)
	case !q.Difficulty.Concrete():
		return fail("difficulty %q is not concrete", q.Difficulty)
	case len(q.Options) != OptionCount:
		return fail("%d options, want %d", len(q.Options), OptionCount)
	case q.CorrectOption < 0 || q.CorrectOption >= len(q.Options):
		return fail("correct option %d out of range", q.CorrectOption)
	case q.RecommendedTimeSec <= 0:
		return fail("recommended time %d", q.RecommendedTimeSec)
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o == "" {
			return fail("empty option")
		}
		if seen[o] {
			return fail("duplicate option %q", o)
		}
		seen[o] = true
	}
	return nil
}
