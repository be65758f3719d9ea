package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/skills"
)

// Mode is the kind of session.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeAdaptive Mode = "adaptive"
	ModeMiniExam Mode = "mini_exam"
	ModeFullExam Mode = "full_exam"
)

// TimerMode controls which countdown the UI shows.
type TimerMode string

const (
	TimerNone        TimerMode = "none"
	TimerPerQuestion TimerMode = "per_question"
	TimerPerSection  TimerMode = "per_section"
)

// ParseMode accepts a mode name with dashes or underscores.
func ParseMode(v string) (Mode, error) {
	m := Mode(normalize(v))
	switch m {
	case ModePractice, ModeAdaptive, ModeMiniExam, ModeFullExam:
		return m, nil
	}
	return "", fmt.Errorf("unknown session mode %q", v)
}

// ParseTimerMode accepts a timer mode name with dashes or underscores.
func ParseTimerMode(v string) (TimerMode, error) {
	m := TimerMode(normalize(v))
	switch m {
	case TimerNone, TimerPerQuestion, TimerPerSection:
		return m, nil
	case "":
		return TimerNone, nil
	}
	return "", fmt.Errorf("unknown timer mode %q", v)
}

func normalize(v string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")
}

// MiniExamSections is the number of sections in a default mini exam.
const MiniExamSections = 2

// Config describes what a session contains.
type Config struct {
	Sections []skills.SectionType

	// QuestionsPerSection of zero means each section's default count.
	QuestionsPerSection int

	Difficulty skills.Difficulty
	TimerMode  TimerMode

	// TimeLimitSec overrides the per-section time limit. Zero means the
	// section default. Only used with TimerPerSection.
	TimeLimitSec int
}

// DefaultConfig returns the standard configuration of mode.
func DefaultConfig(mode Mode) Config {
	switch mode {
	case ModeAdaptive:
		return Config{
			Sections:            skills.AllSections(),
			QuestionsPerSection: 5,
			Difficulty:          skills.Adaptive,
			TimerMode:           TimerPerQuestion,
		}
	case ModeMiniExam:
		return Config{
			Sections:            skills.AllSections()[:MiniExamSections],
			QuestionsPerSection: 5,
			Difficulty:          skills.Medium,
			TimerMode:           TimerPerSection,
		}
	case ModeFullExam:
		return Config{
			Sections:   skills.AllSections(),
			Difficulty: skills.Medium,
			TimerMode:  TimerPerSection,
		}
	default:
		return Config{
			Sections:            []skills.SectionType{skills.SectionMath},
			QuestionsPerSection: 5,
			Difficulty:          skills.Medium,
			TimerMode:           TimerNone,
		}
	}
}

// QuestionState is a question as it was presented and answered.
type QuestionState struct {
	Question     content.Question
	ShownAt      time.Time
	AnsweredAt   time.Time
	Answered     bool
	Selected     int
	Correct      bool
	TimeSpentSec int
}

// Section is one block of questions with an optional time limit.
type Section struct {
	Type         skills.SectionType
	TimeLimitSec int
	StartedAt    time.Time
	EndedAt      time.Time
	Questions    []*QuestionState
}

// Answered returns the number of answered questions and how many were right.
func (s *Section) Answered() (answered, correct int) {
	for _, q := range s.Questions {
		if q.Answered {
			answered++
			if q.Correct {
				correct++
			}
		}
	}
	return answered, correct
}

// Session is a running or finished session.
type Session struct {
	ID        string
	UserID    string
	Mode      Mode
	Config    Config
	StartedAt time.Time
	EndedAt   time.Time
	Sections  []*Section

	// Set by End. TotalScore is the rounded percentage of answered
	// questions that were correct.
	TotalScore   float64
	TotalTimeSec int
}

// QuestionCount returns the number of questions across all sections.
func (s *Session) QuestionCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Questions)
	}
	return n
}

// Progress locates the current question. Indices are 1-based.
type Progress struct {
	Section        int
	Question       int
	TotalQuestions int // in the current section
	TotalSections  int
}

// Result is the feedback for an answer.
type Result struct {
	Correct       bool
	CorrectOption int
	Explanation   string
	TimeSpentSec  int

	// MasteryScore after the update. Zero when the answer was a repeat.
	MasteryScore float64
}
