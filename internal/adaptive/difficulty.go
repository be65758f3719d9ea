package adaptive

import "github.com/abhisek/adaptiq/internal/skills"

// Difficulty boundaries on the mastery scale.
const (
	EasyBelow   = 35.0
	MediumBelow = 65.0
)

// DifficultyFromMastery maps a mastery score to the difficulty that
// stretches a learner without overwhelming them.
func DifficultyFromMastery(score float64) skills.Difficulty {
	switch {
	case score < EasyBelow:
		return skills.Easy
	case score < MediumBelow:
		return skills.Medium
	default:
		return skills.Hard
	}
}
