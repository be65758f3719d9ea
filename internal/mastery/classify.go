package mastery

const (
	// WeakThreshold is the score below which a skill is weak.
	WeakThreshold = 40.0

	// StrongThreshold is the score above which a skill is strong.
	StrongThreshold = 75.0

	// MediumCeiling is the upper bound of the medium band.
	MediumCeiling = 70.0

	// LosingStreakLen is the number of trailing misses that mark a skill weak.
	LosingStreakLen = 3
)

// IsWeak reports whether a skill needs focused practice: a low score or a
// run of recent misses.
func IsWeak(s *SkillStats) bool {
	return s.MasteryScore < WeakThreshold || LosingStreak(s.RecentResults)
}

// IsStrong reports whether a skill is well mastered.
func IsStrong(s *SkillStats) bool {
	return s.MasteryScore > StrongThreshold
}

// IsMedium reports whether the score lies in the medium band [40, 70].
// Scores in (70, 75] are neither medium nor strong.
func IsMedium(s *SkillStats) bool {
	return s.MasteryScore >= WeakThreshold && s.MasteryScore <= MediumCeiling
}

// LosingStreak reports whether the last LosingStreakLen results are all
// incorrect. Shorter histories never count as a streak.
func LosingStreak(recent []bool) bool {
	if len(recent) < LosingStreakLen {
		return false
	}
	for _, ok := range recent[len(recent)-LosingStreakLen:] {
		if ok {
			return false
		}
	}
	return true
}

// Level is a coarse classification used by reports.
type Level string

const (
	LevelWeak   Level = "weak"
	LevelMedium Level = "medium"
	LevelStrong Level = "strong"
	LevelSteady Level = "steady"
)

// Classify returns the report level of a record. Weak wins over strong.
func Classify(s *SkillStats) Level {
	switch {
	case IsWeak(s):
		return LevelWeak
	case IsStrong(s):
		return LevelStrong
	case IsMedium(s):
		return LevelMedium
	default:
		return LevelSteady
	}
}
