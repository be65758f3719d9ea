package mastery

import (
	"math"
	"time"
)

// Answer is one graded response fed into the mastery engine.
type Answer struct {
	Key
	Correct            bool
	TimeSpentSec       float64
	RecommendedTimeSec float64
}

// MaxTimeSec caps the time folded into the running average.
const MaxTimeSec = 24 * 60 * 60

// TimeRatio returns spent/recommended, or the neutral 1.0 when no finite
// recommendation is available. An unbounded spent time gives +Inf, which
// Delta treats as the slowest possible answer.
func TimeRatio(spentSec, recommendedSec float64) float64 {
	spentSec = sanitizeSeconds(spentSec)
	recommendedSec = sanitizeSeconds(recommendedSec)
	if recommendedSec <= 0 || math.IsInf(recommendedSec, 1) {
		return 1.0
	}
	return spentSec / recommendedSec
}

// Delta returns the signed score change for an answer with the given
// time ratio. Correct answers earn 5..15 points with a speed bonus for
// beating 1.5x the recommended time; incorrect answers cost 8..15 points,
// more when the learner rushed.
func Delta(correct bool, ratio float64) float64 {
	if correct {
		return 5 + clamp(1.5-ratio, 0, 1)*10
	}
	return -(8 + clamp(1-ratio*0.5, 0, 1)*7)
}

// Apply folds a into stats in place and stamps it with now.
func Apply(stats *SkillStats, a Answer, now time.Time) {
	ratio := TimeRatio(a.TimeSpentSec, a.RecommendedTimeSec)
	spent := math.Min(sanitizeSeconds(a.TimeSpentSec), MaxTimeSec)

	stats.MasteryScore = clamp(stats.MasteryScore+Delta(a.Correct, ratio), 0, 100)

	stats.Attempts++
	if a.Correct {
		stats.CorrectCount++
	}

	n := float64(stats.Attempts)
	stats.AvgTimeSec = (stats.AvgTimeSec*(n-1) + spent) / n

	recordResult(stats, a.Correct)
	stats.LastUpdated = now
}

// recordResult appends to the rolling window, dropping the oldest entries.
func recordResult(stats *SkillStats, correct bool) {
	stats.RecentResults = append(stats.RecentResults, correct)
	if len(stats.RecentResults) > RecentWindow {
		stats.RecentResults = stats.RecentResults[len(stats.RecentResults)-RecentWindow:]
	}
}

// sanitizeSeconds maps NaN and negative durations to zero. +Inf is kept.
func sanitizeSeconds(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
