package mastery

import "testing"

func TestDelta(t *testing.T) {
	tests := []struct {
		correct bool
		ratio   float64
		want    float64
	}{
		{true, 0, 15},
		{true, 0.5, 15},
		{true, 1.0, 10},
		{true, 1.5, 5},
		{true, 3.0, 5},
		{false, 0, -15},
		{false, 1.0, -11.5},
		{false, 2.0, -8},
		{false, 5.0, -8},
	}
	for _, tt := range tests {
		if got := Delta(tt.correct, tt.ratio); !approx(got, tt.want) {
			t.Errorf("Delta(%v, %v) = %v, want %v", tt.correct, tt.ratio, got, tt.want)
		}
	}
}

func TestLosingStreak(t *testing.T) {
	tests := []struct {
		recent []bool
		want   bool
	}{
		{nil, false},
		{[]bool{false, false}, false},
		{[]bool{false, false, false}, true},
		{[]bool{true, false, false, false}, true},
		{[]bool{false, false, false, true}, false},
		{[]bool{false, true, false, false}, false},
	}
	for _, tt := range tests {
		if got := LosingStreak(tt.recent); got != tt.want {
			t.Errorf("LosingStreak(%v) = %v, want %v", tt.recent, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score  float64
		recent []bool
		want   Level
	}{
		{39.9, nil, LevelWeak},
		{40, nil, LevelMedium},
		{70, nil, LevelMedium},
		{72, nil, LevelSteady},
		{75, nil, LevelSteady},
		{75.1, nil, LevelStrong},
		{95, []bool{false, false, false}, LevelWeak},
	}
	for _, tt := range tests {
		s := &SkillStats{MasteryScore: tt.score, RecentResults: tt.recent}
		if got := Classify(s); got != tt.want {
			t.Errorf("Classify(score=%v, recent=%v) = %s, want %s", tt.score, tt.recent, got, tt.want)
		}
	}
}

func TestTimeRatio(t *testing.T) {
	if got := TimeRatio(30, 0); got != 1 {
		t.Errorf("TimeRatio(30, 0) = %v, want 1", got)
	}
	if got := TimeRatio(-4, 60); got != 0 {
		t.Errorf("TimeRatio(-4, 60) = %v, want 0", got)
	}
	if got := TimeRatio(90, 60); got != 1.5 {
		t.Errorf("TimeRatio(90, 60) = %v, want 1.5", got)
	}
}
