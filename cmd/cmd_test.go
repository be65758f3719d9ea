package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/content"
	"github.com/abhisek/adaptiq/internal/mastery"
	"github.com/abhisek/adaptiq/internal/plan"
	"github.com/abhisek/adaptiq/internal/session"
	"github.com/abhisek/adaptiq/internal/skills"
	"github.com/abhisek/adaptiq/internal/store"
)

func practiceFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "practice"}
	addPracticeFlags(c)
	if err := c.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c
}

func TestPracticeConfigDefaults(t *testing.T) {
	mode, cfg, err := practiceConfig(practiceFlags(t))
	if err != nil {
		t.Fatalf("practiceConfig: %v", err)
	}
	if mode != session.ModePractice {
		t.Errorf("mode = %q, want practice", mode)
	}
	if len(cfg.Sections) != 1 || cfg.Sections[0] != skills.SectionMath {
		t.Errorf("Sections = %v, want [math]", cfg.Sections)
	}
	if cfg.QuestionsPerSection != 5 {
		t.Errorf("QuestionsPerSection = %d, want 5", cfg.QuestionsPerSection)
	}
}

func TestPracticeConfigFlags(t *testing.T) {
	c := practiceFlags(t,
		"--mode", "mini_exam",
		"--section", "shapes", "--section", "word-relations",
		"--count", "3", "--difficulty", "hard",
		"--timer", "per_question", "--time-limit", "90")

	mode, cfg, err := practiceConfig(c)
	if err != nil {
		t.Fatalf("practiceConfig: %v", err)
	}
	if mode != session.ModeMiniExam {
		t.Errorf("mode = %q, want mini_exam", mode)
	}
	want := []skills.SectionType{skills.SectionShapes, skills.SectionWordRelations}
	if len(cfg.Sections) != 2 || cfg.Sections[0] != want[0] || cfg.Sections[1] != want[1] {
		t.Errorf("Sections = %v, want %v", cfg.Sections, want)
	}
	if cfg.QuestionsPerSection != 3 {
		t.Errorf("QuestionsPerSection = %d, want 3", cfg.QuestionsPerSection)
	}
	if cfg.Difficulty != skills.Hard {
		t.Errorf("Difficulty = %q, want hard", cfg.Difficulty)
	}
	if cfg.TimerMode != session.TimerPerQuestion {
		t.Errorf("TimerMode = %q, want per_question", cfg.TimerMode)
	}
	if cfg.TimeLimitSec != 90 {
		t.Errorf("TimeLimitSec = %d, want 90", cfg.TimeLimitSec)
	}
}

func TestPracticeConfigErrors(t *testing.T) {
	tests := [][]string{
		{"--mode", "marathon"},
		{"--section", "poetry"},
		{"--count", "-1"},
		{"--difficulty", "extreme"},
		{"--timer", "stopwatch"},
		{"--time-limit", "-5"},
	}
	for _, args := range tests {
		if _, _, err := practiceConfig(practiceFlags(t, args...)); err == nil {
			t.Errorf("practiceConfig(%v) succeeded, want error", args)
		}
	}
}

func TestWritePlanPutsPracticePlanLast(t *testing.T) {
	recs := []plan.Recommendation{
		{ID: "p", Type: plan.TypePracticePlan, Message: "Practise 20 questions"},
		{ID: "f", Type: plan.TypeFocusArea, Message: "Focus on Word problems"},
	}
	var buf bytes.Buffer
	writePlan(&buf, recs)
	out := buf.String()

	focus := strings.Index(out, "Focus on Word problems")
	practice := strings.Index(out, "Practise 20 questions")
	if focus < 0 || practice < 0 {
		t.Fatalf("output = %q, want both messages", out)
	}
	if practice < focus {
		t.Error("practice plan should be printed after the focus areas")
	}
	if !strings.Contains(out, "[f]") {
		t.Errorf("output = %q, want recommendation ids", out)
	}
}

func TestWriteStats(t *testing.T) {
	weak := mastery.NewSkillStats(mastery.Key{UserID: "kid", Section: skills.SectionMath, Skill: skills.WordProblems})
	weak.MasteryScore = 20
	weak.Attempts = 4
	weak.CorrectCount = 1
	strong := mastery.NewSkillStats(mastery.Key{UserID: "kid", Section: skills.SectionShapes, Skill: skills.Tags(skills.SectionShapes)[0]})
	strong.MasteryScore = 90
	strong.Attempts = 10
	strong.CorrectCount = 9

	var buf bytes.Buffer
	writeStats(&buf, []*mastery.SkillStats{weak, strong})
	out := buf.String()

	for _, want := range []string{"Word problems", "25%", "90%", "2 skills: 1 weak, 0 medium, 1 strong"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"D", 3, true},
		{"2", 1, true},
		{"5", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, 4)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPreviewQuestions(t *testing.T) {
	qs := []content.Question{
		{Stem: "2 + 2 = ?", Options: []string{"3", "4", "5", "6"}, CorrectOption: 1, Skill: skills.BasicArithmetic},
		{Stem: "3 + 3 = ?", Options: []string{"6", "7", "8", "9"}, CorrectOption: 0, Skill: skills.BasicArithmetic},
		{Stem: "1 + 1 = ?", Options: []string{"1", "2", "3", "4"}, CorrectOption: 1, Skill: skills.BasicArithmetic},
	}
	var out bytes.Buffer
	correct := previewQuestions(&out, strings.NewReader("b\n\nc\n"), qs)
	if correct != 1 {
		t.Errorf("correct = %d, want 1", correct)
	}
	if !strings.Contains(out.String(), "(skipped)") {
		t.Error("empty answer should be skipped")
	}
	if !strings.Contains(out.String(), "Answer: B) 2") {
		t.Errorf("output = %q, want the correct answer for the wrong guess", out.String())
	}
}

func TestVersionString(t *testing.T) {
	if got := versionString(); !strings.HasPrefix(got, "adaptiq ") {
		t.Errorf("versionString() = %q, want adaptiq prefix", got)
	}
}

func TestSkillsAtLevel(t *testing.T) {
	st, err := store.Open("file:stats_level?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()

	svc := mastery.NewService(st.SkillStatsRepo(), nil)
	ctx := context.Background()
	answer := func(skill skills.SkillTag, correct bool, spent float64) {
		t.Helper()
		_, err := svc.UpdateMastery(ctx, mastery.Answer{
			Key:          mastery.Key{UserID: "kid", Section: skills.SectionMath, Skill: skill},
			Correct:      correct,
			TimeSpentSec: spent, RecommendedTimeSec: 60,
		})
		if err != nil {
			t.Fatalf("UpdateMastery: %v", err)
		}
	}
	// 50 -> 35: weak.
	answer(skills.WordProblems, false, 0)
	// 50 -> 60: medium.
	answer(skills.BasicArithmetic, true, 60)
	// 50 -> 65 -> 80: strong.
	answer(skills.TimeClock, true, 0)
	answer(skills.TimeClock, true, 0)

	tests := []struct {
		level string
		want  []skills.SkillTag
	}{
		{"weak", []skills.SkillTag{skills.WordProblems}},
		{"medium", []skills.SkillTag{skills.BasicArithmetic}},
		{"STRONG", []skills.SkillTag{skills.TimeClock}},
	}
	for _, tt := range tests {
		got, err := skillsAtLevel(ctx, svc, "kid", tt.level)
		if err != nil {
			t.Fatalf("skillsAtLevel(%q): %v", tt.level, err)
		}
		if len(got) != len(tt.want) || got[0].Skill != tt.want[0] {
			t.Errorf("skillsAtLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}

	all, err := skillsAtLevel(ctx, svc, "kid", "")
	if err != nil || len(all) != 3 {
		t.Errorf("skillsAtLevel(\"\") = %d skills, %v; want 3", len(all), err)
	}
	if _, err := skillsAtLevel(ctx, svc, "kid", "wobbly"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestWritePoolSummary(t *testing.T) {
	pool := content.NewPool(content.Options{})
	if err := pool.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := pool.Generate(context.Background(), skills.SectionMath, skills.Easy, 7); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var buf bytes.Buffer
	writePoolSummary(&buf, pool, skills.SectionMath)
	if !strings.Contains(buf.String(), "Pool: 7 questions") {
		t.Errorf("output = %q, want pool size", buf.String())
	}
	if !strings.Contains(buf.String(), "Word problems") {
		t.Errorf("output = %q, want per-skill counts", buf.String())
	}
}
