package content

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/adaptiq/internal/skills"
)

// Generator produces questions for one section.
type Generator interface {
	Section() skills.SectionType
	// Generate returns exactly count questions. rng is owned by the caller
	// and is not safe for concurrent use.
	Generate(rng *rand.Rand, difficulty skills.Difficulty, count int) []Question
}

// draft is a question body before it is stamped with id and metadata.
type draft struct {
	stem        string
	options     []string
	correct     int
	explanation string
}

type template func(r *rand.Rand, d skills.Difficulty) draft

type skillTemplates struct {
	skill     skills.SkillTag
	templates []template
}

// timing holds the recommended seconds per concrete difficulty.
type timing struct{ easy, medium, hard int }

var sectionTimes = map[skills.SectionType]timing{
	skills.SectionMath:               {65, 75, 85},
	skills.SectionSentenceCompletion: {45, 55, 70},
	skills.SectionWordRelations:      {40, 50, 60},
	skills.SectionShapes:             {50, 60, 75},
	skills.SectionNumbersInShapes:    {60, 70, 85},
}

// RecommendedTime returns the time budget in seconds for a question of
// section at a concrete difficulty.
func RecommendedTime(section skills.SectionType, d skills.Difficulty) int {
	t, ok := sectionTimes[section]
	if !ok {
		t = timing{60, 60, 60}
	}
	return t.of(d)
}

func (t timing) of(d skills.Difficulty) int {
	switch d {
	case skills.Easy:
		return t.easy
	case skills.Hard:
		return t.hard
	default:
		return t.medium
	}
}

// templateGenerator is a Generator built from per-skill templates.
type templateGenerator struct {
	section skills.SectionType
	times   timing
	skills  []skillTemplates
}

func (g *templateGenerator) Section() skills.SectionType { return g.section }

func (g *templateGenerator) Generate(r *rand.Rand, d skills.Difficulty, count int) []Question {
	if count <= 0 || len(g.skills) == 0 {
		return nil
	}
	out := make([]Question, 0, count)
	for _, i := range distribute(r, len(g.skills), count) {
		st := g.skills[i]
		level := resolveDifficulty(r, d)
		dr := pick(r, st.templates)(r, level)
		out = append(out, Question{
			ID:                 uuid.NewString(),
			Section:            g.section,
			Skill:              st.skill,
			Difficulty:         level,
			Stem:               dr.stem,
			Options:            dr.options,
			CorrectOption:      dr.correct,
			Explanation:        dr.explanation,
			RecommendedTimeSec: g.times.of(level),
			Source:             SourceGenerated,
		})
	}
	return out
}

// distribute spreads count slots across n skills: every skill gets
// max(1, count/n) slots, the rest are filled at random, then the list is
// shuffled and cut to count.
func distribute(r *rand.Rand, n, count int) []int {
	per := max(1, count/n)
	slots := make([]int, 0, max(count, n*per))
	for i := 0; i < n; i++ {
		for j := 0; j < per; j++ {
			slots = append(slots, i)
		}
	}
	for len(slots) < count {
		slots = append(slots, r.IntN(n))
	}
	shuffle(r, slots)
	return slots[:count]
}

// resolveDifficulty turns Adaptive (or anything unknown) into a concrete
// level chosen at random.
func resolveDifficulty(r *rand.Rand, d skills.Difficulty) skills.Difficulty {
	if d.Concrete() {
		return d
	}
	return pick(r, []skills.Difficulty{skills.Easy, skills.Medium, skills.Hard})
}

// span is the operand range used by numeric templates.
type span struct{ lo, hi int }

func spanFor(d skills.Difficulty) span {
	switch d {
	case skills.Easy:
		return span{2, 9}
	case skills.Hard:
		return span{5, 30}
	default:
		return span{3, 15}
	}
}

// between returns a uniform integer in [lo, hi].
func between(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func shuffle[T any](r *rand.Rand, items []T) {
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

// numericOptions builds four distinct positive options around answer.
// Common-mistake partials are tried first, then near offsets, then random
// values above the answer.
func numericOptions(r *rand.Rand, answer int, partials ...int) ([]string, int) {
	vals := []int{answer}
	seen := map[int]bool{answer: true}
	add := func(v int) {
		if len(vals) < OptionCount && v > 0 && !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	for _, p := range partials {
		add(p)
	}
	offsets := []int{-3, -2, -1, 1, 2, 3, 4, 5, -4, 6, -5, 7}
	shuffle(r, offsets)
	for _, off := range offsets {
		add(answer + off)
	}
	for len(vals) < OptionCount {
		add(max(answer, 0) + between(r, 1, 20))
	}

	shuffle(r, vals)
	opts := make([]string, len(vals))
	correct := 0
	for i, v := range vals {
		opts[i] = strconv.Itoa(v)
		if v == answer {
			correct = i
		}
	}
	return opts, correct
}

// textOptions places answer among three distinct distractors drawn from
// candidates in random order.
func textOptions(r *rand.Rand, answer string, candidates []string) ([]string, int) {
	pool := make([]string, len(candidates))
	copy(pool, candidates)
	shuffle(r, pool)

	opts := []string{answer}
	seen := map[string]bool{answer: true}
	for _, c := range pool {
		if len(opts) == OptionCount {
			break
		}
		if c != "" && !seen[c] {
			seen[c] = true
			opts = append(opts, c)
		}
	}
	shuffle(r, opts)
	for i, o := range opts {
		if o == answer {
			return opts, i
		}
	}
	return opts, 0
}

// DefaultGenerators returns the procedural generators of every section.
func DefaultGenerators() []Generator {
	return []Generator{
		newMathGenerator(),
		newSentenceGenerator(),
		newWordRelationGenerator(),
		newShapeGenerator(),
		newNumbersInShapesGenerator(),
	}
}
