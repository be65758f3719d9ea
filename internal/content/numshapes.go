package content

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/adaptiq/internal/skills"
)

func newNumbersInShapesGenerator() Generator {
	return &templateGenerator{
		section: skills.SectionNumbersInShapes,
		times:   sectionTimes[skills.SectionNumbersInShapes],
		skills: []skillTemplates{
			{skills.DividedCircle, []template{dividedCircle}},
			{skills.NumberPyramid, []template{numberPyramid}},
			{skills.NumberFlow, []template{flowForward, flowBackward}},
			{skills.NumberGrid, []template{numberGrid}},
			{skills.NumberPattern, []template{triangleCenter}},
		},
	}
}

func joinInts(vals []int) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ", ")
}

func sum(vals []int) int {
	t := 0
	for _, v := range vals {
		t += v
	}
	return t
}

func dividedCircle(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	parts := 3
	if d == skills.Hard {
		parts = 4
	}
	draw := func() []int {
		v := make([]int, parts)
		for i := range v {
			v[i] = between(r, 1, s.hi)
		}
		return v
	}
	first, second := draw(), draw()
	ans := sum(second)
	opts, idx := numericOptions(r, ans, ans-second[parts-1], ans+1, sum(first))
	return draft{
		stem: fmt.Sprintf("A circle is cut into %d parts with the numbers %s, and its middle shows %d. Another circle has %s. What number is in its middle?",
			parts, joinInts(first), sum(first), joinInts(second)),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The middle is the sum of the parts: %s = %d.", strings.ReplaceAll(joinInts(second), ", ", " + "), ans),
	}
}

func numberPyramid(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	width := 3
	if d == skills.Hard {
		width = 4
	}
	row := make([]int, width)
	for i := range row {
		row[i] = between(r, 1, s.hi)
	}
	base := append([]int(nil), row...)
	for len(row) > 1 {
		next := make([]int, len(row)-1)
		for i := range next {
			next[i] = row[i] + row[i+1]
		}
		row = next
	}
	ans := row[0]
	opts, idx := numericOptions(r, ans, sum(base), ans-base[0], ans+base[width-1])
	return draft{
		stem:        fmt.Sprintf("In a number pyramid each block is the sum of the two blocks below it. The bottom row is %s. What number is at the top?", joinInts(base)),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Adding neighbouring blocks row by row from %s gives %d at the top.", joinInts(base), ans),
	}
}

type flowStep struct {
	op  string
	arg int
}

func (f flowStep) apply(v int) int {
	switch f.op {
	case "+":
		return v + f.arg
	case "-":
		return v - f.arg
	default:
		return v * f.arg
	}
}

func (f flowStep) String() string { return f.op + fmt.Sprint(f.arg) }

func flowSteps(r *rand.Rand, d skills.Difficulty) []flowStep {
	s := spanFor(d)
	steps := []flowStep{{"+", between(r, 1, s.hi)}, {"×", between(r, 2, 4)}}
	if d != skills.Easy {
		steps = append(steps, flowStep{"-", between(r, 1, s.lo+2)})
	}
	return steps
}

func describeFlow(steps []flowStep) string {
	s := make([]string, len(steps))
	for i, st := range steps {
		s[i] = "[" + st.String() + "]"
	}
	return strings.Join(s, " → ")
}

func flowForward(r *rand.Rand, d skills.Difficulty) draft {
	steps := flowSteps(r, d)
	start := between(r, 3, spanFor(d).hi)
	v := start
	for _, st := range steps {
		v = st.apply(v)
	}
	// Ignoring the multiplication order is the usual slip.
	wrong := start*steps[1].arg + steps[0].arg
	if len(steps) > 2 {
		wrong -= steps[2].arg
	}
	opts, idx := numericOptions(r, v, wrong, v+steps[0].arg)
	return draft{
		stem:        fmt.Sprintf("The number %d goes through %s. What comes out?", start, describeFlow(steps)),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Apply each step in order starting from %d to get %d.", start, v),
	}
}

func flowBackward(r *rand.Rand, d skills.Difficulty) draft {
	steps := flowSteps(r, d)
	start := between(r, 3, spanFor(d).hi)
	v := start
	for _, st := range steps {
		v = st.apply(v)
	}
	opts, idx := numericOptions(r, start, v-steps[0].arg, start+steps[0].arg)
	return draft{
		stem:        fmt.Sprintf("A number goes through %s and %d comes out. What number went in?", describeFlow(steps), v),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Undo the steps from the end: starting at %d and reversing each one gives %d.", v, start),
	}
}

// gridRule combines the first two cells of a row into the third.
type gridRule struct {
	desc  string
	apply func(a, b int) int
}

var gridRules = map[skills.Difficulty]gridRule{
	skills.Easy:   {"the third number is the sum of the first two", func(a, b int) int { return a + b }},
	skills.Medium: {"the third number is the product of the first two", func(a, b int) int { return a * b }},
	skills.Hard:   {"the third number is the sum of the first two, doubled", func(a, b int) int { return (a + b) * 2 }},
}

func numberGrid(r *rand.Rand, d skills.Difficulty) draft {
	rule := gridRules[d]
	hi := spanFor(d).hi
	if d == skills.Medium {
		hi = 9
	}
	var rows []string
	var a, b int
	for i := 0; i < 3; i++ {
		a, b = between(r, 1, hi), between(r, 1, hi)
		if i < 2 {
			rows = append(rows, fmt.Sprintf("[%d %d %d]", a, b, rule.apply(a, b)))
		}
	}
	ans := rule.apply(a, b)
	rows = append(rows, fmt.Sprintf("[%d %d ?]", a, b))
	opts, idx := numericOptions(r, ans, a+b, a*b, (a+b)*2)
	return draft{
		stem:        fmt.Sprintf("Every row of the grid follows the same rule: %s. Which number replaces the ?", strings.Join(rows, " ")),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("In each row %s, so the answer is %d.", rule.desc, ans),
	}
}

func triangleCenter(r *rand.Rand, d skills.Difficulty) draft {
	rule := func(a, b, c int) int { return a + b + c }
	desc := "the centre is the sum of the corners"
	switch d {
	case skills.Medium:
		rule = func(a, b, c int) int { return a*b - c }
		desc = "the centre is the first two corners multiplied, minus the third"
	case skills.Hard:
		rule = func(a, b, c int) int { return (a + b) * c }
		desc = "the centre is the sum of the first two corners times the third"
	}
	hi := min(spanFor(d).hi, 12)
	tri := func() (int, int, int) {
		a, b := between(r, 2, hi), between(r, 2, hi)
		return a, b, between(r, 1, min(a*b-1, hi))
	}
	a1, b1, c1 := tri()
	a2, b2, c2 := tri()
	a3, b3, c3 := tri()
	ans := rule(a3, b3, c3)
	opts, idx := numericOptions(r, ans, a3+b3+c3, a3*b3+c3, (a3+b3)*c3)
	return draft{
		stem: fmt.Sprintf("Each triangle has three corner numbers and one centre number. Triangle 1: corners %d, %d, %d, centre %d. Triangle 2: corners %d, %d, %d, centre %d. Triangle 3: corners %d, %d, %d. What is its centre?",
			a1, b1, c1, rule(a1, b1, c1), a2, b2, c2, rule(a2, b2, c2), a3, b3, c3),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("In every triangle %s: the answer is %d.", desc, ans),
	}
}
