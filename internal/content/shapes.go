package content

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/adaptiq/internal/skills"
)

// polygons maps side counts to shape names.
var polygons = map[int]string{
	3: "triangle", 4: "square", 5: "pentagon", 6: "hexagon",
	7: "heptagon", 8: "octagon", 9: "nonagon", 10: "decagon",
}

func polygonNames(except ...int) []string {
	skip := map[int]bool{}
	for _, e := range except {
		skip[e] = true
	}
	var out []string
	for n := 3; n <= 10; n++ {
		if !skip[n] {
			out = append(out, polygons[n])
		}
	}
	return out
}

var (
	directions4 = []string{"up", "right", "down", "left"}
	directions8 = []string{"up", "up-right", "right", "down-right", "down", "down-left", "left", "up-left"}
	corners     = []string{"top-left", "top-right", "bottom-right", "bottom-left"}
	fills       = []string{"filled", "empty", "striped"}
	symbols     = []string{"●", "▲", "■", "◆", "★", "○", "△"}
	plainShapes = []string{"circle", "square", "triangle", "star"}
)

func newShapeGenerator() Generator {
	return &templateGenerator{
		section: skills.SectionShapes,
		times:   sectionTimes[skills.SectionShapes],
		skills: []skillTemplates{
			{skills.ShapeAnalogy, []template{sideAnalogy}},
			{skills.Transformation, []template{arrowTurn}},
			{skills.GraphicPattern, []template{symbolPattern}},
			{skills.OddOneOut, []template{fromBank(oddOneOutBank)}},
			{skills.FillFrame, []template{fillGrid}},
			{skills.ShapeSequence, []template{growingShapes}},
			{skills.GraphicRule, []template{sideSum}},
			{skills.RotationPositionCount, []template{cornerWalk}},
			{skills.FillFrameDirection, []template{fillAndTurn}},
			{skills.MultiRuleJump, []template{hexagonJump}},
		},
	}
}

func sideAnalogy(r *rand.Rand, d skills.Difficulty) draft {
	step := 1
	if d == skills.Hard {
		step = 2
	}
	a := between(r, 3, 10-2*step)
	c := between(r, 3, 10-step)
	for c == a {
		c = between(r, 3, 10-step)
	}
	ans := c + step
	opts, idx := textOptions(r, polygons[ans], polygonNames(ans))
	return draft{
		stem:        fmt.Sprintf("A %s turns into a %s. In the same way, a %s turns into a ___.", polygons[a], polygons[a+step], polygons[c]),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Each shape gains %d side(s): %d + %d = %d sides, a %s.", step, c, step, ans, polygons[ans]),
	}
}

func arrowTurn(r *rand.Rand, d skills.Difficulty) draft {
	dirs := directions4
	unit := 90
	if d == skills.Hard {
		dirs = directions8
		unit = 45
	}
	start := r.IntN(len(dirs))
	turns := 1
	if d != skills.Easy {
		turns = 2
	}
	pos := start
	var steps []string
	for i := 0; i < turns; i++ {
		k := between(r, 1, len(dirs)-1)
		if r.IntN(2) == 0 {
			pos = (pos + k) % len(dirs)
			steps = append(steps, fmt.Sprintf("%d° clockwise", k*unit))
		} else {
			pos = (pos - k + len(dirs)) % len(dirs)
			steps = append(steps, fmt.Sprintf("%d° counter-clockwise", k*unit))
		}
	}
	opts, idx := textOptions(r, dirs[pos], dirs)
	return draft{
		stem:        fmt.Sprintf("An arrow points %s. It turns %s. Where does it point now?", dirs[start], strings.Join(steps, ", then ")),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Following the turns from %s ends at %s.", dirs[start], dirs[pos]),
	}
}

func symbolPattern(r *rand.Rand, d skills.Difficulty) draft {
	n := 3
	switch d {
	case skills.Easy:
		n = 2
	case skills.Hard:
		n = 4
	}
	syms := make([]string, len(symbols))
	copy(syms, symbols)
	shuffle(r, syms)
	unit := syms[:n]
	shown := n*2 + between(r, 0, n-1)
	seq := make([]string, shown)
	for i := range seq {
		seq[i] = unit[i%n]
	}
	ans := unit[shown%n]
	opts, idx := textOptions(r, ans, syms)
	return draft{
		stem:        fmt.Sprintf("What comes next? %s ?", strings.Join(seq, " ")),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The group %s repeats, so the next symbol is %s.", strings.Join(unit, " "), ans),
	}
}

var oddOneOutBank = []bankItem{
	{skills.Easy, "Which one does not belong? square, rectangle, rhombus, ___",
		"circle", []string{"trapezoid", "parallelogram", "kite"},
		"The others have four straight sides; a circle has none."},
	{skills.Easy, "Three shapes are red and one is blue. Which is the odd one: red circle, red square, red triangle, ___?",
		"blue star", []string{"red star", "red oval", "red heart"},
		"Only the blue star has a different color."},
	{skills.Medium, "Which shape is the odd one out?",
		"a circle", []string{"a triangle", "a square", "a pentagon"},
		"Every other shape is a polygon with straight sides."},
	{skills.Medium, "Which figure is different: 3 dots in a row, 4 dots in a row, 5 dots in a row, or ___?",
		"5 dots in a circle", []string{"6 dots in a row", "2 dots in a row", "7 dots in a row"},
		"The others are all arranged in a row."},
	{skills.Hard, "Which shape does not have a line of symmetry?",
		"a scalene triangle", []string{"a square", "a circle", "an isosceles triangle"},
		"A triangle with three different sides cannot be folded onto itself."},
	{skills.Hard, "Which one does not belong? cube, sphere, cylinder, ___",
		"square", []string{"cone", "pyramid", "prism"},
		"A square is flat; the others are solid shapes."},
}

func fillGrid(r *rand.Rand, d skills.Difficulty) draft {
	shapes := make([]string, len(plainShapes))
	copy(shapes, plainShapes)
	shuffle(r, shapes)
	f := make([]string, len(fills))
	copy(f, fills)
	shuffle(r, f)

	var rows []string
	for i := 0; i < 3; i++ {
		var cells []string
		for j := 0; j < 3; j++ {
			cell := f[(i+j)%3] + " " + shapes[i]
			if i == 2 && j == 2 {
				cell = "?"
			}
			cells = append(cells, cell)
		}
		rows = append(rows, fmt.Sprintf("Row %d: %s.", i+1, strings.Join(cells, ", ")))
	}
	ans := f[(2+2)%3] + " " + shapes[2]
	candidates := []string{
		f[(2+0)%3] + " " + shapes[2],
		f[(2+1)%3] + " " + shapes[2],
		ans[:len(ans)-len(shapes[2])] + shapes[1],
	}
	if d == skills.Hard {
		candidates = append(candidates, ans[:len(ans)-len(shapes[2])]+shapes[3])
	}
	opts, idx := textOptions(r, ans, candidates)
	return draft{
		stem:        strings.Join(rows, " ") + " What goes in place of the ?",
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Each row keeps its shape and uses every fill once, so the missing cell is %s.", ans),
	}
}

func growingShapes(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	sym := pick(r, symbols)
	start := between(r, 1, s.lo)
	step := between(r, 1, max(2, s.lo/2))
	var parts []string
	for i := 0; i < 4; i++ {
		parts = append(parts, fmt.Sprintf("%d %s", start+i*step, sym))
	}
	ans := start + 4*step
	opts, idx := numericOptions(r, ans, ans-step+1, ans+step)
	return draft{
		stem:        fmt.Sprintf("Each picture has more %s than the last: %s. How many %s are in the next picture?", sym, strings.Join(parts, ", "), sym),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d %s are added each time, so the next picture has %d.", step, sym, ans),
	}
}

func sideSum(r *rand.Rand, d skills.Difficulty) draft {
	// Only triangles and squares keep the sums inside the named range.
	a, b := 3, 4
	if r.IntN(2) == 0 {
		a, b = 4, 3
	}
	c := pick(r, []int{3, 4})
	e := 3
	if d != skills.Easy {
		e = pick(r, []int{3, 4})
	}
	ans := c + e
	opts, idx := textOptions(r, polygons[ans], polygonNames(ans))
	return draft{
		stem: fmt.Sprintf("%s + %s = %s. Using the same rule, %s + %s = ___",
			polygons[a], polygons[b], polygons[a+b], polygons[c], polygons[e]),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The sides add up: %d + %d = %d sides, a %s.", c, e, ans, polygons[ans]),
	}
}

func cornerWalk(r *rand.Rand, d skills.Difficulty) draft {
	start := r.IntN(len(corners))
	s := spanFor(d)
	steps := between(r, s.lo, s.hi)
	jump := 1
	if d == skills.Hard {
		jump = 3
	}
	end := (start + steps*jump) % len(corners)
	opts, idx := textOptions(r, corners[end], corners)
	return draft{
		stem: fmt.Sprintf("A dot starts in the %s corner of a square and moves %d corner(s) clockwise each step. Where is it after %d steps?",
			corners[start], jump, steps),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d steps of %d corner(s) is %d moves; every 4 moves bring it back, so it ends in the %s corner.", steps, jump, steps*jump, corners[end]),
	}
}

func fillAndTurn(r *rand.Rand, d skills.Difficulty) draft {
	dirs := directions4
	if d == skills.Hard {
		dirs = directions8
	}
	start := r.IntN(len(dirs))
	shown := 3
	if d == skills.Easy {
		shown = 2
	}
	state := func(i int) string {
		fill := "filled"
		if i%2 == 1 {
			fill = "empty"
		}
		return fill + " arrow pointing " + dirs[(start+i)%len(dirs)]
	}
	var seq []string
	for i := 0; i < shown; i++ {
		seq = append(seq, state(i))
	}
	ans := state(shown)
	flipped := "filled"
	if strings.HasPrefix(ans, "filled") {
		flipped = "empty"
	}
	candidates := []string{
		flipped + " arrow pointing " + dirs[(start+shown)%len(dirs)],
		strings.SplitN(ans, " ", 2)[0] + " arrow pointing " + dirs[(start+shown+1)%len(dirs)],
		flipped + " arrow pointing " + dirs[(start+shown-1)%len(dirs)],
		strings.SplitN(ans, " ", 2)[0] + " arrow pointing " + dirs[(start+shown+2)%len(dirs)],
	}
	opts, idx := textOptions(r, ans, candidates)
	return draft{
		stem:        fmt.Sprintf("%s. What comes next?", strings.Join(seq, ", then ")),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The arrow turns one step clockwise and switches between filled and empty each time, giving a %s.", ans),
	}
}

func hexagonJump(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	steps := between(r, 2, min(s.hi, 12))
	starJump, moonJump := 2, 1
	if d == skills.Hard {
		starJump, moonJump = 2, 3
	}
	// Corners are numbered 1 to 6 clockwise; the moon walks the other way.
	star := (steps*starJump)%6 + 1
	moon := ((-steps*moonJump)%6+6)%6 + 1
	label := func(st, mo int) string { return fmt.Sprintf("star %d, moon %d", st, mo) }
	candidates := []string{
		label(moon, star),
		label(star, (steps*moonJump)%6+1),
		label((star%6)+1, moon),
		label(star, (moon%6)+1),
		label((star+1)%6+1, moon),
		label(star, (moon+1)%6+1),
	}
	opts, idx := textOptions(r, label(star, moon), candidates)
	return draft{
		stem: fmt.Sprintf("A star and a moon both start on corner 1 of a hexagon with corners numbered 1 to 6 clockwise. Each step the star jumps %d corners clockwise and the moon jumps %d corner(s) counter-clockwise. Where are they after %d steps?",
			starJump, moonJump, steps),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The star moves %d corners in total and the moon %d, which lands them on %s.", steps*starJump, steps*moonJump, label(star, moon)),
	}
}
