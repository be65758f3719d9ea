package content

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/adaptiq/internal/skills"
)

var (
	boyNames  = []string{"Noam", "Omer", "Daniel", "Ethan", "Ari", "Leo", "Tom", "Ben", "Adam", "Liam"}
	girlNames = []string{"Maya", "Noa", "Dana", "Shira", "Yael", "Mia", "Tamar", "Ella", "Ruth", "Lily"}
	countable = []string{"pencils", "marbles", "stickers", "cookies", "books", "balloons", "stamps", "apples", "flowers", "stones"}
	holders   = []struct{ one, many string }{
		{"box", "boxes"}, {"bag", "bags"}, {"shelf", "shelves"}, {"basket", "baskets"}, {"tray", "trays"}, {"crate", "crates"},
	}
	mathPlaces = []string{"in the classroom", "in the library", "at the shop", "in the garden", "in the kitchen"}
)

func newMathGenerator() Generator {
	return &templateGenerator{
		section: skills.SectionMath,
		times:   sectionTimes[skills.SectionMath],
		skills: []skillTemplates{
			{skills.BasicArithmetic, []template{addSubtract, multiplyAdd}},
			{skills.WordProblems, []template{groupsOfItems, gaveAway}},
			{skills.TimeClock, []template{clockEnd, clockElapsed}},
			{skills.MoneyChange, []template{changeFromBill, twoItemsChange}},
			{skills.MultiplicationDivision, []template{shareEqually, rowsAndColumns}},
			{skills.NumberSequences, []template{arithmeticSequence, growingSequence}},
			{skills.MathLogic, []template{thinkOfANumber, placeInLine}},
		},
	}
}

func addSubtract(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	a := between(r, s.lo*3, s.hi*5)
	b := between(r, s.lo*2, s.hi*4)
	c := between(r, 1, a+b-1)
	ans := a + b - c
	opts, idx := numericOptions(r, ans, a+b, a+b+c)
	return draft{
		stem:        fmt.Sprintf("What is %d + %d - %d?", a, b, c),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d + %d = %d, then %d - %d = %d.", a, b, a+b, a+b, c, ans),
	}
}

func multiplyAdd(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	a := between(r, s.lo, min(s.hi, 12))
	b := between(r, 2, 9)
	c := between(r, 1, s.hi)
	ans := a*b + c
	opts, idx := numericOptions(r, ans, a*(b+c), a*b)
	return draft{
		stem:        fmt.Sprintf("What is %d × %d + %d?", a, b, c),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Multiply first: %d × %d = %d. Then add: %d + %d = %d.", a, b, a*b, a*b, c, ans),
	}
}

func groupsOfItems(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	name := pick(r, boyNames)
	h := pick(r, holders)
	item := pick(r, countable)
	n := between(r, s.lo, min(s.hi, 8))
	per := between(r, s.lo, s.hi)
	extra := between(r, 2, 6)
	ans := n * per
	opts, idx := numericOptions(r, ans, n+per, extra*n)
	return draft{
		stem: fmt.Sprintf("There are %d empty %s %s. %s has %d %s with %d %s in each. How many %s does %s have?",
			extra, h.many, pick(r, mathPlaces), name, n, h.many, per, item, item, name),
		options: opts,
		correct: idx,
		explanation: fmt.Sprintf("%s has %d %s of %d, so %d × %d = %d. The %d empty %s are extra information.",
			name, n, h.many, per, n, per, ans, extra, h.many),
	}
}

func gaveAway(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	name := pick(r, girlNames)
	item := pick(r, countable)
	h := pick(r, holders)
	n := between(r, s.lo, min(s.hi, 6))
	per := between(r, s.lo, s.hi)
	total := n * per
	gave := between(r, max(1, total/5), max(1, total*3/5))
	ans := total - gave
	opts, idx := numericOptions(r, ans, total, gave, total+gave)
	return draft{
		stem: fmt.Sprintf("%s has %d %s with %d %s in each. She gives %d %s to her friends. How many %s does she have left?",
			name, n, h.many, per, item, gave, item, item),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("She starts with %d × %d = %d. After giving away %d she has %d - %d = %d.", n, per, total, gave, total, gave, ans),
	}
}

func clock(m int) string {
	m = ((m % 1440) + 1440) % 1440
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

func clockEnd(r *rand.Rand, d skills.Difficulty) draft {
	start := between(r, 8, 15)*60 + between(r, 0, 11)*5
	var dur int
	switch d {
	case skills.Easy:
		dur = between(r, 1, 3) * 15
	case skills.Hard:
		dur = between(r, 7, 35) * 5
	default:
		dur = between(r, 4, 19) * 5
	}
	end := start + dur
	candidates := []string{clock(end + 60), clock(end - 60), clock(end + 10), clock(end - 10), clock(end + 30), clock(start + dur%60)}
	opts, idx := textOptions(r, clock(end), candidates)
	return draft{
		stem:        fmt.Sprintf("A lesson starts at %s and lasts %d minutes. At what time does it end?", clock(start), dur),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%s plus %d minutes is %s.", clock(start), dur, clock(end)),
	}
}

func clockElapsed(r *rand.Rand, d skills.Difficulty) draft {
	start := between(r, 9, 17)*60 + between(r, 0, 11)*5
	var dur int
	switch d {
	case skills.Easy:
		dur = between(r, 2, 6) * 10
	case skills.Hard:
		dur = between(r, 15, 35) * 5
	default:
		dur = between(r, 9, 20) * 5
	}
	end := start + dur
	// Reading clock times as plain numbers is the classic mistake.
	naive := (end/60*100 + end%60) - (start/60*100 + start%60)
	opts, idx := numericOptions(r, dur, naive, dur+60, dur-10)
	return draft{
		stem:        fmt.Sprintf("A film starts at %s and ends at %s. How many minutes long is it?", clock(start), clock(end)),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("From %s to %s is %d hours and %d minutes, which is %d minutes.", clock(start), clock(end), dur/60, dur%60, dur),
	}
}

// smallestBill returns the smallest bill strictly greater than cost.
func smallestBill(cost int) int {
	for _, b := range []int{10, 20, 50, 100, 200} {
		if b > cost {
			return b
		}
	}
	return (cost/100 + 1) * 100
}

func changeFromBill(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	name := pick(r, girlNames)
	qty := between(r, 2, min(s.hi, 6))
	price := between(r, s.lo, s.hi)
	cost := qty * price
	bill := smallestBill(cost)
	ans := bill - cost
	opts, idx := numericOptions(r, ans, cost, bill-price)
	return draft{
		stem:        fmt.Sprintf("%s buys %d notebooks for $%d each and pays with a $%d bill. How much change does she get?", name, qty, price, bill),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The notebooks cost %d × $%d = $%d. Change: $%d - $%d = $%d.", qty, price, cost, bill, cost, ans),
	}
}

func twoItemsChange(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	name := pick(r, boyNames)
	a := between(r, s.lo, s.hi*2)
	b := between(r, s.lo, s.hi*2)
	bill := smallestBill(a + b)
	ans := bill - a - b
	opts, idx := numericOptions(r, ans, a+b, bill-a, bill-b)
	return draft{
		stem:        fmt.Sprintf("%s buys a ball for $%d and a cap for $%d. He pays with a $%d bill. How much change does he get?", name, a, b, bill),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Together the items cost $%d + $%d = $%d. Change: $%d - $%d = $%d.", a, b, a+b, bill, a+b, ans),
	}
}

func shareEqually(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	kids := between(r, 2, min(s.hi, 10))
	each := between(r, s.lo, s.hi)
	total := kids * each
	item := pick(r, countable)
	opts, idx := numericOptions(r, each, kids, each+kids, total-kids)
	return draft{
		stem:        fmt.Sprintf("%d %s are shared equally among %d children. How many does each child get?", total, item, kids),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d ÷ %d = %d.", total, kids, each),
	}
}

func rowsAndColumns(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	rows := between(r, s.lo, min(s.hi, 12))
	per := between(r, 2, min(s.hi, 12))
	ans := rows * per
	opts, idx := numericOptions(r, ans, rows+per, ans+per, ans-rows)
	return draft{
		stem:        fmt.Sprintf("A hall has %d rows of chairs with %d chairs in each row. How many chairs are there?", rows, per),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d rows × %d chairs = %d chairs.", rows, per, ans),
	}
}

func arithmeticSequence(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	start := between(r, 1, s.hi)
	step := between(r, 2, max(3, s.hi/2))
	terms := make([]int, 5)
	for i := range terms {
		terms[i] = start + i*step
	}
	ans := terms[4] + step
	opts, idx := numericOptions(r, ans, terms[4]+step+1, terms[4]+2*step)
	return draft{
		stem:        fmt.Sprintf("What number comes next? %d, %d, %d, %d, %d, ?", terms[0], terms[1], terms[2], terms[3], terms[4]),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Each number is %d more than the one before: %d + %d = %d.", step, terms[4], step, ans),
	}
}

func growingSequence(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	start := between(r, 1, s.hi)
	gap := between(r, 1, 4)
	grow := 1
	if d == skills.Hard {
		grow = 2
	}
	terms := []int{start}
	for i := 0; i < 4; i++ {
		terms = append(terms, terms[i]+gap+i*grow)
	}
	next := gap + 4*grow
	ans := terms[4] + next
	opts, idx := numericOptions(r, ans, terms[4]+next-grow, terms[4]+gap)
	return draft{
		stem:        fmt.Sprintf("What number comes next? %d, %d, %d, %d, %d, ?", terms[0], terms[1], terms[2], terms[3], terms[4]),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("The gaps grow by %d each time: the next gap is %d, so %d + %d = %d.", grow, next, terms[4], next, ans),
	}
}

func thinkOfANumber(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	x := between(r, s.lo, s.hi)
	k := between(r, 2, 5)
	m := between(r, 1, s.hi)
	res := x*k + m
	opts, idx := numericOptions(r, x, res-m, res/k, x+m)
	return draft{
		stem:        fmt.Sprintf("I think of a number. I multiply it by %d and then add %d. The result is %d. What is my number?", k, m, res),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("Work backwards: %d - %d = %d, then %d ÷ %d = %d.", res, m, res-m, res-m, k, x),
	}
}

func placeInLine(r *rand.Rand, d skills.Difficulty) draft {
	s := spanFor(d)
	name := pick(r, boyNames)
	front := between(r, 2, s.hi)
	back := between(r, 2, s.hi)
	ans := front + back - 1
	opts, idx := numericOptions(r, ans, front+back, front+back-2)
	return draft{
		stem:        fmt.Sprintf("Children stand in a line. %s is number %d from the front and number %d from the back. How many children are in the line?", name, front, back),
		options:     opts,
		correct:     idx,
		explanation: fmt.Sprintf("%d + %d counts %s twice, so there are %d + %d - 1 = %d children.", front, back, name, front, back, ans),
	}
}
