package content

import (
	"math/rand/v2"

	"github.com/abhisek/adaptiq/internal/skills"
)

// bankItem is a hand-written question. level is the difficulty it suits
// best; items of other levels are used when none match.
type bankItem struct {
	level       skills.Difficulty
	stem        string
	answer      string
	distractors []string
	explanation string
}

// fromBank returns a template that draws one item from items.
func fromBank(items []bankItem) template {
	return func(r *rand.Rand, d skills.Difficulty) draft {
		var matching []bankItem
		for _, it := range items {
			if it.level == d {
				matching = append(matching, it)
			}
		}
		if len(matching) == 0 {
			matching = items
		}
		it := pick(r, matching)
		opts, idx := textOptions(r, it.answer, it.distractors)
		return draft{stem: it.stem, options: opts, correct: idx, explanation: it.explanation}
	}
}

func newSentenceGenerator() Generator {
	return &templateGenerator{
		section: skills.SectionSentenceCompletion,
		times:   sectionTimes[skills.SectionSentenceCompletion],
		skills: []skillTemplates{
			{skills.Vocabulary, []template{fromBank(vocabularyBank)}},
			{skills.LogicalConnection, []template{fromBank(connectionBank)}},
			{skills.SemanticContext, []template{fromBank(contextBank)}},
			{skills.ContrastCompletion, []template{fromBank(contrastBank)}},
			{skills.GeneralKnowledge, []template{fromBank(knowledgeBank)}},
			{skills.IdiomsProverbs, []template{fromBank(idiomBank)}},
		},
	}
}

var vocabularyBank = []bankItem{
	{skills.Easy, "The puppy was so ___ that it fell asleep right after dinner.",
		"tired", []string{"loud", "hungry", "fast"},
		"Falling asleep right away shows the puppy was tired."},
	{skills.Easy, "Please speak ___, the baby is sleeping.",
		"quietly", []string{"loudly", "quickly", "angrily"},
		"You speak quietly so you do not wake a sleeping baby."},
	{skills.Medium, "The explorer was ___ to find water after walking for days in the desert.",
		"relieved", []string{"bored", "ashamed", "jealous"},
		"After days without water, finding it would make anyone relieved."},
	{skills.Medium, "The old bridge was ___, so nobody was allowed to cross it.",
		"unsafe", []string{"colorful", "famous", "narrow"},
		"People are stopped from crossing only when a bridge is unsafe."},
	{skills.Hard, "Her answer was so ___ that nobody could tell what she really meant.",
		"vague", []string{"precise", "honest", "brief"},
		"A vague answer is unclear, so its meaning cannot be told."},
	{skills.Hard, "The scientist was ___ and checked every result three times.",
		"meticulous", []string{"careless", "impatient", "generous"},
		"Checking everything three times is what a meticulous person does."},
}

var connectionBank = []bankItem{
	{skills.Easy, "It started to rain, ___ we took our umbrellas.",
		"so", []string{"but", "although", "unless"},
		"The rain caused us to take umbrellas, so \"so\" shows the result."},
	{skills.Easy, "I wanted to play outside, ___ I had to finish my homework first.",
		"but", []string{"so", "because", "and then"},
		"\"But\" introduces something that stands in the way of the wish."},
	{skills.Medium, "Dan was late to school ___ he missed the bus.",
		"because", []string{"although", "so that", "unless"},
		"Missing the bus is the reason for being late."},
	{skills.Medium, "You will not pass the test ___ you study.",
		"unless", []string{"because", "since", "so"},
		"\"Unless\" states the condition that would change the outcome."},
	{skills.Hard, "___ the road was icy, the driver went slowly and arrived safely.",
		"Since", []string{"Although", "Unless", "Even if"},
		"The icy road is the reason for driving slowly, so \"Since\" fits."},
	{skills.Hard, "The team trained hard all year; ___, they won the championship.",
		"consequently", []string{"nevertheless", "meanwhile", "otherwise"},
		"Winning is the result of training, which \"consequently\" expresses."},
}

var contextBank = []bankItem{
	{skills.Easy, "The baker took the hot ___ out of the oven.",
		"bread", []string{"shoes", "pencils", "clouds"},
		"A baker bakes bread in an oven."},
	{skills.Easy, "At night we can see the moon and the ___ in the sky.",
		"stars", []string{"fish", "trees", "shoes"},
		"Stars appear in the night sky with the moon."},
	{skills.Medium, "The doctor listened to my heart with a ___.",
		"stethoscope", []string{"thermometer", "hammer", "microscope"},
		"A stethoscope is used to listen to the heart."},
	{skills.Medium, "The farmer woke up early to ___ the cows.",
		"milk", []string{"paint", "drive", "read"},
		"On a farm, cows are milked early in the morning."},
	{skills.Hard, "The judge listened to both sides before giving her ___.",
		"verdict", []string{"recipe", "diagnosis", "forecast"},
		"A judge gives a verdict after hearing a case."},
	{skills.Hard, "The captain studied the ___ to find the safest route through the islands.",
		"map", []string{"menu", "calendar", "ticket"},
		"A map shows routes between places."},
}

var contrastBank = []bankItem{
	{skills.Easy, "The elephant is big, but the mouse is ___.",
		"small", []string{"heavy", "grey", "tall"},
		"\"But\" signals the opposite of big."},
	{skills.Easy, "Summer is hot, while winter is ___.",
		"cold", []string{"sunny", "long", "warm"},
		"\"While\" contrasts hot with its opposite."},
	{skills.Medium, "Although the test was difficult, most students found it ___.",
		"manageable", []string{"impossible", "confusing", "terrible"},
		"\"Although\" sets up a contrast with difficult."},
	{skills.Medium, "The soup looked delicious, yet it tasted ___.",
		"awful", []string{"wonderful", "hot", "sweet"},
		"\"Yet\" introduces the opposite of delicious."},
	{skills.Hard, "Unlike his brother, who is very talkative, Ben is rather ___.",
		"reserved", []string{"chatty", "cheerful", "curious"},
		"\"Unlike\" contrasts talkative with reserved."},
	{skills.Hard, "The plan seemed simple on paper; in practice, however, it proved ___.",
		"complicated", []string{"easy", "cheap", "popular"},
		"\"However\" turns simple into its opposite."},
}

var knowledgeBank = []bankItem{
	{skills.Easy, "A week has ___ days.",
		"seven", []string{"five", "ten", "twelve"},
		"There are seven days in a week."},
	{skills.Easy, "Bees make ___.",
		"honey", []string{"milk", "silk", "wool"},
		"Bees produce honey from nectar."},
	{skills.Medium, "Water freezes at ___ degrees Celsius.",
		"zero", []string{"ten", "one hundred", "fifty"},
		"Water turns to ice at 0 °C."},
	{skills.Medium, "The planet closest to the Sun is ___.",
		"Mercury", []string{"Mars", "Earth", "Jupiter"},
		"Mercury orbits closest to the Sun."},
	{skills.Hard, "Plants take in ___ from the air to make their food.",
		"carbon dioxide", []string{"oxygen", "nitrogen", "helium"},
		"Photosynthesis uses carbon dioxide, water and light."},
	{skills.Hard, "A triangle with all three sides equal is called ___.",
		"equilateral", []string{"isosceles", "scalene", "right-angled"},
		"Equilateral means all sides have the same length."},
}

var idiomBank = []bankItem{
	{skills.Easy, "Practice makes ___.",
		"perfect", []string{"tired", "noise", "friends"},
		"\"Practice makes perfect\" means repeating something helps you master it."},
	{skills.Easy, "Better late than ___.",
		"never", []string{"early", "sorry", "tomorrow"},
		"Doing something late is better than not doing it at all."},
	{skills.Medium, "Don't count your chickens before they ___.",
		"hatch", []string{"run", "sleep", "grow"},
		"Do not rely on something before it has actually happened."},
	{skills.Medium, "Actions speak louder than ___.",
		"words", []string{"music", "thunder", "people"},
		"What you do matters more than what you say."},
	{skills.Hard, "Don't put all your eggs in one ___.",
		"basket", []string{"box", "nest", "pan"},
		"Do not risk everything on a single plan."},
	{skills.Hard, "When it rains, it ___.",
		"pours", []string{"shines", "stops", "snows"},
		"Troubles tend to come all at once."},
}
