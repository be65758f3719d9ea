package content

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/adaptiq/internal/skills"
)

type pair struct{ a, b string }

func (p pair) String() string { return p.a + " : " + p.b }

// relation is a bank of word pairs that share one relationship.
type relation struct {
	name  string
	pairs []pair
}

var (
	synonyms = relation{"mean the same", []pair{
		{"big", "large"}, {"happy", "glad"}, {"quick", "fast"}, {"begin", "start"},
		{"shout", "yell"}, {"tiny", "small"}, {"smart", "clever"},
	}}
	antonyms = relation{"are opposites", []pair{
		{"hot", "cold"}, {"up", "down"}, {"early", "late"}, {"full", "empty"},
		{"open", "close"}, {"brave", "afraid"}, {"win", "lose"},
	}}
	partWhole = relation{"is a part of", []pair{
		{"wheel", "car"}, {"page", "book"}, {"petal", "flower"}, {"finger", "hand"},
		{"key", "keyboard"}, {"branch", "tree"}, {"room", "house"},
	}}
	toolUse = relation{"is used to", []pair{
		{"scissors", "cut"}, {"pen", "write"}, {"broom", "sweep"}, {"shovel", "dig"},
		{"needle", "sew"}, {"spoon", "stir"}, {"saw", "cut wood"},
	}}
	materialProduct = relation{"is made into", []pair{
		{"wood", "table"}, {"wool", "sweater"}, {"flour", "bread"}, {"glass", "window"},
		{"clay", "pot"}, {"milk", "cheese"}, {"paper", "notebook"},
	}}
	categoryItem = relation{"is a kind of", []pair{
		{"apple", "fruit"}, {"dog", "animal"}, {"rose", "flower"}, {"hammer", "tool"},
		{"piano", "instrument"}, {"carrot", "vegetable"}, {"shirt", "clothing"},
	}}
	causeEffect = relation{"causes", []pair{
		{"rain", "puddle"}, {"fire", "smoke"}, {"exercise", "sweat"}, {"cold", "shiver"},
		{"joke", "laughter"}, {"injury", "pain"}, {"sun", "sunburn"},
	}}
	worksWith = relation{"works with", []pair{
		{"doctor", "patient"}, {"teacher", "student"}, {"chef", "kitchen"}, {"pilot", "airplane"},
		{"farmer", "field"}, {"painter", "brush"}, {"librarian", "books"},
	}}
	youngOf = relation{"grows into", []pair{
		{"puppy", "dog"}, {"kitten", "cat"}, {"calf", "cow"}, {"chick", "hen"},
		{"tadpole", "frog"}, {"caterpillar", "butterfly"}, {"foal", "horse"},
	}}
)

var allRelations = []relation{synonyms, antonyms, partWhole, toolUse, materialProduct, categoryItem, causeEffect, worksWith, youngOf}

func newWordRelationGenerator() Generator {
	return &templateGenerator{
		section: skills.SectionWordRelations,
		times:   sectionTimes[skills.SectionWordRelations],
		skills: []skillTemplates{
			{skills.SynonymsAntonyms, []template{analogy(synonyms), analogy(antonyms)}},
			{skills.PartWhole, []template{analogy(partWhole)}},
			{skills.ToolUse, []template{analogy(toolUse)}},
			{skills.MaterialProduct, []template{analogy(materialProduct)}},
			{skills.CategoryItem, []template{analogy(categoryItem)}},
			{skills.CauseEffect, []template{analogy(causeEffect)}},
			{skills.VerbalAnalogy, []template{analogy(worksWith), analogy(youngOf)}},
		},
	}
}

// analogy asks for the pair that relates the same way as a stem pair.
// The correct option comes from the same bank; distractors come from
// other banks. Hard questions may also offer a reversed pair of the right
// bank, which has the right words but the wrong direction.
func analogy(rel relation) template {
	return func(r *rand.Rand, d skills.Difficulty) draft {
		idx := r.Perm(len(rel.pairs))
		stem, answer := rel.pairs[idx[0]], rel.pairs[idx[1]]

		var candidates []string
		if d == skills.Hard && rel.name != synonyms.name && rel.name != antonyms.name {
			rev := rel.pairs[idx[2]]
			candidates = append(candidates, pair{rev.b, rev.a}.String())
		}
		others := make([]relation, 0, len(allRelations)-1)
		for _, o := range allRelations {
			if o.name != rel.name {
				others = append(others, o)
			}
		}
		shuffle(r, others)
		for _, o := range others {
			candidates = append(candidates, pick(r, o.pairs).String())
		}

		opts, correct := textOptions(r, answer.String(), candidates)
		return draft{
			stem:        fmt.Sprintf("%s is like ___", stem),
			options:     opts,
			correct:     correct,
			explanation: fmt.Sprintf("\"%s\" %s \"%s\", just as \"%s\" %s \"%s\".", stem.a, rel.name, stem.b, answer.a, rel.name, answer.b),
		}
	}
}
