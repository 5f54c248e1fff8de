package deinflect

import "strings"

// English phrasal verbs inflect on the verb while the particle floats: either
// directly trailing ("picked up") or past an interposed object ("picked the
// box up"). Both shapes reduce to "verb particle".

// phrasalSuffixKind matches exactly two space-separated words where the first
// carries the inflected verb suffix and the second is a known particle.
type phrasalSuffixKind struct {
	inflected   string
	deinflected string
}

func (k phrasalSuffixKind) isInflected(text string) bool {
	_, _, ok := splitPhrasalSuffix(text, k.inflected)
	return ok
}

func (k phrasalSuffixKind) deinflect(text string) (string, bool) {
	stem, particle, ok := splitPhrasalSuffix(text, k.inflected)
	if !ok {
		return "", false
	}
	return stem + k.deinflected + " " + particle, true
}

func splitPhrasalSuffix(text string, inflected string) (string, string, bool) {
	words := strings.Fields(text)
	if len(words) != 2 {
		return "", "", false
	}
	if !englishPhrasalWordSet[words[1]] {
		return "", "", false
	}
	if !strings.HasSuffix(words[0], inflected) {
		return "", "", false
	}
	return words[0][:len(words[0])-len(inflected)], words[1], true
}

// phrasalInterposedKind matches "verb object... particle": three or more
// words ending in a known particle with no particle/preposition in between,
// and drops the object.
type phrasalInterposedKind struct{}

func (k phrasalInterposedKind) isInflected(text string) bool {
	_, ok := dropInterposedObject(text)
	return ok
}

func (k phrasalInterposedKind) deinflect(text string) (string, bool) {
	return dropInterposedObject(text)
}

func dropInterposedObject(text string) (string, bool) {
	words := strings.Fields(text)
	if len(words) < 3 {
		return "", false
	}
	particle := words[len(words)-1]
	if !englishPhrasalParticleSet[particle] {
		return "", false
	}
	for _, word := range words[1 : len(words)-1] {
		if englishPhrasalWordSet[word] {
			return "", false
		}
	}
	return words[0] + " " + particle, true
}

var englishPhrasalParticles = []string{
	"aboard", "about", "above", "across", "ahead", "alongside", "apart",
	"around", "aside", "astray", "away", "back", "before", "behind", "below",
	"beneath", "besides", "between", "beyond", "by", "close", "down", "east",
	"west", "north", "south", "eastward", "westward", "northward", "southward",
	"forward", "backward", "backwards", "forwards", "home", "in", "inside",
	"instead", "near", "off", "on", "opposite", "out", "outside", "over",
	"overhead", "past", "round", "since", "through", "throughout", "together",
	"under", "underneath", "up", "within", "without",
}

var englishPhrasalPrepositions = []string{
	"aback", "about", "above", "across", "after", "against", "ahead", "along",
	"among", "apart", "around", "as", "aside", "at", "away", "back", "before",
	"behind", "below", "between", "beyond", "by", "down", "even", "for",
	"forth", "forward", "from", "in", "into", "of", "off", "on", "onto",
	"open", "out", "over", "past", "round", "through", "to", "together",
	"toward", "towards", "under", "up", "upon", "way", "with", "without",
}

var (
	englishPhrasalParticleSet = makeWordSet(englishPhrasalParticles)
	englishPhrasalWordSet     = makeWordSet(append(append([]string{},
		englishPhrasalParticles...), englishPhrasalPrepositions...))
)

func makeWordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, word := range words {
		set[word] = true
	}
	return set
}
