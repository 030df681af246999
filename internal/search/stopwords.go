package search

import "sort"

// stopWords is the fixed English stop list: articles, prepositions,
// pronouns, conjunctions, auxiliaries and a handful of filler adverbs.
// Verbs and nouns that commonly start a task ("call", "find", "move",
// "bill") are deliberately absent.
var stopWords = map[string]struct{}{
	// articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "some": {}, "any": {}, "each": {}, "every": {}, "all": {},
	"both": {}, "either": {}, "neither": {}, "such": {}, "own": {},

	// prepositions
	"about": {}, "above": {}, "across": {}, "after": {}, "against": {},
	"along": {}, "among": {}, "around": {}, "at": {}, "before": {},
	"behind": {}, "below": {}, "beneath": {}, "beside": {}, "between": {},
	"beyond": {}, "by": {}, "down": {}, "during": {}, "except": {},
	"for": {}, "from": {}, "in": {}, "inside": {}, "into": {}, "near": {},
	"of": {}, "off": {}, "on": {}, "onto": {}, "out": {}, "outside": {},
	"over": {}, "per": {}, "since": {}, "through": {}, "throughout": {},
	"till": {}, "to": {}, "toward": {}, "towards": {}, "under": {},
	"until": {}, "up": {}, "upon": {}, "via": {}, "with": {}, "within": {},
	"without": {},

	// pronouns
	"i": {}, "me": {}, "my": {}, "mine": {}, "myself": {}, "we": {},
	"us": {}, "our": {}, "ours": {}, "ourselves": {}, "you": {}, "your": {},
	"yours": {}, "yourself": {}, "yourselves": {}, "he": {}, "him": {},
	"his": {}, "himself": {}, "she": {}, "her": {}, "hers": {},
	"herself": {}, "it": {}, "its": {}, "itself": {}, "they": {},
	"them": {}, "their": {}, "theirs": {}, "themselves": {}, "what": {},
	"which": {}, "who": {}, "whom": {}, "whose": {},

	// conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"if": {}, "then": {}, "than": {}, "because": {}, "as": {},
	"although": {}, "though": {}, "while": {}, "whether": {}, "unless": {},

	// auxiliaries and modals
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "do": {}, "does": {}, "did": {}, "doing": {},
	"have": {}, "has": {}, "had": {}, "having": {}, "will": {},
	"would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {},

	// adverbs and fillers
	"not": {}, "no": {}, "very": {}, "too": {}, "also": {}, "just": {},
	"only": {}, "again": {}, "here": {}, "there": {}, "when": {},
	"where": {}, "why": {}, "how": {}, "more": {}, "most": {}, "other": {},
	"same": {}, "few": {}, "once": {}, "now": {}, "ever": {}, "never": {},
	"etc": {},
}

// IsStopWord reports whether token is in the stop list. token must already
// be lowercase.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// StopWords returns the stop list in sorted order.
func StopWords() []string {
	words := make([]string, 0, len(stopWords))
	for w := range stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
