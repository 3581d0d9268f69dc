package annotate

// stopwords is the closed-class English function word set. It mirrors the
// usual NLP stop lists (articles, pronouns, auxiliaries, prepositions,
// conjunctions, and the split contraction particles the tokenizer
// produces).
var stopwords = map[string]struct{}{
	// articles and determiners
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "some": {}, "any": {}, "no": {}, "every": {}, "each": {},
	"either": {}, "neither": {}, "both": {}, "all": {}, "such": {},
	"another": {}, "other": {}, "own": {}, "same": {},

	// pronouns
	"i": {}, "me": {}, "my": {}, "mine": {}, "myself": {},
	"we": {}, "us": {}, "our": {}, "ours": {}, "ourselves": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
	"he": {}, "him": {}, "his": {}, "himself": {},
	"she": {}, "her": {}, "hers": {}, "herself": {},
	"it": {}, "its": {}, "itself": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "themselves": {},
	"who": {}, "whom": {}, "whose": {}, "which": {}, "what": {},
	"someone": {}, "something": {}, "anyone": {}, "anything": {},
	"everyone": {}, "everything": {}, "nobody": {}, "nothing": {},
	"one": {}, "none": {},

	// auxiliaries and copulas
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {},
	"do": {}, "does": {}, "did": {}, "doing": {}, "done": {},
	"have": {}, "has": {}, "had": {}, "having": {},
	"will": {}, "would": {}, "shall": {}, "should": {},
	"can": {}, "could": {}, "may": {}, "might": {}, "must": {},

	// prepositions and particles
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "to": {}, "from": {},
	"with": {}, "without": {}, "about": {}, "against": {}, "between": {},
	"among": {}, "into": {}, "onto": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "under": {},
	"over": {}, "off": {}, "out": {}, "up": {}, "down": {}, "again": {},
	"further": {}, "here": {}, "there": {}, "where": {}, "when": {},
	"why": {}, "how": {}, "then": {}, "once": {}, "within": {},
	"upon": {}, "toward": {}, "towards": {}, "until": {}, "per": {},

	// conjunctions
	"and": {}, "but": {}, "or": {}, "nor": {}, "so": {}, "yet": {},
	"if": {}, "because": {}, "as": {}, "while": {}, "although": {},
	"though": {}, "since": {}, "unless": {}, "whether": {}, "than": {},

	// adverbs and qualifiers commonly treated as function words
	"not": {}, "only": {}, "very": {}, "too": {}, "also": {}, "just": {},
	"now": {}, "ever": {}, "never": {}, "always": {}, "often": {},
	"still": {}, "even": {}, "quite": {}, "rather": {}, "really": {},
	"more": {}, "most": {}, "less": {}, "least": {}, "much": {},
	"many": {}, "few": {}, "several": {}, "enough": {},

	// split contraction particles
	"'s": {}, "'ve": {}, "n't": {}, "'m": {}, "'ll": {}, "'re": {}, "'d": {},
}

// IsStopWord reports whether word is an English function word
// (case-insensitive).
func IsStopWord(word string) bool {
	_, ok := stopwords[lower(word)]
	return ok
}
