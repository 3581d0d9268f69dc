package annotate

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball"
)

// ProseAnnotator implements Annotator on top of prose's tokenizer, Penn
// Treebank tagger, and named-entity chunker. Each instance is independent;
// parallel workers should construct one each rather than share.
type ProseAnnotator struct{}

// NewProseAnnotator returns a ready-to-use annotator.
func NewProseAnnotator() *ProseAnnotator {
	return &ProseAnnotator{}
}

// Annotate tokenizes and tags one sentence. Blank input yields an empty
// token sequence, which downstream grading treats as the empty-sentence
// fast path.
func (a *ProseAnnotator) Annotate(text string) ([]Token, error) {
	text = Normalize(text)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("annotating sentence: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]Token, 0, len(proseTokens))
	for _, tk := range proseTokens {
		tokens = append(tokens, Token{
			Text:   tk.Text,
			Lemma:  lemmaOf(tk.Text),
			POS:    coarsePOS(tk.Tag, tk.Text),
			Stop:   IsStopWord(tk.Text),
			Entity: tk.Label != "", // IOB label set by the entity chunker
			Shape:  Shape(tk.Text),
		})
	}
	return tokens, nil
}

// lemmaOf approximates a lemma with the snowball English stem. The lemma is
// only a secondary frequency-lookup fallback, so a stem that is not a real
// dictionary form simply misses the list, which is the defined unknown
// path. When stemming fails the lowercased surface form stands in.
func lemmaOf(text string) string {
	word := lower(text)
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

func lower(s string) string {
	return strings.ToLower(s)
}

// punctTags are the Penn Treebank tags prose assigns to punctuation tokens.
var punctTags = map[string]struct{}{
	"(": {}, ")": {}, ",": {}, ":": {}, ".": {},
	"''": {}, "``": {}, "-LRB-": {}, "-RRB-": {}, "HYPH": {}, "NFP": {},
}

// coarsePOS collapses a Penn Treebank tag into the coarse set the grader
// understands. Unmapped tags land on Other, which the grader treats as an
// ordinary content word.
func coarsePOS(tag, text string) POS {
	if _, ok := punctTags[tag]; ok {
		return Punct
	}
	switch tag {
	case "$", "#", "SYM":
		return Sym
	case "CD":
		return Num
	case "NNP", "NNPS":
		return Propn
	case "NN", "NNS":
		return Noun
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ", "MD":
		return Verb
	case "JJ", "JJR", "JJS":
		return Adj
	case "RB", "RBR", "RBS", "WRB":
		return Adv
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return Pron
	case "DT", "PDT", "WDT":
		return Det
	case "IN":
		return Adp
	case "CC":
		return Conj
	case "TO", "POS", "RP":
		return Part
	case "UH":
		return Intj
	}
	if strings.TrimSpace(text) == "" {
		return Space
	}
	// tags made of punctuation characters that the tag table missed
	if tag != "" && strings.IndexFunc(tag, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	}) < 0 {
		return Punct
	}
	return Other
}
