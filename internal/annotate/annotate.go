// Package annotate defines the annotated-token model the grader consumes
// and an Annotator interface so the NLP engine stays an injected
// collaborator. The bundled implementation (prose.go) uses prose for
// tokenization, POS tagging, and NER; any annotator that produces the same
// token fields can stand in for it.
package annotate

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// POS is a coarse part-of-speech tag. The grader only branches on PUNCT,
// SYM, SPACE, NUM, and PROPN; the remaining tags are carried for
// diagnostics.
type POS string

const (
	Punct POS = "PUNCT"
	Sym   POS = "SYM"
	Space POS = "SPACE"
	Num   POS = "NUM"
	Propn POS = "PROPN"
	Noun  POS = "NOUN"
	Verb  POS = "VERB"
	Adj   POS = "ADJ"
	Adv   POS = "ADV"
	Pron  POS = "PRON"
	Det   POS = "DET"
	Adp   POS = "ADP"
	Conj  POS = "CONJ"
	Part  POS = "PART"
	Intj  POS = "INTJ"
	Other POS = "X"
)

// Token is one annotated surface token of a sentence.
type Token struct {
	Text   string // surface form
	Lemma  string // base form (stemmed fallback in the prose annotator)
	POS    POS    // coarse part-of-speech tag
	Stop   bool   // function word / closed-class marker
	Entity bool   // inside a named-entity span
	Shape  string // abstracted character shape, e.g. "25" -> "dd"
}

// Annotator turns a sentence into its ordered token sequence. An empty or
// unparseable sentence yields an empty slice, not an error; errors are
// reserved for the annotation engine itself failing.
type Annotator interface {
	Annotate(text string) ([]Token, error)
}

// Shape abstracts a token's characters the way spaCy does: digits become
// "d", letters "x"/"X" by case, everything else is kept. Runs of the same
// placeholder longer than four are truncated to four, so digit-count logic
// only ever distinguishes "more than two".
func Shape(text string) string {
	var b strings.Builder
	var last rune
	run := 0
	for _, r := range text {
		var p rune
		switch {
		case unicode.IsDigit(r):
			p = 'd'
		case unicode.IsLetter(r) && unicode.IsUpper(r):
			p = 'X'
		case unicode.IsLetter(r):
			p = 'x'
		default:
			p = r
		}
		if p == last {
			run++
		} else {
			run = 1
			last = p
		}
		if run <= 4 {
			b.WriteRune(p)
		}
	}
	return b.String()
}

// apostrophes folds typographic apostrophes into the ASCII form so
// contraction splitting and the override table see one spelling.
var apostrophes = strings.NewReplacer("’", "'", "´", "'")

// Normalize prepares raw sentence text for annotation: NFC composition
// plus apostrophe folding.
func Normalize(text string) string {
	return apostrophes.Replace(norm.NFC.String(text))
}
