// Package lexicon answers "what do we know about this word" from three
// read-only sources: a frequency-ranked word list, a CEFR-by-word
// dictionary, and a common personal names set. A Resolver is built once at
// startup and is read-only afterward; workers that want parallelism should
// each build their own rather than share one during construction.
package lexicon

import (
	"strings"

	"github.com/lexsift/lexsift/internal/cefr"
)

const (
	// MaxRankedWords is the size of the frequency list; words outside it
	// have no rank.
	MaxRankedWords = 20000

	// UnrankedRank is the rank assigned to words beyond the frequency list
	// when an aggregate needs a number anyway.
	UnrankedRank = MaxRankedWords + 1

	// CommonNameRank is the fixed rank contributed by common personal names.
	CommonNameRank = 300
)

// overrides maps contractions and symbol-adjacent tokens straight to a
// level, bypassing dictionary and rank merging. The table is fixed; it
// exists because neither the frequency list nor the dictionary carries
// these surface forms.
var overrides = map[string]cefr.Level{
	"'s":   cefr.A2,
	"'ve":  cefr.A2,
	"n't":  cefr.A2,
	"'m":   cefr.A2,
	"'ll":  cefr.A2,
	"'re":  cefr.A2,
	"'d":   cefr.A2,
	"a.m.": cefr.B1,
	"p.m.": cefr.B1,
	"-":    cefr.B1,
}

// OverrideLevel returns the hardcoded level for a contraction or symbol
// token, if it has one. Matching is case-insensitive.
func OverrideLevel(word string) (cefr.Level, bool) {
	l, ok := overrides[strings.ToLower(word)]
	return l, ok
}

// LevelFromRank buckets a frequency rank into a CEFR level. Rank 0 (no
// rank) yields Unknown. The 2001-3000 and 3001-5000 bands both map to B2;
// the asymmetry is inherited from the calibrated source tables and is kept
// as-is.
func LevelFromRank(rank int) cefr.Level {
	switch {
	case rank <= 0:
		return cefr.Unknown
	case rank <= 500:
		return cefr.A1
	case rank <= 1000:
		return cefr.A2
	case rank <= 2000:
		return cefr.B1
	case rank <= 3000:
		return cefr.B2
	case rank <= 5000:
		return cefr.B2
	case rank <= 10000:
		return cefr.C1
	default:
		return cefr.C2
	}
}

// DigitRank maps a numeral token's shape to an equivalent word rank by
// digit count: one digit sits at the A1 threshold, two at A2, more at B1.
// Shapes with no digit placeholders yield 0 (no rank).
func DigitRank(shape string) int {
	digits := strings.Count(shape, "d")
	switch {
	case digits == 1:
		return 500
	case digits == 2:
		return 1000
	case digits > 2:
		return 2000
	default:
		return 0
	}
}

// Dictionary is the external CEFR-by-word dictionary. AverageLevel returns
// Unknown (with or without an error) when the word is not listed; the
// Resolver swallows errors, so implementations are free to surface internal
// failures.
type Dictionary interface {
	AverageLevel(word string) (cefr.Level, error)
}

// Resolver wraps the three lexical sources behind O(1) lookups.
type Resolver struct {
	ranks map[string]int
	dict  Dictionary
	names map[string]struct{}
}

// NewResolver builds a Resolver from a rank-ordered word list (most
// frequent first), a CEFR dictionary (may be nil), and a common-names list.
// Only the first MaxRankedWords entries of the ranked list are indexed.
func NewResolver(ranked []string, dict Dictionary, names []string) *Resolver {
	if len(ranked) > MaxRankedWords {
		ranked = ranked[:MaxRankedWords]
	}
	r := &Resolver{
		ranks: make(map[string]int, len(ranked)),
		dict:  dict,
		names: make(map[string]struct{}, len(names)),
	}
	for i, w := range ranked {
		w = strings.ToLower(w)
		// first occurrence wins; the list is rank-ordered
		if _, seen := r.ranks[w]; !seen {
			r.ranks[w] = i + 1
		}
	}
	for _, n := range names {
		r.names[strings.ToLower(n)] = struct{}{}
	}
	return r
}

// WordRank returns the 1-based frequency rank of word, falling back to the
// lemma when the surface form is unranked. 0 means neither is in the list.
func (r *Resolver) WordRank(word, lemma string) int {
	if rank, ok := r.ranks[strings.ToLower(word)]; ok {
		return rank
	}
	if lemma != "" {
		if rank, ok := r.ranks[strings.ToLower(lemma)]; ok {
			return rank
		}
	}
	return 0
}

// LemmaRank returns the frequency rank of the lemma alone, or 0. It is a
// diagnostic signal; CombinedLevel never merges it.
func (r *Resolver) LemmaRank(lemma string) int {
	return r.ranks[strings.ToLower(lemma)]
}

// IsCommonName reports whether word is in the common personal names set
// (case-insensitive).
func (r *Resolver) IsCommonName(word string) bool {
	_, ok := r.names[strings.ToLower(word)]
	return ok
}

// DictionaryLevel looks word up in the CEFR dictionary. Named entities are
// never dictionary words, and any internal dictionary failure is treated as
// "not listed" rather than propagated.
func (r *Resolver) DictionaryLevel(word string, entity bool) cefr.Level {
	if entity || r.dict == nil {
		return cefr.Unknown
	}
	level, err := r.dict.AverageLevel(strings.ToLower(word))
	if err != nil {
		return cefr.Unknown
	}
	return level
}

// CombinedLevel merges the dictionary level and the rank-derived level for
// a word, harder wins. Override-table tokens short-circuit everything.
// With a dictionary level but no rank, the dictionary value stands alone;
// with no dictionary level, the word rank (lemma as lookup fallback)
// decides; with neither, the result is Unknown.
func (r *Resolver) CombinedLevel(word, lemma string, entity bool, wordRank int) cefr.Level {
	if level, ok := OverrideLevel(word); ok {
		return level
	}

	dictLevel := r.DictionaryLevel(word, entity)
	if dictLevel.Known() {
		if rankLevel := LevelFromRank(wordRank); rankLevel.Known() {
			return cefr.Harder(dictLevel, rankLevel)
		}
		return dictLevel
	}

	return LevelFromRank(r.WordRank(word, lemma))
}
