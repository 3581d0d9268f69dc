// Package grade implements the rule-based sentence difficulty engine. It
// turns a sequence of annotated tokens into per-token lexical facts,
// reduces those to sentence metrics, and walks a layered constraint table
// from A1 to C2 to pick the first level the sentence qualifies for.
//
// The engine is deterministic and pure: no I/O, no state across sentences
// beyond the read-only lexicon it was constructed with. Parallel callers
// should build one Grader per worker.
package grade

import (
	"github.com/lexsift/lexsift/internal/annotate"
	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/lexicon"
)

// TokenGrade is the classified view of one token: the raw annotation plus
// every lexical fact the aggregator and diagnostics need.
type TokenGrade struct {
	Token annotate.Token

	IsName    bool       // token text is a common personal name
	WordRank  int        // frequency rank (lemma fallback), 0 if unranked
	LemmaRank int        // rank of the lemma alone, diagnostic only
	DictLevel cefr.Level // dictionary level, Unknown if unlisted or entity
	Combined  cefr.Level // merged level; digit-derived for numerals

	// EffectiveRank is this token's contribution to the sentence rank
	// aggregates, 0 when the token is excluded from them.
	EffectiveRank int
}

// Metrics are the per-sentence aggregates the level selector evaluates.
type Metrics struct {
	WordsWithStops    int
	WordsWithoutStops int
	LevelCounts       map[cefr.Level]int
	MaxRank           int
	AverageRank       float64
}

// Grader binds a lexicon and a constraint table into a sentence classifier.
type Grader struct {
	lex *lexicon.Resolver
	cfg Config
}

// New builds a Grader. The resolver is shared read-only state; the config
// is copied.
func New(lex *lexicon.Resolver, cfg Config) *Grader {
	return &Grader{lex: lex, cfg: cfg}
}

// Grade classifies one annotated sentence. An empty token sequence is the
// empty-sentence fast path: level A1 with zero metrics. Grade never fails;
// every sentence gets a level.
func (g *Grader) Grade(tokens []annotate.Token) (cefr.Level, Metrics) {
	if len(tokens) == 0 {
		return cefr.A1, Metrics{LevelCounts: newLevelCounts()}
	}
	m := g.Metrics(g.GradeTokens(tokens))
	return SelectLevel(m, g.cfg), m
}

// GradeTokens computes the per-token lexical facts for a sentence.
func (g *Grader) GradeTokens(tokens []annotate.Token) []TokenGrade {
	grades := make([]TokenGrade, 0, len(tokens))
	for _, tok := range tokens {
		tg := TokenGrade{
			Token:     tok,
			IsName:    g.lex.IsCommonName(tok.Text),
			WordRank:  g.lex.WordRank(tok.Text, tok.Lemma),
			LemmaRank: g.lex.LemmaRank(tok.Lemma),
			DictLevel: g.lex.DictionaryLevel(tok.Text, tok.Entity),
		}
		tg.Combined = g.lex.CombinedLevel(tok.Text, tok.Lemma, tok.Entity, tg.WordRank)

		// numerals are leveled by digit count, not by word frequency
		if tok.POS == annotate.Num {
			if digitLevel := lexicon.LevelFromRank(lexicon.DigitRank(tok.Shape)); digitLevel.Known() {
				tg.Combined = digitLevel
			}
		}

		tg.EffectiveRank = g.effectiveRank(tg)
		grades = append(grades, tg)
	}
	return grades
}

// effectiveRank applies the exclusion rules in their fixed order. The order
// matters: a common name tagged NUM or PROPN still counts as a name.
func (g *Grader) effectiveRank(tg TokenGrade) int {
	tok := tg.Token

	if tg.IsName {
		return lexicon.CommonNameRank
	}

	if tok.Entity || tok.POS == annotate.Propn {
		// known entities never get credit for being common words
		if tg.WordRank > 0 {
			return max(tg.WordRank, lexicon.UnrankedRank)
		}
		return lexicon.UnrankedRank
	}

	if _, ok := lexicon.OverrideLevel(tok.Text); ok {
		return 0
	}

	if isExcludedPOS(tok.POS) {
		return 0
	}

	if tok.POS == annotate.Num {
		if digitRank := lexicon.DigitRank(tok.Shape); digitRank > 0 {
			return digitRank
		}
		// written-out numbers get the threshold rank of their level so
		// they aggregate consistently with digit forms
		switch lexicon.LevelFromRank(tg.WordRank) {
		case cefr.A1:
			return 500
		case cefr.A2:
			return 1000
		case cefr.B1:
			return 2000
		case cefr.B2:
			return 5000
		case cefr.C1:
			return 10000
		default:
			return lexicon.UnrankedRank
		}
	}

	if tg.WordRank > 0 {
		return tg.WordRank
	}
	return lexicon.UnrankedRank
}

// Metrics reduces graded tokens to sentence aggregates. Word counts exclude
// only punctuation, symbols, and whitespace; the CEFR tally additionally
// skips names and proper nouns; rank aggregates follow the EffectiveRank
// exclusions, which are stricter than either.
func (g *Grader) Metrics(grades []TokenGrade) Metrics {
	m := Metrics{LevelCounts: newLevelCounts()}

	rankSum := 0
	rankCount := 0
	for _, tg := range grades {
		if tg.EffectiveRank > 0 {
			rankSum += tg.EffectiveRank
			rankCount++
			if tg.EffectiveRank > m.MaxRank {
				m.MaxRank = tg.EffectiveRank
			}
		}

		if isExcludedPOS(tg.Token.POS) {
			continue
		}
		m.WordsWithStops++
		if !tg.Token.Stop {
			m.WordsWithoutStops++
		}

		if tg.IsName || tg.Token.POS == annotate.Propn {
			continue
		}
		level := tg.Combined
		if !level.Known() {
			// unclassifiable content words tally as B2, a lenient default
			level = cefr.B2
		}
		m.LevelCounts[level]++
	}

	if rankCount > 0 {
		m.AverageRank = float64(rankSum) / float64(rankCount)
	}
	return m
}

// SelectLevel walks the constraint table from A1 to C2 and returns the
// first level whose rule the metrics satisfy. It cannot fail: C2 carries no
// limits by convention, and exhaustion falls back to C2 regardless.
func SelectLevel(m Metrics, cfg Config) cefr.Level {
	for _, level := range cefr.All {
		r := cfg.Rule(level)

		if r.MaxWordsWithStops != Unlimited && m.WordsWithStops > r.MaxWordsWithStops {
			continue
		}
		if r.MaxWordsWithoutStops != Unlimited && m.WordsWithoutStops > r.MaxWordsWithoutStops {
			continue
		}

		satisfied := true
		for _, counted := range cefr.All {
			limit := r.LevelLimits.At(counted)
			if limit != Unlimited && m.LevelCounts[counted] > limit {
				satisfied = false
				break
			}
		}
		if satisfied {
			return level
		}
	}
	return cefr.C2
}

func isExcludedPOS(pos annotate.POS) bool {
	return pos == annotate.Punct || pos == annotate.Sym || pos == annotate.Space
}

func newLevelCounts() map[cefr.Level]int {
	counts := make(map[cefr.Level]int, len(cefr.All))
	for _, l := range cefr.All {
		counts[l] = 0
	}
	return counts
}
