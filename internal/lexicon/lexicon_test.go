package lexicon_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/lexicon"
)

// mapDictionary is a trivial in-memory Dictionary for tests.
type mapDictionary map[string]cefr.Level

func (d mapDictionary) AverageLevel(word string) (cefr.Level, error) {
	return d[word], nil
}

// failingDictionary always errors, simulating an internal lookup failure.
type failingDictionary struct{}

func (failingDictionary) AverageLevel(string) (cefr.Level, error) {
	return cefr.Unknown, errors.New("corrupt entry")
}

func TestLevelFromRank(t *testing.T) {
	tests := []struct {
		rank int
		want cefr.Level
	}{
		{0, cefr.Unknown},
		{-5, cefr.Unknown},
		{1, cefr.A1},
		{500, cefr.A1},
		{501, cefr.A2},
		{1000, cefr.A2},
		{1001, cefr.B1},
		{2000, cefr.B1},
		// the 2001-3000 and 3001-5000 bands both map to B2
		{2001, cefr.B2},
		{3000, cefr.B2},
		{3001, cefr.B2},
		{5000, cefr.B2},
		{5001, cefr.C1},
		{10000, cefr.C1},
		{10001, cefr.C2},
		{20001, cefr.C2},
	}
	for _, tt := range tests {
		if got := lexicon.LevelFromRank(tt.rank); got != tt.want {
			t.Errorf("LevelFromRank(%d) = %v, want %v", tt.rank, got, tt.want)
		}
	}
}

func TestDigitRank(t *testing.T) {
	tests := []struct {
		shape string
		want  int
	}{
		{"d", 500},
		{"dd", 1000},
		{"ddd", 2000},
		{"dddd", 2000},
		{"d,ddd", 2000},
		{"xxx", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := lexicon.DigitRank(tt.shape); got != tt.want {
			t.Errorf("DigitRank(%q) = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestOverrideLevel(t *testing.T) {
	tests := []struct {
		word string
		want cefr.Level
		ok   bool
	}{
		{"'s", cefr.A2, true},
		{"n't", cefr.A2, true},
		{"'LL", cefr.A2, true},
		{"a.m.", cefr.B1, true},
		{"-", cefr.B1, true},
		{"cat", cefr.Unknown, false},
	}
	for _, tt := range tests {
		got, ok := lexicon.OverrideLevel(tt.word)
		if got != tt.want || ok != tt.ok {
			t.Errorf("OverrideLevel(%q) = (%v, %v), want (%v, %v)", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWordRank(t *testing.T) {
	r := lexicon.NewResolver([]string{"the", "be", "cat", "run"}, nil, nil)

	tests := []struct {
		name  string
		word  string
		lemma string
		want  int
	}{
		{"direct hit", "cat", "", 3},
		{"case-insensitive", "The", "", 1},
		{"lemma fallback", "running", "run", 4},
		{"neither listed", "zymurgy", "zymurgy", 0},
		{"word hit ignores lemma", "be", "the", 2},
	}
	for _, tt := range tests {
		if got := r.WordRank(tt.word, tt.lemma); got != tt.want {
			t.Errorf("%s: WordRank(%q, %q) = %d, want %d", tt.name, tt.word, tt.lemma, got, tt.want)
		}
	}

	if got := r.LemmaRank("run"); got != 4 {
		t.Errorf("LemmaRank(run) = %d, want 4", got)
	}
	if got := r.LemmaRank("missing"); got != 0 {
		t.Errorf("LemmaRank(missing) = %d, want 0", got)
	}
}

func TestIsCommonName(t *testing.T) {
	r := lexicon.NewResolver(nil, nil, []string{"Tom", "Mary"})
	if !r.IsCommonName("tom") || !r.IsCommonName("MARY") {
		t.Error("expected case-insensitive name match")
	}
	if r.IsCommonName("cat") {
		t.Error("cat should not be a common name")
	}
}

func TestDictionaryLevel(t *testing.T) {
	dict := mapDictionary{"economy": cefr.B2}
	r := lexicon.NewResolver(nil, dict, nil)

	if got := r.DictionaryLevel("economy", false); got != cefr.B2 {
		t.Errorf("DictionaryLevel(economy) = %v, want B2", got)
	}
	// named entities are never dictionary words
	if got := r.DictionaryLevel("economy", true); got != cefr.Unknown {
		t.Errorf("DictionaryLevel(economy, entity) = %v, want Unknown", got)
	}
	// internal dictionary failures are swallowed
	rf := lexicon.NewResolver(nil, failingDictionary{}, nil)
	if got := rf.DictionaryLevel("anything", false); got != cefr.Unknown {
		t.Errorf("failing dictionary yielded %v, want Unknown", got)
	}
}

func TestCombinedLevel(t *testing.T) {
	ranked := make([]string, 0, 600)
	ranked = append(ranked, "cat") // rank 1 -> A1
	for len(ranked) < 600 {
		ranked = append(ranked, "filler"+strings.Repeat("x", len(ranked)))
	}
	ranked = append(ranked, "notion") // rank 601 -> A2

	dict := mapDictionary{
		"cat":    cefr.A1,
		"notion": cefr.A1, // easier than its rank; rank must win
		"random": cefr.C1, // dictionary-only word
	}
	r := lexicon.NewResolver(ranked, dict, nil)

	tests := []struct {
		name     string
		word     string
		lemma    string
		entity   bool
		wordRank int
		want     cefr.Level
	}{
		{"override bypasses everything", "'s", "", false, 1, cefr.A2},
		{"both agree", "cat", "cat", false, 1, cefr.A1},
		{"harder rank wins over dictionary", "notion", "notion", false, 601, cefr.A2},
		{"dictionary alone when no rank", "random", "random", false, 0, cefr.C1},
		{"rank alone when no dictionary entry", "notion", "notion", true, 0, cefr.A2},
		{"no signals at all", "zymurgy", "zymurgy", false, 0, cefr.Unknown},
	}
	for _, tt := range tests {
		if got := r.CombinedLevel(tt.word, tt.lemma, tt.entity, tt.wordRank); got != tt.want {
			t.Errorf("%s: CombinedLevel(%q) = %v, want %v", tt.name, tt.word, got, tt.want)
		}
	}
}

// CombinedLevel must never be easier than either source when both exist.
func TestCombinedLevelMonotonic(t *testing.T) {
	dict := mapDictionary{"word": cefr.B1}
	r := lexicon.NewResolver([]string{"word"}, dict, nil)

	for rank := 1; rank <= 12000; rank += 499 {
		got := r.CombinedLevel("word", "word", false, rank)
		rankLevel := lexicon.LevelFromRank(rank)
		if got.Index() < cefr.B1.Index() || got.Index() < rankLevel.Index() {
			t.Fatalf("rank %d: combined %v easier than max(B1, %v)", rank, got, rankLevel)
		}
	}
}

func TestCSVDictionary(t *testing.T) {
	input := strings.Join([]string{
		"word,level",
		"cat,A1",
		"economy,B2",
		"set,A1",
		"set,B1", // duplicate rows average (and round) to A2
		"malformed",
		"junk,Z9",
		"Spaced , B1",
	}, "\n")

	dict, err := lexicon.NewCSVDictionary(strings.NewReader(input))
	if err != nil {
		t.Fatalf("NewCSVDictionary failed: %v", err)
	}
	if dict.Len() != 4 {
		t.Errorf("Len() = %d, want 4", dict.Len())
	}

	tests := []struct {
		word string
		want cefr.Level
	}{
		{"cat", cefr.A1},
		{"Economy", cefr.B2},
		{"set", cefr.A2},
		{"spaced", cefr.B1},
		{"malformed", cefr.Unknown},
		{"junk", cefr.Unknown},
		{"missing", cefr.Unknown},
	}
	for _, tt := range tests {
		got, err := dict.AverageLevel(tt.word)
		if err != nil {
			t.Fatalf("AverageLevel(%q) errored: %v", tt.word, err)
		}
		if got != tt.want {
			t.Errorf("AverageLevel(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestReadRankedList(t *testing.T) {
	input := "the\nbe 123456\n\n# comment\nTo\n"
	words, err := lexicon.ReadRankedList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadRankedList failed: %v", err)
	}
	want := []string{"the", "be", "to"}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("words[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}

func TestReadNames(t *testing.T) {
	input := "name\nTom\nMary,12345\n\nJohn\n"
	names, err := lexicon.ReadNames(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadNames failed: %v", err)
	}
	want := []string{"Tom", "Mary", "John"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
