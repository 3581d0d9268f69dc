// Package filter applies the local pre-classification checks to raw
// sentences: language gate, word-count ceiling, banned-pattern matching,
// and exact-duplicate removal. Each rejection carries a reason string so
// the filtered-out set stays auditable.
package filter

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lexsift/lexsift/internal/corpus"
)

// DefaultMaxWords is the word-count ceiling applied when none is given.
const DefaultMaxWords = 30

// DefaultBanned seeds the banned list with source-attribution noise; the
// real list is policy and comes from the operator.
var DefaultBanned = []string{"tatoeba"}

// Rejection pairs a dropped sentence with why it was dropped.
type Rejection struct {
	Sentence corpus.Sentence
	Reason   string
}

// Filter holds the compiled checks. Build one with New and reuse it; it is
// read-only after construction apart from the duplicate-tracking set, so
// one Filter serves one pass over one corpus.
type Filter struct {
	maxWords int
	banned   []bannedPattern
	seen     map[string]struct{}
}

type bannedPattern struct {
	word string
	re   *regexp.Regexp
}

// Option adjusts a Filter under construction.
type Option func(*Filter)

// WithMaxWords overrides the word-count ceiling; 0 disables it.
func WithMaxWords(n int) Option {
	return func(f *Filter) { f.maxWords = n }
}

// WithBanned replaces the banned word list.
func WithBanned(words []string) Option {
	return func(f *Filter) { f.banned = compileBanned(words) }
}

// New builds a Filter with the default ceiling and banned list.
func New(opts ...Option) *Filter {
	f := &Filter{
		maxWords: DefaultMaxWords,
		banned:   compileBanned(DefaultBanned),
		seen:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// compileBanned builds case-insensitive whole-word patterns. Multi-word
// entries match as phrases.
func compileBanned(words []string) []bannedPattern {
	patterns := make([]bannedPattern, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(w)) + `\b`)
		patterns = append(patterns, bannedPattern{word: w, re: re})
	}
	return patterns
}

// Check examines one sentence and returns a rejection reason, or "" when
// the sentence passes. Checks run in a fixed order: language, banned
// words, length, duplicate. Passing sentences are remembered for duplicate
// detection.
func (f *Filter) Check(s corpus.Sentence) string {
	if s.Lang != "" && s.Lang != "eng" {
		return "non_english_" + s.Lang
	}

	lowered := strings.ToLower(s.Text)
	for _, p := range f.banned {
		if p.re.MatchString(lowered) {
			return "banned_word_" + strings.ToLower(p.word)
		}
	}

	if f.maxWords > 0 && len(strings.Fields(s.Text)) > f.maxWords {
		return "too_long"
	}

	key := strings.TrimSpace(lowered)
	if _, dup := f.seen[key]; dup {
		return "duplicate"
	}
	f.seen[key] = struct{}{}
	return ""
}

// Apply partitions sentences into kept and rejected.
func (f *Filter) Apply(sentences []corpus.Sentence) (kept []corpus.Sentence, rejected []Rejection) {
	for _, s := range sentences {
		if reason := f.Check(s); reason != "" {
			rejected = append(rejected, Rejection{Sentence: s, Reason: reason})
			continue
		}
		kept = append(kept, s)
	}
	return kept, rejected
}

// ReadBanned reads a banned word list, one entry per line, skipping blanks
// and #-comments.
func ReadBanned(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading banned word list: %w", err)
	}
	return words, nil
}
