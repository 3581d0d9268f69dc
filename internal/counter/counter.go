// Package counter provides text counting strategies for corpus summaries.
//
// Tokens (tiktoken cl100k_base), words, and characters are supported; the
// token strategy matches what LLM-based downstream consumers will see.
package counter

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Tokens uses tiktoken with cl100k_base encoding (default)
	Tokens CountingMethod = iota
	// Words counts words using whitespace splitting
	Words
	// Characters counts individual characters including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter is the factory for counter instances. It returns an error if
// the counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Tokens:
		return NewTokenCounter()
	case Words:
		return WordCounter{}, nil
	case Characters:
		return CharCounter{}, nil
	default:
		return NewTokenCounter()
	}
}

// TokenCounter implements token counting using tiktoken w/ cl100k_base encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

// NewTokenCounter creates a new TokenCounter w/ cl100k_base encoding
func NewTokenCounter() (Counter, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}
	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in the text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.encoding.Encode(text, nil, nil))
}

func (tc *TokenCounter) Name() string {
	return "tokens (cl100k_base)"
}

// WordCounter counts whitespace-separated words.
type WordCounter struct{}

func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

func (WordCounter) Name() string {
	return "words"
}

// CharCounter counts runes, including whitespace.
type CharCounter struct{}

func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

func (CharCounter) Name() string {
	return "characters"
}
