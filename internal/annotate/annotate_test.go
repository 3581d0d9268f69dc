package annotate_test

import (
	"testing"

	"github.com/lexsift/lexsift/internal/annotate"
)

func TestShape(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"25", "dd"},
		{"5", "d"},
		{"125", "ddd"},
		{"1,000", "d,ddd"},
		{"cat", "xxx"},
		{"Cat", "Xxx"},
		{"NASA", "XXXX"},
		{"a.m.", "x.x."},
		{"", ""},
		// runs longer than four collapse to four placeholders
		{"123456", "dddd"},
		{"elephant", "xxxx"},
	}
	for _, tt := range tests {
		if got := annotate.Shape(tt.text); got != tt.want {
			t.Errorf("Shape(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"It’s here", "It's here"},
		{"don´t", "don't"},
		{"plain text", "plain text"},
	}
	for _, tt := range tests {
		if got := annotate.Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	stops := []string{"the", "I", "am", "a", "n't", "'s", "with", "and"}
	for _, w := range stops {
		if !annotate.IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	content := []string{"cat", "analysis", "run", "economic", ""}
	for _, w := range content {
		if annotate.IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = true, want false", w)
		}
	}
}

func TestProseAnnotatorEmptyInput(t *testing.T) {
	a := annotate.NewProseAnnotator()
	for _, text := range []string{"", "   ", "\n\t"} {
		tokens, err := a.Annotate(text)
		if err != nil {
			t.Fatalf("Annotate(%q) errored: %v", text, err)
		}
		if len(tokens) != 0 {
			t.Errorf("Annotate(%q) yielded %d tokens, want 0", text, len(tokens))
		}
	}
}

func TestProseAnnotatorBasicSentence(t *testing.T) {
	a := annotate.NewProseAnnotator()
	tokens, err := a.Annotate("I am a cat.")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if len(tokens) != 5 {
		t.Fatalf("got %d tokens, want 5: %+v", len(tokens), tokens)
	}

	if tokens[4].POS != annotate.Punct {
		t.Errorf("final token POS = %v, want PUNCT", tokens[4].POS)
	}
	for _, i := range []int{0, 1, 2} {
		if !tokens[i].Stop {
			t.Errorf("token %q should be a stop word", tokens[i].Text)
		}
	}
	if tokens[3].Stop {
		t.Errorf("token %q should not be a stop word", tokens[3].Text)
	}
	if tokens[3].Shape != "xxx" {
		t.Errorf("shape of %q = %q, want xxx", tokens[3].Text, tokens[3].Shape)
	}
}

func TestProseAnnotatorNumerals(t *testing.T) {
	a := annotate.NewProseAnnotator()
	tokens, err := a.Annotate("I have 25 apples.")
	if err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}

	var num *annotate.Token
	for i := range tokens {
		if tokens[i].Text == "25" {
			num = &tokens[i]
		}
	}
	if num == nil {
		t.Fatalf("no token for 25 in %+v", tokens)
	}
	if num.POS != annotate.Num {
		t.Errorf("POS of 25 = %v, want NUM", num.POS)
	}
	if num.Shape != "dd" {
		t.Errorf("shape of 25 = %q, want dd", num.Shape)
	}
}
