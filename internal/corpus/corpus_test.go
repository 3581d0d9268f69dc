package corpus_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/corpus"
	"github.com/lexsift/lexsift/internal/grade"
)

func TestReadTSV(t *testing.T) {
	input := "id\tlanguage\ttext\n1\teng\tI am a cat.\n2\tfra\tJe suis un chat.\n"
	sentences, err := corpus.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if sentences[0].ID != "1" || sentences[0].Lang != "eng" || sentences[0].Text != "I am a cat." {
		t.Errorf("unexpected first sentence: %+v", sentences[0])
	}
	if sentences[1].Lang != "fra" {
		t.Errorf("second sentence lang = %q, want fra", sentences[1].Lang)
	}
}

func TestReadPlainLines(t *testing.T) {
	input := "I am a cat.\n\nThe dog runs fast.\n"
	sentences, err := corpus.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(sentences) != 2 {
		t.Fatalf("got %d sentences, want 2", len(sentences))
	}
	if sentences[0].ID != "1" || sentences[1].ID != "2" {
		t.Errorf("generated ids = %q, %q; want 1, 2", sentences[0].ID, sentences[1].ID)
	}
	if sentences[0].Lang != "eng" {
		t.Errorf("default lang = %q, want eng", sentences[0].Lang)
	}
}

func TestReadEmpty(t *testing.T) {
	sentences, err := corpus.Read(strings.NewReader("\n  \n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(sentences) != 0 {
		t.Errorf("got %d sentences, want 0", len(sentences))
	}
}

func TestWriteReadGradedRoundTrip(t *testing.T) {
	graded := []corpus.Graded{
		{
			Sentence: corpus.Sentence{ID: "1", Lang: "eng", Text: "I am a cat."},
			Level:    cefr.A1,
			Metrics:  grade.Metrics{WordsWithStops: 4, WordsWithoutStops: 1, MaxRank: 120, AverageRank: 55.5},
		},
		{
			Sentence: corpus.Sentence{ID: "2", Lang: "eng", Text: "The economic situation requires analysis."},
			Level:    cefr.B2,
			Metrics:  grade.Metrics{WordsWithStops: 5, WordsWithoutStops: 4, MaxRank: 4200, AverageRank: 2100},
		},
	}

	var buf bytes.Buffer
	if err := corpus.WriteGraded(&buf, graded); err != nil {
		t.Fatalf("WriteGraded failed: %v", err)
	}

	got, err := corpus.ReadGraded(&buf)
	if err != nil {
		t.Fatalf("ReadGraded failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d graded sentences, want 2", len(got))
	}
	for i := range got {
		if got[i].ID != graded[i].ID || got[i].Level != graded[i].Level || got[i].Text != graded[i].Text {
			t.Errorf("row %d mismatch: got %+v", i, got[i])
		}
	}
}
