package cefr_test

import (
	"testing"

	"github.com/lexsift/lexsift/internal/cefr"
)

func TestLevelOrdering(t *testing.T) {
	prev := cefr.Unknown
	for _, l := range cefr.All {
		if l <= prev {
			t.Errorf("level %v is not strictly greater than %v", l, prev)
		}
		prev = l
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    cefr.Level
		wantErr bool
	}{
		{"A1", cefr.A1, false},
		{"a2", cefr.A2, false},
		{"B1", cefr.B1, false},
		{"b2", cefr.B2, false},
		{"C1", cefr.C1, false},
		{"C2", cefr.C2, false},
		{"", cefr.Unknown, true},
		{"D1", cefr.Unknown, true},
		{"A3", cefr.Unknown, true},
	}

	for _, tt := range tests {
		got, err := cefr.Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, l := range cefr.All {
		parsed, err := cefr.Parse(l.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", l.String(), err)
		}
		if parsed != l {
			t.Errorf("round trip for %v yielded %v", l, parsed)
		}
	}
	if cefr.Unknown.String() != "" {
		t.Errorf("Unknown.String() = %q, want empty", cefr.Unknown.String())
	}
}

func TestHarder(t *testing.T) {
	tests := []struct {
		a, b, want cefr.Level
	}{
		{cefr.A1, cefr.C2, cefr.C2},
		{cefr.B2, cefr.A2, cefr.B2},
		{cefr.B1, cefr.B1, cefr.B1},
		{cefr.Unknown, cefr.A1, cefr.A1},
		{cefr.Unknown, cefr.Unknown, cefr.Unknown},
	}
	for _, tt := range tests {
		if got := cefr.Harder(tt.a, tt.b); got != tt.want {
			t.Errorf("Harder(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	for i, l := range cefr.All {
		if l.Index() != i {
			t.Errorf("%v.Index() = %d, want %d", l, l.Index(), i)
		}
	}
	if cefr.Unknown.Index() != -1 {
		t.Errorf("Unknown.Index() = %d, want -1", cefr.Unknown.Index())
	}
}
