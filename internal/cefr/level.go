// Package cefr defines the CEFR proficiency scale used throughout lexsift.
//
// Levels are totally ordered (A1 < A2 < B1 < B2 < C1 < C2). The zero value
// Unknown means "no level determined" and is a first-class state: lexical
// lookups that miss return Unknown rather than an error or a sentinel
// string, and callers decide how to treat it (the sentence aggregator, for
// example, tallies Unknown content words as B2).
package cefr

import "fmt"

// Level is a CEFR proficiency level. The zero value is Unknown.
type Level int

const (
	Unknown Level = iota
	A1
	A2
	B1
	B2
	C1
	C2
)

// All lists the six real levels in ascending difficulty order.
var All = [6]Level{A1, A2, B1, B2, C1, C2}

// Known reports whether l is one of the six real levels.
func (l Level) Known() bool {
	return l >= A1 && l <= C2
}

// Index returns the position of l in the A1..C2 order (0-5), or -1 for Unknown.
func (l Level) Index() int {
	if !l.Known() {
		return -1
	}
	return int(l) - 1
}

// String returns the conventional level name, or "" for Unknown.
func (l Level) String() string {
	switch l {
	case A1:
		return "A1"
	case A2:
		return "A2"
	case B1:
		return "B1"
	case B2:
		return "B2"
	case C1:
		return "C1"
	case C2:
		return "C2"
	default:
		return ""
	}
}

// Parse converts a level name ("A1".."C2", case-insensitive) to a Level.
func Parse(s string) (Level, error) {
	switch s {
	case "A1", "a1":
		return A1, nil
	case "A2", "a2":
		return A2, nil
	case "B1", "b1":
		return B1, nil
	case "B2", "b2":
		return B2, nil
	case "C1", "c1":
		return C1, nil
	case "C2", "c2":
		return C2, nil
	default:
		return Unknown, fmt.Errorf("unknown CEFR level %q", s)
	}
}

// Harder returns the more difficult of a and b. Unknown loses to any known
// level; Harder(Unknown, Unknown) is Unknown.
func Harder(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}
