package lexicon

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lexsift/lexsift/internal/cefr"
)

// CSVDictionary is a CEFR dictionary backed by a word,level CSV file.
// A word listed more than once (one row per sense or part of speech) gets
// the rounded average of its levels, matching the "average word level"
// semantics of the upstream resource.
type CSVDictionary struct {
	levels map[string]cefr.Level
}

// NewCSVDictionary reads word,level rows from r. Rows with a malformed
// level or too few fields are skipped, not fatal; a dictionary with junk
// lines still serves the words it can.
func NewCSVDictionary(r io.Reader) (*CSVDictionary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	type acc struct {
		sum   int
		count int
	}
	sums := make(map[string]acc)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CEFR dictionary: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		word := strings.ToLower(strings.TrimSpace(record[0]))
		if word == "" || word == "word" { // header row
			continue
		}
		level, err := cefr.Parse(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		a := sums[word]
		a.sum += level.Index()
		a.count++
		sums[word] = a
	}

	levels := make(map[string]cefr.Level, len(sums))
	for word, a := range sums {
		idx := int(math.Round(float64(a.sum) / float64(a.count)))
		levels[word] = cefr.All[idx]
	}
	return &CSVDictionary{levels: levels}, nil
}

// AverageLevel returns the averaged level for word, or Unknown when the
// word is not listed. It never errors; the error return satisfies the
// Dictionary interface for implementations that can fail internally.
func (d *CSVDictionary) AverageLevel(word string) (cefr.Level, error) {
	return d.levels[strings.ToLower(word)], nil
}

// Len returns the number of distinct words in the dictionary.
func (d *CSVDictionary) Len() int {
	return len(d.levels)
}
