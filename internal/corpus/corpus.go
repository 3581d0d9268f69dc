// Package corpus defines the sentence record that flows through the
// pipeline and the tab-separated formats it is read from and written to.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/grade"
)

// Sentence is one raw input sentence.
type Sentence struct {
	ID   string
	Lang string
	Text string
}

// Graded is a sentence with its assigned level and metrics.
type Graded struct {
	Sentence
	Level   cefr.Level
	Metrics grade.Metrics
}

// Read parses sentences from r. Two shapes are accepted per line:
//
//   - Tatoeba-style TSV: id<TAB>lang<TAB>text (an id/language/text header
//     row is skipped)
//   - plain text: the whole line is the sentence; ids are generated
//     sequentially and the language defaults to eng
//
// Blank lines are skipped. Mixed input works line by line.
func Read(r io.Reader) ([]Sentence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading sentences: %w", err)
	}

	var sentences []Sentence
	seq := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if fields := strings.Split(line, "\t"); len(fields) >= 3 {
			if strings.EqualFold(fields[0], "id") {
				continue // header row
			}
			sentences = append(sentences, Sentence{
				ID:   fields[0],
				Lang: fields[1],
				Text: strings.Join(fields[2:], " "),
			})
			continue
		}

		seq++
		sentences = append(sentences, Sentence{
			ID:   strconv.Itoa(seq),
			Lang: "eng",
			Text: line,
		})
	}
	return sentences, nil
}

// gradedHeader is the column set WriteGraded emits.
var gradedHeader = []string{"id", "lang", "level", "words", "content_words", "max_rank", "avg_rank", "text"}

// WriteGraded emits graded sentences as TSV with a header row.
func WriteGraded(w io.Writer, graded []Graded) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(gradedHeader); err != nil {
		return fmt.Errorf("writing graded sentences: %w", err)
	}
	for _, g := range graded {
		record := []string{
			g.ID,
			g.Lang,
			g.Level.String(),
			strconv.Itoa(g.Metrics.WordsWithStops),
			strconv.Itoa(g.Metrics.WordsWithoutStops),
			strconv.Itoa(g.Metrics.MaxRank),
			strconv.FormatFloat(g.Metrics.AverageRank, 'f', 1, 64),
			g.Text,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing graded sentences: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGraded parses the TSV format WriteGraded produces. Only the id,
// lang, level, and text columns are recovered; metrics columns are
// ignored (they are diagnostics, not inputs).
func ReadGraded(r io.Reader) ([]Graded, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	var graded []Graded
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading graded sentences: %w", err)
		}
		if first {
			first = false
			if len(record) > 0 && strings.EqualFold(record[0], "id") {
				continue
			}
		}
		if len(record) < len(gradedHeader) {
			continue
		}
		level, err := cefr.Parse(record[2])
		if err != nil {
			continue
		}
		graded = append(graded, Graded{
			Sentence: Sentence{ID: record[0], Lang: record[1], Text: record[7]},
			Level:    level,
		})
	}
	return graded, nil
}
