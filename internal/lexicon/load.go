package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadRankedList reads a frequency-ordered word list, one entry per line,
// most frequent first. A line may carry a trailing frequency column
// ("word 123456"); only the word is kept. Blank lines and #-comments are
// skipped. At most MaxRankedWords entries are returned.
func ReadRankedList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		words = append(words, strings.ToLower(fields[0]))
		if len(words) == MaxRankedWords {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading ranked word list: %w", err)
	}
	return words, nil
}

// ReadNames reads a common personal names list, one name per line. A
// leading "name" header line (CSV export convention) is skipped, as is
// anything after the first comma.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if comma := strings.IndexByte(line, ','); comma >= 0 {
			line = strings.TrimSpace(line[:comma])
		}
		if first {
			first = false
			if strings.EqualFold(line, "name") {
				continue
			}
		}
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading names list: %w", err)
	}
	return names, nil
}
